// Package handler serves request-context handlers over net/http.
//
// Handle wraps a HandlerFunc into an http.Handler. For every request the adapter assigns a
// request id, builds a reqctx.Context from the routed path parameters, the raw query and
// the configured schemas, records the client IP as the client identifier and closes the
// context once the response is written. Errors returned by the handler's Response are
// rendered by the ErrorHandler, which defaults to response.WriteJSONError.
//
//	type createUser struct {
//		Email string `json:"email" validate:"required;email"`
//	}
//
//	mux := http.NewServeMux()
//	mux.Handle("POST /orgs/{org}/users", handler.Handle(
//		func(rc *reqctx.Context) handler.Response {
//			user, err := reqctx.As[createUser](rc.Body())
//			if err != nil {
//				return handler.Error(err)
//			}
//			org, _ := rc.Param("org")
//			return handler.JSON(http.StatusCreated, map[string]string{"org": org, "email": user.Email})
//		},
//		handler.WithSchemas(&reqctx.Schemas{Body: validator.Struct[createUser]()}),
//	))
//
// Path parameters come from the http.ServeMux pattern by default; routers that keep them
// elsewhere plug in through WithParams. Request context limits can be loaded from the
// environment with ConfigFromEnv and passed with WithConfig.
package handler
