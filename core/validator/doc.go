// Package validator provides struct tag validation and request schemas built on it.
//
// Rules are declared in the `validate` tag, separated by semicolons. Parameters follow
// a colon and are separated by commas:
//
//	type CreateUser struct {
//		Email string `json:"email" validate:"required;email"`
//		Name  string `json:"name" validate:"required;min:2;max:50"`
//		Role  string `json:"role" validate:"in:admin,member"`
//		Age   int    `json:"age" validate:"between:18,120"`
//	}
//
//	if err := validator.ValidateStruct(&user); err != nil {
//		for field, msgs := range validator.ExtractValidationErrors(err).Fields() {
//			// ...
//		}
//	}
//
// Built-in rules: required, min, max, len, between, email, url, alphanum, uuid, in,
// not_in, prefix, regex, positive and nonzero. Custom rules are added with
// RegisterValidator.
//
// # Request schemas
//
// Struct adapts a tagged struct to reqctx.Schema. The raw cookie, header, query or body
// value is decoded onto the struct by its json tags and then validated:
//
//	rc := reqctx.New(params, r.URL.RawQuery, r, &reqctx.Schemas{
//		Body:  validator.Struct[CreateUser](),
//		Query: validator.Struct[ListQuery](),
//	})
//
//	user, err := reqctx.As[CreateUser](rc.Body())
//
// A rejected value surfaces from the reqctx accessor as a 400 error whose cause is the
// ValidationErrors.
package validator
