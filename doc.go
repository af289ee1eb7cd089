// Package reqkit provides lazy, validated request contexts for Go HTTP handlers.
//
// A request context extracts the structured parts of one incoming request (path
// parameters, query string, cookies, headers and body) on first use, validates each
// against an optional schema and caches the result. Body reads are bounded by a deadline
// and every failure maps to a status-coded error (400 or 413).
//
// # Package Organization
//
// Core packages:
//
//	github.com/dmitrymomot/reqkit/core/reqctx     - Request context: cached accessors, body decoding, raw readers
//	github.com/dmitrymomot/reqkit/core/response   - Status-coded HTTPError taxonomy and error rendering
//	github.com/dmitrymomot/reqkit/core/handler    - net/http adapter building a request context per request
//	github.com/dmitrymomot/reqkit/core/validator  - Struct tag rules and request schemas built on them
//	github.com/dmitrymomot/reqkit/core/config     - Type-safe environment variable loading
//	github.com/dmitrymomot/reqkit/core/logger     - Structured logging built on slog
//
// Utilities:
//
//	github.com/dmitrymomot/reqkit/pkg/async       - Generic futures with deadline-bounded await
//	github.com/dmitrymomot/reqkit/pkg/clientip    - Real client IP extraction from proxy headers
//
// # Getting Documentation
//
//	go doc github.com/dmitrymomot/reqkit/core/reqctx
//	go doc -all github.com/dmitrymomot/reqkit/core/handler
//
// # Quick Start
//
//	type signup struct {
//		Email string `json:"email" validate:"required;email"`
//	}
//
//	mux := http.NewServeMux()
//	mux.Handle("POST /signup", handler.Handle(
//		func(rc *reqctx.Context) handler.Response {
//			in, err := reqctx.As[signup](rc.Body())
//			if err != nil {
//				return handler.Error(err) // 400, or 413 when the body is late
//			}
//			return handler.JSON(http.StatusCreated, in)
//		},
//		handler.WithSchemas(&reqctx.Schemas{Body: validator.Struct[signup]()}),
//	))
package reqkit
