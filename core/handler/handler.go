package handler

import (
	"net/http"

	"github.com/dmitrymomot/reqkit/core/reqctx"
)

// Response is a function that renders HTTP responses.
// It sets headers, status code, and writes the response body.
// Rendering errors are handled by the adapter's error handler.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc handles one request through its request context.
type HandlerFunc func(rc *reqctx.Context) Response

// ErrorHandler renders an error returned while handling a request.
type ErrorHandler func(rc *reqctx.Context, w http.ResponseWriter, err error)

// Middleware wraps handlers to add cross-cutting functionality.
type Middleware func(next HandlerFunc) HandlerFunc

// ParamsFunc extracts path parameters from a routed request.
type ParamsFunc func(r *http.Request) map[string]string

// SchemasFunc selects the schema bundle of a request.
type SchemasFunc func(r *http.Request) *reqctx.Schemas
