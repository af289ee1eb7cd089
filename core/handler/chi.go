package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ChiParams extracts the URL parameters of a request routed by chi. A catch-all
// segment is reported under "*".
//
//	r := chi.NewRouter()
//	r.Method(http.MethodGet, "/users/{id}", handler.Handle(show, handler.WithParams(handler.ChiParams)))
func ChiParams(r *http.Request) map[string]string {
	params := make(map[string]string)

	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return params
	}
	for i, key := range rctx.URLParams.Keys {
		if i < len(rctx.URLParams.Values) {
			params[key] = rctx.URLParams.Values[i]
		}
	}
	return params
}
