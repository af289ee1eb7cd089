// Package reqctx implements the per-request context of the toolkit: it lazily extracts,
// validates and caches the structured parts of an incoming request (path parameters,
// query string, cookies, headers, body) against optional schemas, and bounds every body
// read with a deadline.
//
// # Construction
//
// A router builds one Context per request. Nothing is read at construction:
//
//	rc := reqctx.New(params, r.URL.RawQuery, r, &reqctx.Schemas{
//		Query: validator.Struct[SearchQuery](),
//		Body:  validator.Struct[CreateUser](),
//	})
//	defer rc.Close()
//
// # Accessors
//
// Cookies, Headers and Query parse their facet on first use, validate it and cache the
// result; later calls return the cached value verbatim. Body is not cached because the
// body stream is single-use. Use As to get typed values:
//
//	q, err := reqctx.As[SearchQuery](rc.Query())
//	if err != nil {
//		return err // 400, see below
//	}
//
// Schemas implement a single attempt-parse operation (Schema.Parse). The body schema is
// accompanied by a Shape tag: ShapeString reads the body as text, anything else reads
// JSON, or a flat form mapping when Schemas.Transform is set for multipart bodies.
//
// # Errors
//
// Failures are response.HTTPError values of two classes:
//
//   - 400 (response.ErrBadRequest): ErrInvalidCookies, ErrInvalidHeaders, ErrInvalidQuery,
//     ErrMalformedBody, ErrInvalidBody, ErrBodyConsumed, ErrUnexpectedType
//   - 413 (response.ErrPayloadTooLarge): ErrCookieHeaderTooLarge, ErrBodyTimeout
//
// A garbled cookie header is not an error; it degrades to an empty mapping.
//
// # Raw Readers
//
// Blob, Buffer and FormData are best-effort: they return nil instead of failing. When the
// body was already consumed they read a replay of it, which exists once the first reader
// drained the stream. Stream hands out the live stream without any deadline.
package reqctx
