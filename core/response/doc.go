// Package response defines the status-coded error taxonomy shared by the request context
// and the outer error-handling layer, plus the functions that translate any error into an
// HTTP error response.
//
// # Error Taxonomy
//
// Every classified failure is an HTTPError carrying an HTTP status:
//
//   - ErrBadRequest (400): malformed input or a value rejected by its schema
//   - ErrPayloadTooLarge (413): oversized input or a body read that exceeded its deadline
//
// Packages derive their own instances from these classes with WithCode, WithMessage and
// WithError. Derived instances keep their class for errors.Is:
//
//	var ErrInvalidQuery = response.ErrBadRequest.WithCode("invalid_query")
//
//	err := ErrInvalidQuery.WithError(cause)
//	errors.Is(err, ErrInvalidQuery)         // true
//	errors.Is(err, response.ErrBadRequest)  // true
//	errors.Is(err, cause)                   // true
//
// # Translating Errors
//
// StatusCode reports the status for any error (500 for unclassified ones), and
// WriteJSONError / WriteTextError render it:
//
//	if err := handle(rc); err != nil {
//		response.WriteJSONError(w, err)
//	}
package response
