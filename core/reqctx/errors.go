package reqctx

import (
	"errors"

	"github.com/dmitrymomot/reqkit/core/response"
)

// Classified request errors. Each one matches its class with errors.Is
// (response.ErrBadRequest or response.ErrPayloadTooLarge) and carries the underlying
// cause, if any, through errors.Unwrap.
var (
	// ErrCookieHeaderTooLarge is returned when the cookie header exceeds Config.CookieHeaderLimit.
	ErrCookieHeaderTooLarge = response.ErrPayloadTooLarge.
				WithCode("cookie_header_too_large").
				WithMessage("cookie header is too large")

	// ErrBodyTimeout is returned when the body is not read within Config.BodyTimeout.
	ErrBodyTimeout = response.ErrPayloadTooLarge.
			WithCode("body_timeout").
			WithMessage("request body was not received in time")

	ErrInvalidCookies = response.ErrBadRequest.
				WithCode("invalid_cookies").
				WithMessage("cookies failed validation")

	ErrInvalidHeaders = response.ErrBadRequest.
				WithCode("invalid_headers").
				WithMessage("headers failed validation")

	ErrInvalidQuery = response.ErrBadRequest.
			WithCode("invalid_query").
			WithMessage("query parameters failed validation")

	// ErrMalformedBody is returned when the body cannot be read or decoded.
	ErrMalformedBody = response.ErrBadRequest.
				WithCode("malformed_body").
				WithMessage("request body is malformed")

	// ErrInvalidBody is returned when the decoded body fails validation.
	ErrInvalidBody = response.ErrBadRequest.
			WithCode("invalid_body").
			WithMessage("request body failed validation")

	// ErrBodyConsumed is returned by Body when the body stream was already read.
	ErrBodyConsumed = response.ErrBadRequest.
			WithCode("body_consumed").
			WithMessage("request body has already been read")

	// ErrUnexpectedType is returned by As when a value is not of the requested type.
	ErrUnexpectedType = response.ErrBadRequest.
				WithCode("unexpected_type").
				WithMessage("request value has an unexpected type")
)

// Stream errors, surfaced as causes of the classified errors above.
var (
	errCloneUnavailable = errors.New("reqctx: consumed body cannot be replayed")
	errUnsupportedForm  = errors.New("reqctx: content type is not a form")
	errInvalidBoundary  = errors.New("reqctx: invalid multipart boundary")
)
