package response

import (
	"encoding/json"
	"errors"
	"net/http"
)

// statusCode is an interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// Convert converts any error to an HTTPError.
// Errors that are not HTTPErrors keep their StatusCode() when they implement it
// and are attached as the cause of the matching class error.
func Convert(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	baseErr, ok := httpErrorsByStatus[status]
	if !ok {
		baseErr = HTTPError{
			Status:  status,
			Code:    "error",
			Message: http.StatusText(status),
		}
	}

	return baseErr.WithError(err)
}

// StatusCode returns the HTTP status code for err, 500 for unclassified errors.
func StatusCode(err error) int {
	return Convert(err).Status
}

// WriteTextError writes err as a plain text response.
func WriteTextError(w http.ResponseWriter, err error) {
	httpErr := Convert(err)
	http.Error(w, httpErr.Message, httpErr.Status)
}

// WriteJSONError writes err as a JSON object with code, message and details.
// Server errors never expose their details.
func WriteJSONError(w http.ResponseWriter, err error) {
	httpErr := Convert(err)
	if httpErr.Status >= http.StatusInternalServerError {
		httpErr.Details = nil
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(httpErr.Status)
	_ = json.NewEncoder(w).Encode(httpErr)
}
