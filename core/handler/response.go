package handler

import (
	"encoding/json"
	"net/http"
)

// JSON renders v as a JSON document with the given status.
func JSON(status int, v any) Response {
	return func(w http.ResponseWriter, _ *http.Request) error {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_, err = w.Write(data)
		return err
	}
}

// Text renders s as plain text with the given status.
func Text(status int, s string) Response {
	return func(w http.ResponseWriter, _ *http.Request) error {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, err := w.Write([]byte(s))
		return err
	}
}

// NoContent renders an empty 204 response.
func NoContent() Response {
	return func(w http.ResponseWriter, _ *http.Request) error {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}
}

// Error hands err to the adapter's error handler.
func Error(err error) Response {
	return func(http.ResponseWriter, *http.Request) error {
		return err
	}
}
