package reqctx

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
)

// FormData is a parsed form body.
type FormData struct {
	Value map[string][]string
	File  map[string][]*multipart.FileHeader
}

// Get returns the first value of key, or "".
func (f *FormData) Get(key string) string {
	if vs := f.Value[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// flatten folds the form into a plain mapping. The last value of a key wins and file
// parts win over fields of the same name.
func (f *FormData) flatten() map[string]any {
	flat := make(map[string]any, len(f.Value)+len(f.File))
	for key, values := range f.Value {
		if len(values) > 0 {
			flat[key] = values[len(values)-1]
		}
	}
	for key, files := range f.File {
		if len(files) > 0 {
			flat[key] = files[len(files)-1]
		}
	}
	return flat
}

// readForm parses an urlencoded or multipart body. The returned *multipart.Form, if any,
// owns temporary files that must be removed by the caller.
func readForm(contentType string, r io.Reader, maxMemory int64) (*FormData, *multipart.Form, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", errUnsupportedForm, err)
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, nil, err
		}
		values, err := url.ParseQuery(string(data))
		if err != nil {
			return nil, nil, err
		}
		return &FormData{Value: values, File: map[string][]*multipart.FileHeader{}}, nil, nil

	case "multipart/form-data":
		boundary := params["boundary"]
		if !validateBoundary(boundary) {
			return nil, nil, errInvalidBoundary
		}
		form, err := multipart.NewReader(r, boundary).ReadForm(maxMemory)
		if err != nil {
			return nil, nil, err
		}
		return &FormData{Value: form.Value, File: form.File}, form, nil

	default:
		return nil, nil, fmt.Errorf("%w: %s", errUnsupportedForm, mediaType)
	}
}

// validateBoundary rejects boundaries that break multipart parsing.
func validateBoundary(boundary string) bool {
	if boundary == "" || len(boundary) > 70 {
		return false
	}
	for _, r := range boundary {
		if r == '\x00' || r == '\r' || r == '\n' {
			return false
		}
	}
	return true
}

func isMultipartForm(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "multipart/form-data"
}
