package reqctx

import "fmt"

// Schema is the attempt-parse capability used to validate every request facet.
// Parse returns the validated value, or a non-nil error when raw is rejected.
type Schema interface {
	Parse(raw any) (any, error)
}

// SchemaFunc adapts a typed parse function to the Schema interface.
type SchemaFunc[T any] func(raw any) (T, error)

// Parse implements Schema.
func (f SchemaFunc[T]) Parse(raw any) (any, error) {
	v, err := f(raw)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Shape declares what kind of values a body schema accepts.
// It selects the body decode strategy and is supplied by the caller, never inferred.
type Shape int

const (
	// ShapeOther is any non-string shape (objects, arrays, numbers, unions of those).
	ShapeOther Shape = iota
	// ShapeString is a string, or a union whose members are all strings.
	ShapeString
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeString:
		return "string"
	default:
		return "other"
	}
}

// Schemas is the optional per-field validation bundle of a request context.
// A nil schema disables validation (and, for cookies, query and body, parsing) of its field.
type Schemas struct {
	Body      Schema
	BodyShape Shape
	Cookies   Schema
	Headers   Schema
	Query     Schema

	// Transform enables reading multipart/form-data bodies as a flat key/value mapping.
	Transform bool
}

// AnySchema accepts every value unchanged.
func AnySchema() Schema {
	return SchemaFunc[any](func(raw any) (any, error) {
		return raw, nil
	})
}

// StringSchema accepts strings only. Pair it with ShapeString for text bodies.
func StringSchema() Schema {
	return SchemaFunc[string](func(raw any) (string, error) {
		s, ok := raw.(string)
		if !ok {
			return "", fmt.Errorf("expected string, got %T", raw)
		}
		return s, nil
	})
}

// As converts an accessor result to T. A nil value (field without schema) yields the zero
// value of T; a value of another type yields ErrUnexpectedType.
//
//	cookies, err := reqctx.As[map[string]string](rc.Cookies())
func As[T any](v any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, ErrUnexpectedType.WithError(fmt.Errorf("got %T, want %T", v, zero))
	}
	return t, nil
}
