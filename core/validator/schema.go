package validator

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrymomot/reqkit/core/reqctx"
)

// Struct returns a request schema that decodes the raw facet value into T and validates
// it with ValidateStruct. T must be a struct type; the raw value is mapped onto it by its
// `json` tags. The schema yields T by value.
//
//	type listQuery struct {
//		Page  int    `json:"page" validate:"min:1"`
//		Order string `json:"order" validate:"in:asc,desc"`
//	}
//
//	schemas := &reqctx.Schemas{Query: validator.Struct[listQuery]()}
func Struct[T any]() reqctx.Schema {
	return reqctx.SchemaFunc[T](func(raw any) (T, error) {
		var v T
		if err := decode(raw, &v); err != nil {
			return v, err
		}
		if err := ValidateStruct(&v); err != nil {
			return v, err
		}
		return v, nil
	})
}

// decode maps raw onto dst through its JSON form. Type mismatches are reported as
// ValidationErrors on the offending field.
func decode(raw any, dst any) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("validator: encode raw value: %w", err)
	}

	err = json.Unmarshal(data, dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return ValidationErrors{{
			Field:          typeErr.Field,
			Message:        "must be of type " + typeErr.Type.String(),
			TranslationKey: "validation.type",
			TranslationValues: map[string]any{
				"field": typeErr.Field,
				"type":  typeErr.Type.String(),
			},
		}}
	}
	return fmt.Errorf("validator: decode raw value: %w", err)
}
