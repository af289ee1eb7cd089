package validator

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// ValidatorFunc builds the Rule for one tag rule applied to value.
type ValidatorFunc func(field string, value reflect.Value, params []string) Rule

var (
	registryMu sync.RWMutex
	registry   = map[string]ValidatorFunc{
		"required": requiredValidator,
		"min":      minValidator,
		"max":      maxValidator,
		"len":      lenValidator,
		"between":  betweenValidator,
		"email":    emailValidator,
		"url":      urlValidator,
		"alphanum": alphanumValidator,
		"uuid":     uuidValidator,
		"in":       inValidator,
		"not_in":   notInValidator,
		"prefix":   prefixValidator,
		"regex":    regexValidator,
		"positive": positiveValidator,
		"nonzero":  nonZeroValidator,
	}
)

// RegisterValidator adds or replaces a named tag rule.
func RegisterValidator(name string, fn ValidatorFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// ValidateStruct validates a struct based on its `validate` tags. Rules are separated by
// ';' and parameters follow a ':' separated by ',':
//
//	Role string `json:"role" validate:"required;in:admin,member"`
//
// Errors are reported under the field's JSON name when it has one, so they line up with
// the request keys the struct was decoded from. Unknown rules are ignored.
func ValidateStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("validator: must pass a pointer to struct")
	}

	var errs ValidationErrors
	validateStructRecursive(rv.Elem(), "", &errs)

	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func validateStructRecursive(rv reflect.Value, prefix string, errs *ValidationErrors) {
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		structField := rt.Field(i)
		if !structField.IsExported() {
			continue
		}

		tag := structField.Tag.Get("validate")
		if tag == "-" {
			continue
		}

		fieldPath := fieldName(structField)
		if prefix != "" {
			fieldPath = prefix + "." + fieldPath
		}

		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				if tag != "" {
					validateField(fieldPath, field, tag, errs)
				}
				continue
			}
			field = field.Elem()
		}

		if field.Kind() == reflect.Struct && tag == "" {
			validateStructRecursive(field, fieldPath, errs)
			continue
		}
		if tag == "" {
			continue
		}

		validateField(fieldPath, field, tag, errs)
	}
}

// fieldName is the JSON name of f, falling back to the Go name.
func fieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func validateField(fieldPath string, field reflect.Value, tag string, errs *ValidationErrors) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for ruleStr := range strings.SplitSeq(tag, ";") {
		ruleStr = strings.TrimSpace(ruleStr)
		if ruleStr == "" {
			continue
		}

		ruleName, paramStr, _ := strings.Cut(ruleStr, ":")
		ruleName = strings.TrimSpace(ruleName)

		var params []string
		if paramStr = strings.TrimSpace(paramStr); paramStr != "" {
			params = strings.Split(paramStr, ",")
			for i := range params {
				params[i] = strings.TrimSpace(params[i])
			}
		}

		if validatorFn, ok := registry[ruleName]; ok {
			rule := validatorFn(fieldPath, field, params)
			if !rule.Check() {
				errs.Add(rule.Error)
			}
		}
	}
}

// pass is the rule of a tag that does not apply to the value's kind.
func pass() Rule {
	return Rule{Check: func() bool { return true }}
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uint64
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

// number returns value as float64 for numeric kinds.
func number(value reflect.Value) (float64, bool) {
	switch k := value.Kind(); {
	case isInt(k):
		return float64(value.Int()), true
	case isUint(k):
		return float64(value.Uint()), true
	case isFloat(k):
		return value.Float(), true
	default:
		return 0, false
	}
}

func requiredValidator(field string, value reflect.Value, _ []string) Rule {
	return Rule{
		Check: func() bool {
			switch value.Kind() {
			case reflect.String:
				return strings.TrimSpace(value.String()) != ""
			case reflect.Slice, reflect.Map, reflect.Array:
				return value.Len() > 0
			case reflect.Pointer, reflect.Interface:
				return !value.IsNil()
			default:
				return !value.IsZero()
			}
		},
		Error: ValidationError{
			Field:          field,
			Message:        "field is required",
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

func minValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return pass()
	}

	switch value.Kind() {
	case reflect.String:
		min, _ := strconv.Atoi(params[0])
		return MinLenString(field, value.String(), min)
	case reflect.Slice, reflect.Array, reflect.Map:
		min, _ := strconv.Atoi(params[0])
		return Rule{
			Check: func() bool {
				return value.Len() >= min
			},
			Error: ValidationError{
				Field:          field,
				Message:        fmt.Sprintf("must have at least %d items", min),
				TranslationKey: "validation.min_items",
				TranslationValues: map[string]any{
					"field": field,
					"min":   min,
				},
			},
		}
	}

	n, ok := number(value)
	if !ok {
		return pass()
	}
	min, _ := strconv.ParseFloat(params[0], 64)
	return Rule{
		Check: func() bool {
			return n >= min
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be at least " + params[0],
			TranslationKey: "validation.min",
			TranslationValues: map[string]any{
				"field": field,
				"min":   min,
			},
		},
	}
}

func maxValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return pass()
	}

	switch value.Kind() {
	case reflect.String:
		max, _ := strconv.Atoi(params[0])
		return MaxLenString(field, value.String(), max)
	case reflect.Slice, reflect.Array, reflect.Map:
		max, _ := strconv.Atoi(params[0])
		return Rule{
			Check: func() bool {
				return value.Len() <= max
			},
			Error: ValidationError{
				Field:          field,
				Message:        fmt.Sprintf("must have at most %d items", max),
				TranslationKey: "validation.max_items",
				TranslationValues: map[string]any{
					"field": field,
					"max":   max,
				},
			},
		}
	}

	n, ok := number(value)
	if !ok {
		return pass()
	}
	max, _ := strconv.ParseFloat(params[0], 64)
	return Rule{
		Check: func() bool {
			return n <= max
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be at most " + params[0],
			TranslationKey: "validation.max",
			TranslationValues: map[string]any{
				"field": field,
				"max":   max,
			},
		},
	}
}

func lenValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return pass()
	}
	expectedLen, _ := strconv.Atoi(params[0])

	switch value.Kind() {
	case reflect.String:
		return Rule{
			Check: func() bool {
				return len([]rune(value.String())) == expectedLen
			},
			Error: ValidationError{
				Field:          field,
				Message:        fmt.Sprintf("must be exactly %d characters long", expectedLen),
				TranslationKey: "validation.exact_length",
				TranslationValues: map[string]any{
					"field": field,
					"len":   expectedLen,
				},
			},
		}
	case reflect.Slice, reflect.Array:
		return Rule{
			Check: func() bool {
				return value.Len() == expectedLen
			},
			Error: ValidationError{
				Field:          field,
				Message:        fmt.Sprintf("must have exactly %d items", expectedLen),
				TranslationKey: "validation.exact_items",
				TranslationValues: map[string]any{
					"field": field,
					"len":   expectedLen,
				},
			},
		}
	default:
		return pass()
	}
}

func betweenValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 2 {
		return pass()
	}

	lo, hi := minValidator(field, value, params[:1]), maxValidator(field, value, params[1:2])
	return Rule{
		Check: func() bool {
			return lo.Check() && hi.Check()
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be between %s and %s", params[0], params[1]),
			TranslationKey: "validation.between",
			TranslationValues: map[string]any{
				"field": field,
				"min":   params[0],
				"max":   params[1],
			},
		},
	}
}

func emailValidator(field string, value reflect.Value, _ []string) Rule {
	if value.Kind() != reflect.String || value.String() == "" {
		return pass()
	}
	return ValidEmail(field, value.String())
}

func urlValidator(field string, value reflect.Value, _ []string) Rule {
	if value.Kind() != reflect.String || value.String() == "" {
		return pass()
	}
	return ValidURL(field, value.String())
}

func alphanumValidator(field string, value reflect.Value, _ []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	return ValidAlphanumeric(field, value.String())
}

func uuidValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String || value.String() == "" {
		return pass()
	}

	version := 0 // any version
	if len(params) > 0 {
		version, _ = strconv.Atoi(params[0])
	}
	if version > 0 {
		return ValidUUIDVersionString(field, value.String(), version)
	}
	return ValidUUID(field, value.String())
}

func inValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String || value.String() == "" {
		return pass()
	}
	return InList(field, value.String(), params)
}

func notInValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	return NotInList(field, value.String(), params)
}

func prefixValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String || len(params) < 1 {
		return pass()
	}
	prefix := params[0]
	return Rule{
		Check: func() bool {
			return strings.HasPrefix(value.String(), prefix)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must start with '%s'", prefix),
			TranslationKey: "validation.prefix",
			TranslationValues: map[string]any{
				"field":  field,
				"prefix": prefix,
			},
		},
	}
}

func regexValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String || len(params) < 1 {
		return pass()
	}
	description := "pattern"
	if len(params) > 1 {
		description = params[1]
	}
	return MatchesRegex(field, value.String(), params[0], description)
}

func positiveValidator(field string, value reflect.Value, _ []string) Rule {
	n, ok := number(value)
	if !ok {
		return pass()
	}
	return Rule{
		Check: func() bool {
			return n > 0
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be positive",
			TranslationKey: "validation.positive",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

func nonZeroValidator(field string, value reflect.Value, _ []string) Rule {
	return Rule{
		Check: func() bool {
			return !value.IsZero()
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must not be zero",
			TranslationKey: "validation.nonzero",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
