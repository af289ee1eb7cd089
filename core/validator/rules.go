package validator

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MinLenString checks that value has at least min characters.
func MinLenString(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) >= min
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at least %d characters long", min),
			TranslationKey: "validation.min_length",
			TranslationValues: map[string]any{
				"field": field,
				"min":   min,
			},
		},
	}
}

// MaxLenString checks that value has at most max characters.
func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at most %d characters long", max),
			TranslationKey: "validation.max_length",
			TranslationValues: map[string]any{
				"field": field,
				"max":   max,
			},
		},
	}
}

// ValidEmail checks that value is a bare email address.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			addr, err := mail.ParseAddress(value)
			return err == nil && addr.Address == value
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid email address",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidURL checks that value is an absolute URL with a host.
func ValidURL(field, value string) Rule {
	return Rule{
		Check: func() bool {
			u, err := url.ParseRequestURI(value)
			return err == nil && u.Scheme != "" && u.Host != ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid URL",
			TranslationKey: "validation.url",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidAlphanumeric checks that value contains letters and digits only.
func ValidAlphanumeric(field, value string) Rule {
	return Rule{
		Check: func() bool {
			for _, r := range value {
				if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					return false
				}
			}
			return true
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must contain only letters and numbers",
			TranslationKey: "validation.alphanumeric",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidUUID checks that value is a UUID in canonical form.
func ValidUUID(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return uuid.Validate(value) == nil && len(value) == 36
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid UUID",
			TranslationKey: "validation.uuid",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidUUIDVersionString checks that value is a canonical UUID of the given version.
func ValidUUIDVersionString(field, value string, version int) Rule {
	return Rule{
		Check: func() bool {
			if len(value) != 36 {
				return false
			}
			id, err := uuid.Parse(value)
			return err == nil && int(id.Version()) == version
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be a valid UUID v%d", version),
			TranslationKey: "validation.uuid_version",
			TranslationValues: map[string]any{
				"field":   field,
				"version": version,
			},
		},
	}
}

// InList checks that value is one of allowed.
func InList(field, value string, allowed []string) Rule {
	return Rule{
		Check: func() bool {
			return slices.Contains(allowed, value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be one of: " + strings.Join(allowed, ", "),
			TranslationKey: "validation.in",
			TranslationValues: map[string]any{
				"field":  field,
				"values": allowed,
			},
		},
	}
}

// NotInList checks that value is none of forbidden.
func NotInList(field, value string, forbidden []string) Rule {
	return Rule{
		Check: func() bool {
			return !slices.Contains(forbidden, value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must not be one of: " + strings.Join(forbidden, ", "),
			TranslationKey: "validation.not_in",
			TranslationValues: map[string]any{
				"field":  field,
				"values": forbidden,
			},
		},
	}
}

var regexCache sync.Map // pattern -> *regexp.Regexp

// MatchesRegex checks value against pattern. An invalid pattern never matches.
func MatchesRegex(field, value, pattern, description string) Rule {
	return Rule{
		Check: func() bool {
			re, err := compileCached(pattern)
			return err == nil && re.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must match " + description,
			TranslationKey: "validation.regex",
			TranslationValues: map[string]any{
				"field":       field,
				"description": description,
			},
		},
	}
}

func compileCached(pattern string) (*regexp.Regexp, error) {
	if re, ok := regexCache.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	regexCache.Store(pattern, re)
	return re, nil
}
