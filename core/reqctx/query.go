package reqctx

import (
	"encoding/json"
	"net/url"
	"strings"
)

// Query returns the validated query mapping, parsing the raw query string on first use.
//
// Without a query schema it returns (nil, nil) and parses nothing. Each "key=value" segment
// is percent-decoded and JSON-decoded when possible ("1" -> 1, "true" -> true,
// "%22x%22" -> "x"); other values stay strings. A key without '=' is set to true. The
// map[string]any is passed to the schema; a rejection fails with ErrInvalidQuery.
func (c *Context) Query() (any, error) {
	if v, ok := c.query.get(); ok {
		return v, nil
	}
	if c.schemas.Query == nil {
		return nil, nil
	}

	v, err := c.schemas.Query.Parse(parseQuery(c.rawQuery))
	if err != nil {
		return nil, ErrInvalidQuery.WithError(err)
	}

	return c.query.set(v), nil
}

func parseQuery(raw string) map[string]any {
	query := make(map[string]any)
	raw = strings.TrimPrefix(raw, "?")
	if raw == "" {
		return query
	}

	for _, segment := range strings.Split(raw, "&") {
		key, value, found := strings.Cut(segment, "=")
		if key == "" {
			continue
		}
		if !found {
			query[key] = true
			continue
		}
		query[key] = coerceQueryValue(value)
	}

	return query
}

// coerceQueryValue percent-decodes value ('+' stays literal) and returns its JSON value,
// or the decoded string when it is not JSON. Undecodable escapes keep the raw value.
func coerceQueryValue(value string) any {
	decoded, err := url.PathUnescape(value)
	if err != nil {
		decoded = value
	}

	var v any
	if err := json.Unmarshal([]byte(decoded), &v); err == nil {
		return v
	}
	return decoded
}
