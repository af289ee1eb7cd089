package reqctx

import (
	"maps"
	"slices"
	"strings"
)

// Headers returns the header mapping, building it on first use.
//
// Keys are lower-cased and the first value seen for a key wins. Entries are visited in
// sorted key order and copying stops after Config.HeaderLimit keys. Without a header schema
// the map[string]string itself is cached and returned; otherwise it is validated and the
// schema's value is cached, and a rejection fails with ErrInvalidHeaders.
func (c *Context) Headers() (any, error) {
	if v, ok := c.headers.get(); ok {
		return v, nil
	}

	headers := collectHeaders(c.req.Header, c.cfg.HeaderLimit)

	if c.schemas.Headers == nil {
		return c.headers.set(headers), nil
	}

	v, err := c.schemas.Headers.Parse(headers)
	if err != nil {
		return nil, ErrInvalidHeaders.WithError(err)
	}

	return c.headers.set(v), nil
}

func collectHeaders(h map[string][]string, limit int) map[string]string {
	headers := make(map[string]string, min(len(h), limit))

	sets := 0
	for _, name := range slices.Sorted(maps.Keys(h)) {
		if sets >= limit {
			break
		}
		key := strings.ToLower(name)
		if _, seen := headers[key]; seen {
			continue
		}
		headers[key] = strings.Join(h[name], ", ")
		sets++
	}

	return headers
}
