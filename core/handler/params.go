package handler

import (
	"net/http"
	"strings"
)

// PatternParams extracts the wildcards of the http.ServeMux pattern that matched r
// ("/users/{id}/files/{path...}") through r.PathValue. Requests routed by anything
// else yield an empty mapping.
func PatternParams(r *http.Request) map[string]string {
	params := make(map[string]string)

	pattern := r.Pattern
	for {
		start := strings.IndexByte(pattern, '{')
		if start < 0 {
			break
		}
		end := strings.IndexByte(pattern[start:], '}')
		if end < 0 {
			break
		}

		name := strings.TrimSuffix(pattern[start+1:start+end], "...")
		if name != "" && name != "$" {
			params[name] = r.PathValue(name)
		}
		pattern = pattern[start+end+1:]
	}

	return params
}
