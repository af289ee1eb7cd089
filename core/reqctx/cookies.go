package reqctx

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrymomot/reqkit/core/logger"
)

var errMalformedCookieHeader = errors.New("reqctx: cookie header is not valid UTF-8")

// Cookies returns the validated cookie mapping, parsing it on first use.
//
// Without a cookie schema it returns (nil, nil) and parses nothing. A cookie header longer
// than Config.CookieHeaderLimit characters fails with ErrCookieHeaderTooLarge. A malformed
// header degrades to an empty mapping. The parsed map[string]string is passed to the
// schema; a rejection fails with ErrInvalidCookies.
func (c *Context) Cookies() (any, error) {
	if v, ok := c.cookies.get(); ok {
		return v, nil
	}
	if c.schemas.Cookies == nil {
		return nil, nil
	}

	header := c.cookieHeader()
	if utf8.RuneCountInString(header) > c.cfg.CookieHeaderLimit {
		return nil, ErrCookieHeaderTooLarge
	}

	cookies, err := parseCookies(header)
	if err != nil {
		c.log.Debug("cookie header degraded to empty mapping", logger.Field("cookies"), logger.Error(err))
		cookies = map[string]string{}
	}

	v, err := c.schemas.Cookies.Parse(cookies)
	if err != nil {
		return nil, ErrInvalidCookies.WithError(err)
	}

	return c.cookies.set(v), nil
}

// cookieHeader returns the request's cookie header. Split cookie headers (HTTP/2) are
// joined back with "; ". A non-standard "Cookies" header is used when "Cookie" is absent.
func (c *Context) cookieHeader() string {
	values := c.req.Header.Values("Cookie")
	if len(values) == 0 {
		values = c.req.Header.Values("Cookies")
	}
	return strings.Join(values, "; ")
}

// parseCookies splits header on ';' plus optional whitespace and each pair on its first
// '='. Pairs with an empty key are dropped and later duplicates win.
func parseCookies(header string) (map[string]string, error) {
	if !utf8.ValidString(header) {
		return nil, errMalformedCookieHeader
	}

	cookies := make(map[string]string)
	for i, pair := range strings.Split(header, ";") {
		if i > 0 {
			pair = strings.TrimLeftFunc(pair, unicode.IsSpace)
		}
		key, value, _ := strings.Cut(pair, "=")
		if key == "" {
			continue
		}
		cookies[key] = value
	}

	return cookies, nil
}
