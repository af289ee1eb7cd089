package reqctx

import (
	"context"
	"log/slog"
	"maps"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"

	"github.com/dmitrymomot/reqkit/core/logger"
)

// Context is the per-request unit of work. It lazily extracts, validates and caches the
// structured parts of one request. A Context is owned by a single handler invocation and
// must not be reused across requests.
//
// Accessors of different facets may run concurrently. The same uncached accessor (Body and
// the raw readers) must not: the body stream is single-use.
type Context struct {
	params   map[string]string
	rawQuery string
	req      *http.Request
	schemas  *Schemas
	cfg      Config
	log      *slog.Logger
	body     *bodyStream

	cookies  slot[any]
	headers  slot[any]
	query    slot[any]
	clientID slot[string]

	formsMu sync.Mutex
	forms   []*multipart.Form
	closed  bool
}

// Option configures a Context.
type Option func(*Context)

// WithConfig sets deadlines and caps. Zero fields keep their defaults.
func WithConfig(cfg Config) Option {
	return func(c *Context) {
		c.cfg = cfg.withDefaults()
	}
}

// WithLogger sets the logger used for debug records (default: slog.Default()).
func WithLogger(log *slog.Logger) Option {
	return func(c *Context) {
		if log != nil {
			c.log = log
		}
	}
}

// New binds path params, the raw query string and the request, plus an optional schema
// bundle (nil disables validation for every field). No I/O happens here.
func New(params map[string]string, rawQuery string, r *http.Request, schemas *Schemas, opts ...Option) *Context {
	c := &Context{
		params:   maps.Clone(params),
		rawQuery: rawQuery,
		req:      r,
		schemas:  schemas,
		cfg:      DefaultConfig(),
		log:      slog.Default(),
	}
	if c.params == nil {
		c.params = make(map[string]string)
	}
	if c.schemas == nil {
		c.schemas = &Schemas{}
	}

	for _, opt := range opts {
		opt(c)
	}

	c.log = c.log.With(logger.Component("reqctx"))
	c.body = newBodyStream(r.Body, c.cfg.MaxBodySize)

	return c
}

// ClientID returns the client identifier set before the handler ran, or "".
func (c *Context) ClientID() string {
	id, _ := c.clientID.get()
	return id
}

// SetClientID sets the client identifier. Only the first call has an effect;
// it reports whether id was stored.
func (c *Context) SetClientID(id string) bool {
	if _, ok := c.clientID.get(); ok {
		return false
	}
	c.clientID.set(id)
	return true
}

// Method returns the upper-cased request method.
func (c *Context) Method() string {
	return strings.ToUpper(c.req.Method)
}

// Param returns the named path parameter.
func (c *Context) Param(name string) (string, bool) {
	v, ok := c.params[name]
	return v, ok
}

// Params returns a copy of all path parameters.
func (c *Context) Params() map[string]string {
	return maps.Clone(c.params)
}

// Request returns the underlying request.
func (c *Context) Request() *http.Request {
	return c.req
}

// Context returns the request's context.
func (c *Context) Context() context.Context {
	return c.req.Context()
}

// Close removes temporary files created while parsing multipart bodies.
// Forms parsed by reads that finish after Close are removed as soon as they complete.
func (c *Context) Close() error {
	c.formsMu.Lock()
	defer c.formsMu.Unlock()

	c.closed = true

	var firstErr error
	for _, f := range c.forms {
		if err := f.RemoveAll(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.forms = nil
	return firstErr
}

func (c *Context) trackForm(f *multipart.Form) {
	if f == nil {
		return
	}

	c.formsMu.Lock()
	defer c.formsMu.Unlock()

	if c.closed {
		_ = f.RemoveAll()
		return
	}
	c.forms = append(c.forms, f)
}
