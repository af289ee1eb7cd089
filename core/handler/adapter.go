package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/reqkit/core/config"
	"github.com/dmitrymomot/reqkit/core/logger"
	"github.com/dmitrymomot/reqkit/core/reqctx"
	"github.com/dmitrymomot/reqkit/core/response"
	"github.com/dmitrymomot/reqkit/pkg/clientip"
)

// DefaultRequestIDHeader carries the request id on requests and responses.
const DefaultRequestIDHeader = "X-Request-ID"

type requestIDContextKey struct{}

// Adapter serves a HandlerFunc as an http.Handler. Every request gets its own
// reqctx.Context, which is closed once the response is written.
type Adapter struct {
	fn           HandlerFunc
	params       ParamsFunc
	schemas      SchemasFunc
	cfg          reqctx.Config
	log          *slog.Logger
	errorHandler ErrorHandler
	middlewares  []Middleware

	requestIDHeader string
	useRequestID    bool
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithParams sets the path parameter extractor (default: PatternParams).
func WithParams(fn ParamsFunc) Option {
	return func(a *Adapter) {
		if fn != nil {
			a.params = fn
		}
	}
}

// WithSchemas validates every request against schemas.
func WithSchemas(schemas *reqctx.Schemas) Option {
	return func(a *Adapter) {
		a.schemas = func(*http.Request) *reqctx.Schemas { return schemas }
	}
}

// WithSchemasFunc selects the schema bundle per request.
func WithSchemasFunc(fn SchemasFunc) Option {
	return func(a *Adapter) {
		if fn != nil {
			a.schemas = fn
		}
	}
}

// WithConfig sets the deadlines and caps of every request context.
func WithConfig(cfg reqctx.Config) Option {
	return func(a *Adapter) {
		a.cfg = cfg
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(log *slog.Logger) Option {
	return func(a *Adapter) {
		if log != nil {
			a.log = log
		}
	}
}

// WithErrorHandler replaces the default JSON error rendering.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *Adapter) {
		if h != nil {
			a.errorHandler = h
		}
	}
}

// WithMiddleware appends middlewares. The first one is the outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *Adapter) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithRequestIDHeader sets the request id header name. When trust is true an incoming
// id is reused instead of generating a new one.
func WithRequestIDHeader(name string, trust bool) Option {
	return func(a *Adapter) {
		if name != "" {
			a.requestIDHeader = name
		}
		a.useRequestID = trust
	}
}

// Handle adapts fn to net/http.
func Handle(fn HandlerFunc, opts ...Option) *Adapter {
	a := &Adapter{
		fn:              fn,
		params:          PatternParams,
		schemas:         func(*http.Request) *reqctx.Schemas { return nil },
		cfg:             reqctx.DefaultConfig(),
		log:             slog.Default(),
		requestIDHeader: DefaultRequestIDHeader,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.With(logger.Component("http"))
	if a.errorHandler == nil {
		a.errorHandler = a.defaultErrorHandler
	}
	return a
}

// ServeHTTP implements http.Handler.
func (a *Adapter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := a.requestID(r)
	w.Header().Set(a.requestIDHeader, requestID)
	r = r.WithContext(context.WithValue(r.Context(), requestIDContextKey{}, requestID))

	log := a.log.With(logger.RequestID(requestID))
	rc := reqctx.New(a.params(r), r.URL.RawQuery, r, a.schemas(r),
		reqctx.WithConfig(a.cfg),
		reqctx.WithLogger(log),
	)
	defer func() {
		if err := rc.Close(); err != nil {
			log.Warn("failed to remove multipart temp files", logger.Error(err))
		}
	}()
	rc.SetClientID(clientip.GetIP(r))

	next := a.fn
	for i := len(a.middlewares) - 1; i >= 0; i-- {
		next = a.middlewares[i](next)
	}

	resp := next(rc)
	if resp == nil {
		resp = NoContent()
	}
	if err := resp(w, r); err != nil {
		a.errorHandler(rc, w, err)
	}
}

func (a *Adapter) requestID(r *http.Request) string {
	if a.useRequestID {
		if id := r.Header.Get(a.requestIDHeader); id != "" {
			return id
		}
	}
	return uuid.NewString()
}

func (a *Adapter) defaultErrorHandler(rc *reqctx.Context, w http.ResponseWriter, err error) {
	status := response.StatusCode(err)
	requestID, _ := RequestID(rc.Context())

	attrs := []any{
		logger.RequestID(requestID),
		logger.ClientID(rc.ClientID()),
		logger.Method(rc.Method()),
		logger.Path(rc.Request().URL.Path),
		logger.StatusCode(status),
		logger.Error(err),
	}
	if status >= http.StatusInternalServerError {
		a.log.Error("request failed", attrs...)
	} else {
		a.log.Debug("request rejected", attrs...)
	}

	response.WriteJSONError(w, err)
}

// RequestID returns the request id assigned by the adapter.
func RequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey{}).(string)
	return id, ok
}

// ConfigFromEnv loads request context limits from the REQCTX_* environment variables
// (and a .env file, if present). Unset variables keep their defaults.
func ConfigFromEnv() (reqctx.Config, error) {
	var cfg reqctx.Config
	if err := config.Load(&cfg); err != nil {
		return reqctx.Config{}, err
	}
	return cfg, nil
}
