package reqctx

import "time"

// Default limits applied when a Config field is zero.
const (
	DefaultBodyTimeout       = 3000 * time.Millisecond
	DefaultRawReadTimeout    = 2500 * time.Millisecond
	DefaultCookieHeaderLimit = 1000
	DefaultHeaderLimit       = 50
	DefaultMaxBodySize       = 10 << 20 // 10 MB
	DefaultMaxFormMemory     = 10 << 20 // 10 MB
)

// Config holds the deadlines and caps of a request context.
// It can be loaded from the environment with core/config.
type Config struct {
	// BodyTimeout bounds every read made by Body.
	BodyTimeout time.Duration `env:"REQCTX_BODY_TIMEOUT" envDefault:"3s"`

	// RawReadTimeout is the default deadline of Blob, Buffer and FormData.
	RawReadTimeout time.Duration `env:"REQCTX_RAW_READ_TIMEOUT" envDefault:"2500ms"`

	// CookieHeaderLimit is the maximum cookie header length in characters.
	CookieHeaderLimit int `env:"REQCTX_COOKIE_HEADER_LIMIT" envDefault:"1000"`

	// HeaderLimit caps the header entries copied into the headers mapping.
	HeaderLimit int `env:"REQCTX_HEADER_LIMIT" envDefault:"50"`

	// MaxBodySize caps the bytes recorded for replaying a consumed body.
	MaxBodySize int64 `env:"REQCTX_MAX_BODY_SIZE" envDefault:"10485760"`

	// MaxFormMemory is the multipart memory budget; larger parts spill to temp files.
	MaxFormMemory int64 `env:"REQCTX_MAX_FORM_MEMORY" envDefault:"10485760"`
}

// DefaultConfig returns the default limits.
func DefaultConfig() Config {
	return Config{
		BodyTimeout:       DefaultBodyTimeout,
		RawReadTimeout:    DefaultRawReadTimeout,
		CookieHeaderLimit: DefaultCookieHeaderLimit,
		HeaderLimit:       DefaultHeaderLimit,
		MaxBodySize:       DefaultMaxBodySize,
		MaxFormMemory:     DefaultMaxFormMemory,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BodyTimeout <= 0 {
		c.BodyTimeout = d.BodyTimeout
	}
	if c.RawReadTimeout <= 0 {
		c.RawReadTimeout = d.RawReadTimeout
	}
	if c.CookieHeaderLimit <= 0 {
		c.CookieHeaderLimit = d.CookieHeaderLimit
	}
	if c.HeaderLimit <= 0 {
		c.HeaderLimit = d.HeaderLimit
	}
	if c.MaxBodySize <= 0 {
		c.MaxBodySize = d.MaxBodySize
	}
	if c.MaxFormMemory <= 0 {
		c.MaxFormMemory = d.MaxFormMemory
	}
	return c
}
