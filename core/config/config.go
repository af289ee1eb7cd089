package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParse is returned when environment variables cannot be parsed into the target.
var ErrParse = errors.New("config: failed to parse environment")

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> cached value
)

// Load parses environment variables into cfg, caching the result per type.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return fmt.Errorf("%w: target is nil", ErrParse)
	}

	typ := reflect.TypeFor[T]()
	if cached, ok := cache.Load(typ); ok {
		*cfg = cached.(T)
		return nil
	}

	if err := Parse(cfg); err != nil {
		return err
	}

	actual, _ := cache.LoadOrStore(typ, *cfg)
	*cfg = actual.(T)
	return nil
}

// MustLoad is like Load but panics on failure. Useful at startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Parse parses environment variables into cfg without touching the cache.
// Defaults already set on cfg are kept for variables that are not present.
func Parse[T any](cfg *T) error {
	if cfg == nil {
		return fmt.Errorf("%w: target is nil", ErrParse)
	}

	loadDotenv()

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	return nil
}

func loadDotenv() {
	dotenvOnce.Do(func() {
		// Existing variables win over .env values; a missing file is fine
		_ = godotenv.Load()
	})
}
