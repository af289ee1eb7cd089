// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package loads .env files on first use (a missing file is not an error) and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/reqkit/core/config"
//
//	var cfg reqctx.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	rc := reqctx.New(params, r.URL.RawQuery, r, schemas, reqctx.WithConfig(cfg))
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 reqctx.Config
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 reqctx.Config
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Use Parse to bypass the cache, e.g. in tests that set variables with t.Setenv.
package config
