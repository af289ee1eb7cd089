// Package logger provides structured logging utilities built on Go's standard slog package:
// a small logger factory with functional options and nil-safe attribute helpers for the
// values the request context logs (fields, strategies, deadlines, identifiers).
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/reqkit/core/logger"
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithJSONFormatter(),
//		logger.WithAttr(logger.Component("reqctx")),
//	)
//
//	log.Debug("cookie header degraded to empty mapping",
//		logger.Field("cookies"),
//		logger.Error(err),
//	)
//
// # Nil Safety
//
// Helpers that receive optional values (Error, RequestID, ClientID) return an empty
// slog.Attr for zero inputs, which slog drops, so callers never need nil checks.
package logger
