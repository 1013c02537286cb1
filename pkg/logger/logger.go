// Package logger provides a structured, levelled logger built on log/slog.
//
// The key extension over plain slog is WithCtx: it returns a logger with the
// request ID already attached, so every log line from a handler is
// automatically correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order created", "order_id", order.ID)
//	// → time=... level=INFO msg="order created" request_id=a1b2c3d4 order_id=...
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/sedastudio/boutique/config"
)

var L *slog.Logger

func init() {
	opts := &slog.HandlerOptions{}
	var handler slog.Handler

	switch config.AppEnv() {
	case "production", "prod":
		opts.Level = slog.LevelInfo
		handler = slog.NewJSONHandler(os.Stdout, opts) // structured JSON for log aggregators
	default:
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts) // human-readable for dev
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// EnableMongoSink fans the base logger out to a MongoDB collection in
// addition to stdout. Called from bootstrap when LOG_MONGO_URI is set; the
// returned closer flushes pending records on shutdown.
func EnableMongoSink(uri, db, collection string) (func(), error) {
	mh, err := NewMongoHandler(uri, db, collection)
	if err != nil {
		return nil, err
	}

	L = slog.New(NewMultiHandler(L.Handler(), mh))
	slog.SetDefault(L)
	return mh.Close, nil
}

// ─────────────────────────────────────────────
// Context-aware logger
// ─────────────────────────────────────────────

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the *slog.Logger stored in ctx by the request-ID
// middleware (already tagged with request_id). If none is present the base
// logger is returned unchanged.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
// Called by the RequestID middleware — not usually needed in application code.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// ─────────────────────────────────────────────
// Short-hand helpers (use base logger)
// ─────────────────────────────────────────────

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
