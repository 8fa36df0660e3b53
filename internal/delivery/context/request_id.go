// Package context threads request-scoped values (correlation id, logger)
// from the HTTP layer down to the usecases without leaking echo types into
// the domain. The usecases only ever see context.Context.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is the correlation header. Inbound values are honored so
// a caller can thread its own id through the auth flow; the id is echoed on
// every response and stamped on every log line the request produces.
const HeaderXRequestID = "X-Request-Id"

// echoKeyRequestID keys the id inside echo.Context. Namespaced with the
// module path so it cannot collide with other middleware calling c.Set.
const echoKeyRequestID = "jobboard/request-id"

// ctxKey keys values in context.Context. An unexported type makes the keys
// unreachable from other packages, so nothing outside this package can
// overwrite them.
type ctxKey int

const (
	ctxKeyRequestID ctxKey = iota
	ctxKeyLogger
)

// GetRequestID returns the id bound to the echo context, or "" when the
// correlation middleware did not run (health checks, direct handler tests).
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(echoKeyRequestID).(string)

	return id
}

// SetRequestID binds the id to the echo context for the response path.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoKeyRequestID, requestID)
}

// WithRequestID carries the id into context.Context for the usecase layer.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

// GetRequestIDFromContext returns the id carried by ctx, or "".
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string)

	return id
}

// WithLogger binds a request-scoped logger, already tagged with the request
// id, to ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKeyLogger, logger)
}

// GetLoggerOrDefault returns the request-scoped logger, or fallback when ctx
// carries none. Services call this so background work (token reaping, fx
// lifecycle hooks) logs through their own logger while request work logs
// with the request id attached.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(ctxKeyLogger).(*slog.Logger); ok {
		return logger
	}

	return fallback
}
