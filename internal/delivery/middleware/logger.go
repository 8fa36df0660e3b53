package middleware

import (
	"log/slog"
	"time"

	"jobboard/config"
	deliverycontext "jobboard/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// LoggerMiddleware writes a detailed per-request line when debug is on.
// slog-echo owns the production access log; this adds the fields it omits
// (query string, user agent, the handler error) for local debugging.
type LoggerMiddleware struct {
	logger *slog.Logger
	debug  bool
}

// NewLoggerMiddleware is the constructor for LoggerMiddleware.
func NewLoggerMiddleware(logger *slog.Logger, cfg *config.Config) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger,
		debug:  cfg.Env.Debug,
	}
}

// Handle runs the next handler and, in debug mode, logs the request
// afterwards with the handler's error included.
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.debug {
			return next(c)
		}

		start := time.Now()

		var err error
		defer func() {
			m.logRequest(c, start, err)
		}()

		err = next(c)

		return err
	}
}

func (m *LoggerMiddleware) logRequest(c echo.Context, start time.Time, err error) {
	req := c.Request()
	res := c.Response()

	// The request-scoped logger already carries the request id.
	logger := deliverycontext.GetLoggerOrDefault(req.Context(), m.logger)

	fields := []any{
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("status", res.Status),
		slog.Duration("latency", time.Since(start)),
		slog.String("remote_ip", c.RealIP()),
		slog.String("user_agent", req.UserAgent()),
	}

	if query := req.URL.RawQuery; query != "" {
		fields = append(fields, slog.String("query", query))
	}

	if err != nil {
		fields = append(fields, slog.Any("error", err))
	}

	switch {
	case res.Status >= 500:
		logger.Error("HTTP request", fields...)
	case res.Status >= 400:
		logger.Warn("HTTP request", fields...)
	default:
		logger.Debug("HTTP request", fields...)
	}
}
