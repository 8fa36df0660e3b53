// Package logs builds the process-wide slog.Logger. Request-scoped child
// loggers are derived from it by the request id middleware.
package logs

import (
	"log/slog"
	"os"
	"strings"

	"jobboard/config"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Params defines the parameters required for the logger
type Params struct {
	fx.In

	Config *config.Config
}

// New builds the root logger. JSON to stdout for log shipping; the pretty
// text handler is for local development only. Every line carries the
// service name so multiple services sharing a sink stay distinguishable.
func New(params Params) (*slog.Logger, error) {
	levelName := strings.ToLower(params.Config.Env.Log.Level)
	level, ok := logLevels[levelName]
	if !ok {
		return nil, errors.Errorf("unknown log level: %s", params.Config.Env.Log.Level)
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if params.Config.Env.Log.Pretty {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	if name := params.Config.Env.ServiceName; name != "" {
		logger = logger.With(slog.String("service", name))
	}

	return logger, nil
}
