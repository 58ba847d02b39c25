package observability

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger initializes the global zerolog logger.  Development gets a
// human readable console writer; every other environment logs JSON with
// timestamp and caller.
func InitLogger(serviceName, env, level string) {
	InitLoggerTo(os.Stdout, serviceName, env, level)
}

// InitLoggerTo is InitLogger with an explicit output.
func InitLoggerTo(out io.Writer, serviceName, env, level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if env == "development" || env == "dev" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}).With().
			Timestamp().
			Str("service", serviceName).
			Logger()
		return
	}
	log.Logger = zerolog.New(out).
		With().
		Timestamp().
		Caller().
		Str("service", serviceName).
		Logger()
}

type requestIDKey struct{}

// WithRequestID stores the request id on ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// LoggerFromContext returns the global logger enriched with the request
// id carried by ctx, if any.
func LoggerFromContext(ctx context.Context) *zerolog.Logger {
	logger := log.With().Logger()
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		logger = logger.With().Str("request_id", id).Logger()
	}
	return &logger
}
