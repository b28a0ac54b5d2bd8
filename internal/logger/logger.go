package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Log is the global logger instance
var Log *slog.Logger

var sentryEnabled bool

// Init initializes the global logger.
// Development: text format at debug level. Production: JSON at info level.
// With a Sentry DSN, error records are also forwarded to Sentry; reminder
// delivery failures surface there since they never reach a user.
func Init(isDev bool, sentryDSN, component string) {
	level := slog.LevelInfo
	if isDev {
		level = slog.LevelDebug
	}

	var handlers []slog.Handler
	opts := &slog.HandlerOptions{Level: level}
	if isDev {
		handlers = append(handlers, slog.NewTextHandler(os.Stdout, opts))
	} else {
		handlers = append(handlers, slog.NewJSONHandler(os.Stdout, opts))
	}

	if sentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              sentryDSN,
			TracesSampleRate: 1.0,
		})
		if err != nil {
			slog.Warn("sentry init failed, continuing without it", "error", err)
		} else {
			sentryEnabled = true
			handlers = append(handlers, slogsentry.Option{
				Level: slog.LevelError,
			}.NewSentryHandler())
		}
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = slogmulti.Fanout(handlers...)
	} else {
		handler = handlers[0]
	}

	Log = slog.New(handler).With("component", component)
	slog.SetDefault(Log)
}

// Flush drains buffered Sentry events before the process exits.
func Flush() {
	if sentryEnabled {
		sentry.Flush(2 * time.Second)
	}
}
