package logx

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/smart-spoon-core/advisor/internal/core"
)

var DefaultLoggerOpts = &LoggerOpts{
	Environment: core.Development,
}

// LoggerOpts controls how Init configures the global logger.
// Output defaults to stderr so log lines never mix with the advisor dialogue on stdout.
type LoggerOpts struct {
	Environment core.Environment
	Level       string
	Output      io.Writer
}

func safe(opts ...LoggerOpts) *LoggerOpts {
	if len(opts) == 0 {
		return DefaultLoggerOpts
	}
	return &opts[0]
}

func Init(opts ...LoggerOpts) {
	o := safe(opts...)
	out := o.Output
	if out == nil {
		out = os.Stderr
	}

	if o.Environment.IsProduction() {
		log.Logger = zerolog.New(out).With().Timestamp().Logger().Level(parseLevel(o.Level, zerolog.InfoLevel))
		return
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out}).With().Timestamp().Caller().Logger()
	log.Logger = log.Logger.Level(parseLevel(o.Level, zerolog.InfoLevel))
}

func parseLevel(v string, fallback zerolog.Level) zerolog.Level {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(v)))
	if err != nil {
		return fallback
	}
	return lvl
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}
