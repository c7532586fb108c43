package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log is the process-wide logger. It defaults to a no-op JSON logger on stdout
// so packages can log before Init runs (tests, one-off commands).
var Log = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init configures the global logger for the given environment.
// "development" gets a pretty console writer, anything else JSON.
func Init(env string) {
	zerolog.TimeFieldFormat = time.RFC3339

	var out io.Writer = os.Stdout
	if env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
		Log = zerolog.New(out).With().Timestamp().Caller().Logger()
		return
	}
	if env == "test" {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	Log = zerolog.New(out).With().Timestamp().Str("service", "roommate-finder").Logger()
}

func Info() *zerolog.Event {
	return Log.Info()
}

func Error() *zerolog.Event {
	return Log.Error()
}

func Warn() *zerolog.Event {
	return Log.Warn()
}

func Debug() *zerolog.Event {
	return Log.Debug()
}

func Fatal() *zerolog.Event {
	return Log.Fatal()
}
