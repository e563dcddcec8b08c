package logger

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

var log zerolog.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

// InitLogging directs output to the given file, or to stderr when filePath
// is empty. Failure to open the file falls back to stderr.
func InitLogging(filePath string) {
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}
	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			out = f
		}
	}
	log = zerolog.New(out).With().Timestamp().Logger()
}

func InfoLog(ctx context.Context, format string, args ...interface{}) {
	log.Info().Msg(fmt.Sprintf(format, args...))
}

func ErrorLog(ctx context.Context, format string, args ...interface{}) {
	log.Error().Msg(fmt.Sprintf(format, args...))
}

func DebugLog(ctx context.Context, format string, args ...interface{}) {
	log.Debug().Msg(fmt.Sprintf(format, args...))
}
