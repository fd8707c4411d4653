package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
	"todoapp/config"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	logFileMode = 0o644
	logDirMode  = 0o755
)

func InitLogger() {
	initWithWriter(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	log.Trace().Msg("Zerolog initialized.")
}

// InitFileLogger routes the global logger into a file. Used by the terminal
// client, whose screen is owned by the UI program.
func InitFileLogger(path string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), logDirMode); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFileMode)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	initWithWriter(zerolog.ConsoleWriter{Out: file, TimeFormat: time.RFC3339, NoColor: true})
	log.Trace().Str("path", path).Msg("Zerolog initialized with file output.")

	return file, nil
}

func initWithWriter(output io.Writer) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(output)
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func SetLogLevel(config *config.Config) {
	if config.Server.LogLevel == "" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Trace().Msg("Environment has no log level set up, using info.")

		return
	}

	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Unknown log level, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
