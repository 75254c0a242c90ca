package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func ParseLevel(level string) (zerolog.Level, error) {
	return zerolog.ParseLevel(level)
}

// SetupLogging points the global logger at a console writer on w.
func SetupLogging(w io.Writer, level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return &InvalidConfig{err.Error()}
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		With().
		Timestamp().
		Logger()
	return nil
}

// SetupStderrLogging is SetupLogging on stderr, as used by the commands.
func SetupStderrLogging(level string) error {
	return SetupLogging(os.Stderr, level)
}
