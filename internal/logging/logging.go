// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global logger at stderr. Development environments get
// the console writer; everything else logs JSON. An unknown level falls back
// to info.
func Setup(level, environment string) {
	SetupWriter(os.Stderr, level, environment)
}

func SetupWriter(w io.Writer, level, environment string) {
	zerolog.TimeFieldFormat = time.RFC3339

	out := w
	if isDevelopment(environment) {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(ParseLevel(level))
}

func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func isDevelopment(environment string) bool {
	switch strings.ToLower(environment) {
	case "", "dev", "development", "local":
		return true
	}
	return false
}
