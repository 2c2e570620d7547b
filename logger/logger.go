package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Output formats accepted by Open.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New returns a console logger writing to out at the named level.
// Unknown or empty levels fall back to info.
func New(out io.Writer, level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    false,
	}

	return zerolog.New(output).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// NewJSON returns a logger emitting one JSON object per line.
func NewJSON(out io.Writer, level string) zerolog.Logger {
	return zerolog.New(out).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a LOG_LEVEL value to a zerolog level.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Open returns a logger writing to f in the given format. An empty or unknown
// format picks the console format on a terminal and JSON otherwise.
func Open(f *os.File, format, level string) zerolog.Logger {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		return NewJSON(f, level)
	case FormatConsole:
		return New(f, level)
	}
	if term.IsTerminal(int(f.Fd())) {
		return New(f, level)
	}
	return NewJSON(f, level)
}
