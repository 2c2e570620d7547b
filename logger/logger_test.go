package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewJSONFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf, "warn")

	log.Info().Msg("hidden")
	log.Warn().Str("command", "ping").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "ping", entry["command"])
	assert.Equal(t, "warn", entry["level"])
}

func TestNewConsoleWrites(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info")

	log.Info().Msg("ready")
	assert.Contains(t, buf.String(), "ready")
}

func TestOpenPicksFormat(t *testing.T) {
	tests := []struct {
		format   string
		wantJSON bool
	}{
		{"json", true},
		{" JSON ", true},
		{"console", false},
		{"", true}, // a regular file is not a terminal
		{"fancy", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			f, err := os.CreateTemp(t.TempDir(), "log")
			require.NoError(t, err)
			defer f.Close()

			log := Open(f, tt.format, "info")
			log.Info().Msg("ready")

			out, err := os.ReadFile(f.Name())
			require.NoError(t, err)
			assert.Contains(t, string(out), "ready")
			assert.Equal(t, tt.wantJSON, json.Valid(bytes.TrimSpace(out)), string(out))
		})
	}
}
