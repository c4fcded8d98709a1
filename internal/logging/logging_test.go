package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter_Level(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{"parses debug", "debug", zerolog.DebugLevel},
		{"case insensitive", "WARN", zerolog.WarnLevel},
		{"falls back on garbage", "loud", zerolog.InfoLevel},
		{"falls back on empty", "", zerolog.InfoLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logger := NewWithWriter(tc.level, &bytes.Buffer{})
			assert.Equal(t, tc.want, logger.GetLevel())
		})
	}
}

func TestNewWithWriter_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("info", &buf)

	logger.Debug().Msg("hidden")
	logger.Info().Str("component", "proxy").Msg("hello")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"component":"proxy"`)
	assert.Contains(t, out, `"message":"hello"`)
}
