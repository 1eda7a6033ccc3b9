package util

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		level LogLevel
		want  zerolog.Level
	}{
		{"trace", TraceLevel, zerolog.TraceLevel},
		{"debug", DebugLevel, zerolog.DebugLevel},
		{"info", InfoLevel, zerolog.InfoLevel},
		{"warn", WarnLevel, zerolog.WarnLevel},
		{"error", ErrorLevel, zerolog.ErrorLevel},
		{"unknown_falls_back_to_info", 42, zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ZerologLevel(tt.level))
		})
	}
}

func TestZerologWriter_StripsStdlogPrefix(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := zerologWriter{logger: zerolog.New(&buf), level: zerolog.WarnLevel}

	n, err := w.Write([]byte("2025/01/01 12:00:00 fuse: mount done\n"))

	assert.NoError(t, err)
	assert.Equal(t, len("2025/01/01 12:00:00 fuse: mount done\n"), n)
	assert.Contains(t, buf.String(), `"message":"mount done"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestPointer(t *testing.T) {
	t.Parallel()

	p := Pointer(7)
	assert.Equal(t, 7, *p)
	*p = 8
	assert.Equal(t, 8, *Pointer(8))
}
