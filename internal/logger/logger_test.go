package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	log, err := New(true, false)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNewDebugLowersLevel(t *testing.T) {
	log, err := New(false, true)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{name: "short stays", in: "abc", limit: 10, want: "abc"},
		{name: "exact stays", in: "abcde", limit: 5, want: "abcde"},
		{name: "long is cut", in: "abcdefgh", limit: 5, want: "abcde..."},
		{name: "trims whitespace", in: "  abc  ", limit: 10, want: "abc"},
		{name: "multibyte runes", in: "çãoçãoção", limit: 3, want: "ção..."},
		{name: "zero limit", in: "abc", limit: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.limit))
		})
	}
}
