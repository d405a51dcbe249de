package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/doeshing/termnamer/internal/domain"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{in: "", want: zapcore.InfoLevel},
		{in: "debug", want: zapcore.DebugLevel},
		{in: "WARN", want: zapcore.WarnLevel},
		{in: "error", want: zapcore.ErrorLevel},
		{in: "chatty", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVerbose(t *testing.T) {
	t.Setenv(EnvDebug, "")
	assert.False(t, Verbose(false))
	assert.True(t, Verbose(true))

	t.Setenv(EnvDebug, "1")
	assert.True(t, Verbose(false))
}

func TestNew_WritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "termnamer.log")

	logger, level, err := New(domain.LoggingSettings{Level: "warn", File: file}, false)
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, level.Level())

	logger.Info("hidden")
	logger.Warn("visible")
	_ = logger.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "hidden"))
	assert.Contains(t, string(data), "visible")
}

func TestNew_VerboseLowersLevel(t *testing.T) {
	file := filepath.Join(t.TempDir(), "termnamer.log")
	_, level, err := New(domain.LoggingSettings{Level: "error", File: file}, true)
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level.Level())
}

func TestNew_RejectsBadLevel(t *testing.T) {
	_, _, err := New(domain.LoggingSettings{Level: "loud", File: filepath.Join(t.TempDir(), "x.log")}, false)
	assert.Error(t, err)
}
