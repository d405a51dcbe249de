// Package logger builds the process-wide zap logger.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/doeshing/termnamer/internal/domain"
	"github.com/doeshing/termnamer/internal/pkg/filesystem"
)

// EnvDebug forces verbose logging when set to a truthy value.
const EnvDebug = "TERMNAMER_DEBUG"

// DefaultFile is where logs go unless logging.file says otherwise.
func DefaultFile() string {
	return filesystem.AppPath("termnamer.log")
}

// ParseLevel maps a config level name onto zap. Empty means info.
func ParseLevel(name string) (zapcore.Level, error) {
	if strings.TrimSpace(name) == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// Verbose reports whether flag or the environment asks for debug output.
func Verbose(flag bool) bool {
	if flag {
		return true
	}
	switch strings.ToLower(os.Getenv(EnvDebug)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// New builds a JSON logger writing to the configured file. Verbose mode
// lowers the level to debug and mirrors output to stderr.
func New(settings domain.LoggingSettings, verbose bool) (*zap.Logger, zap.AtomicLevel, error) {
	level, err := ParseLevel(settings.Level)
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}
	logLevel := zap.NewAtomicLevelAt(level)
	if verbose {
		logLevel.SetLevel(zap.DebugLevel)
	}

	file := settings.File
	if file == "" {
		file = DefaultFile()
	}
	file = filesystem.ExpandHome(file)
	if err := os.MkdirAll(filepath.Dir(file), domain.DirectoryPermissions); err != nil {
		return nil, zap.AtomicLevel{}, fmt.Errorf("create log dir: %w", err)
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{file}
	loggerConfig.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		loggerConfig.OutputPaths = append(loggerConfig.OutputPaths, "stderr")
	}

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}
	return logger, logLevel, nil
}
