// Package usagestore persists the usage log behind ports.UsageRepository.
// SQLite is the default backend; a JSON file and an in-memory store are
// available for environments where SQLite is unwanted.
package usagestore

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/doeshing/termnamer/internal/domain"
	"github.com/doeshing/termnamer/internal/pkg/filesystem"
	"github.com/doeshing/termnamer/internal/ports"
)

// Store is a usage repository that owns a resource.
type Store interface {
	ports.UsageRepository
	Path() string
	Close() error
}

// DefaultPath returns the default location for backend.
func DefaultPath(backend string) string {
	switch backend {
	case domain.UsageBackendFile:
		return filesystem.AppPath("usage.json")
	case domain.UsageBackendMemory:
		return ":memory:"
	default:
		return filesystem.AppPath("usage.db")
	}
}

// Open returns the backend selected by settings. When SQLite cannot be
// opened the JSON file next to it is used instead.
func Open(ctx context.Context, settings domain.UsageSettings, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	backend := settings.Backend
	if backend == "" {
		backend = domain.UsageBackendSQLite
	}
	path := settings.Path
	if path == "" {
		path = DefaultPath(backend)
	}
	path = filesystem.ExpandHome(path)

	switch backend {
	case domain.UsageBackendMemory:
		return NewMemoryStore(), nil
	case domain.UsageBackendFile:
		return NewFileStore(path), nil
	case domain.UsageBackendSQLite:
		store, err := OpenSQLite(ctx, path)
		if err == nil {
			return store, nil
		}
		fallback := filepath.Join(filepath.Dir(path), "usage.json")
		logger.Warn("sqlite usage store unavailable, using file store",
			zap.String("path", path),
			zap.String("fallback", fallback),
			zap.Error(err),
		)
		return NewFileStore(fallback), nil
	default:
		return nil, &domain.ConfigError{Field: "usage.backend", Reason: fmt.Sprintf("unsupported backend %q", backend)}
	}
}
