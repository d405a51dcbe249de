// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The naming core (tracker, meter, rename orchestration) depends only on the
// contracts below. Concrete adapters live under internal/infrastructure:
// HTTP generation clients, usage stores, the name cache, the event stream and
// the CLI renamer.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., GenerationClient, UsageRepository)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"
	"time"

	"github.com/doeshing/termnamer/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.termnamer/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ProviderFactory builds a generation client for the configured backend.
// It is called once per naming attempt so configuration changes apply
// without a restart.
type ProviderFactory interface {
	ForConfig(domain.Config) (GenerationClient, error)
}

// GenerationClient turns a command list into a sanitized session name.
// Implementations build the prompt, call their backend, and clean the raw
// output before returning.
type GenerationClient interface {
	Name() string
	Model() string
	GenerateName(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error)
}

// UsageRepository persists the usage log between runs.
type UsageRepository interface {
	Load(ctx context.Context) (domain.UsageLog, error)
	Save(ctx context.Context, log domain.UsageLog) error
}

// NameCache remembers generated names for identical requests.
type NameCache interface {
	Get(key string) (domain.CacheEntry, bool)
	Set(entry domain.CacheEntry) error
	Entries() ([]domain.CacheEntry, error)
	Clear() error
	TTL() time.Duration
}

// SessionRenamer applies a generated name to a live session in the host.
type SessionRenamer interface {
	Rename(ctx context.Context, id domain.SessionID, name string) error
}

// SessionEventHandler receives session lifecycle and command notifications.
type SessionEventHandler interface {
	OnSessionOpened(id domain.SessionID)
	OnSessionClosed(id domain.SessionID)
	OnCommandObserved(id domain.SessionID, command string)
}

// CommandSource delivers session events. Subscribe returns a function that
// removes the handler again.
type CommandSource interface {
	Subscribe(SessionEventHandler) (unsubscribe func())
}

// Clipboard provides cross-platform clipboard integration for copying names.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}
