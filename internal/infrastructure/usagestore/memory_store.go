package usagestore

import (
	"context"
	"sync"

	"github.com/doeshing/termnamer/internal/domain"
	"github.com/doeshing/termnamer/internal/ports"
)

// MemoryStore keeps the usage log for the lifetime of the process.
type MemoryStore struct {
	mu  sync.Mutex
	log domain.UsageLog
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(context.Context) (domain.UsageLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.UsageLog{
		Records:  append([]domain.UsageRecord(nil), m.log.Records...),
		Lifetime: m.log.Lifetime,
	}, nil
}

func (m *MemoryStore) Save(_ context.Context, log domain.UsageLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log = domain.UsageLog{
		Records:  append([]domain.UsageRecord(nil), log.Records...),
		Lifetime: log.Lifetime,
	}
	return nil
}

func (m *MemoryStore) Path() string { return ":memory:" }

func (m *MemoryStore) Close() error { return nil }

var _ ports.UsageRepository = (*MemoryStore)(nil)
