package usagestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/doeshing/termnamer/internal/domain"
	"github.com/doeshing/termnamer/internal/ports"
)

// FileStore keeps the usage log in a single JSON document.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the log. A missing file is an empty log. A bare JSON array of
// records is accepted as a log without lifetime totals.
func (f *FileStore) Load(context.Context) (domain.UsageLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.UsageLog{}, nil
		}
		return domain.UsageLog{}, fmt.Errorf("read usage file: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return domain.UsageLog{}, nil
	}

	var log domain.UsageLog
	if data[0] == '[' {
		err = json.Unmarshal(data, &log.Records)
	} else {
		err = json.Unmarshal(data, &log)
	}
	if err != nil {
		return domain.UsageLog{}, fmt.Errorf("parse usage file: %w", err)
	}
	return log, nil
}

// Save writes the log atomically.
func (f *FileStore) Save(_ context.Context, log domain.UsageLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	if log.Records == nil {
		log.Records = []domain.UsageRecord{}
	}
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".usage-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(domain.SecureFilePermissions); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Close is a no-op.
func (f *FileStore) Close() error {
	return nil
}

var _ ports.UsageRepository = (*FileStore)(nil)
