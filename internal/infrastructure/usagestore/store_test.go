package usagestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/doeshing/termnamer/internal/domain"
)

func sampleLog() domain.UsageLog {
	base := time.UnixMilli(1760000000000)
	return domain.UsageLog{
		Records: []domain.UsageRecord{
			{Timestamp: base, Model: "gpt-4o-mini", PromptTokens: 1000, CompletionTokens: 500, TotalTokens: 1500, Cost: 0.00045},
			{Timestamp: base.Add(time.Minute), Model: "ollama/llama3.2", PromptTokens: 40, CompletionTokens: 3, TotalTokens: 43},
		},
		Lifetime: domain.UsageStats{
			TotalPromptTokens:     5040,
			TotalCompletionTokens: 1503,
			TotalTokens:           6543,
			TotalCost:             0.002,
			RequestCount:          7,
		},
	}
}

func assertLogEqual(t *testing.T, want, got domain.UsageLog) {
	t.Helper()
	require.Len(t, got.Records, len(want.Records))
	for i := range want.Records {
		assert.True(t, want.Records[i].Timestamp.Equal(got.Records[i].Timestamp), "record %d timestamp", i)
		assert.Equal(t, want.Records[i].Model, got.Records[i].Model)
		assert.Equal(t, want.Records[i].TotalTokens, got.Records[i].TotalTokens)
		assert.InDelta(t, want.Records[i].Cost, got.Records[i].Cost, 1e-12)
	}
	assert.Equal(t, want.Lifetime.RequestCount, got.Lifetime.RequestCount)
	assert.Equal(t, want.Lifetime.TotalTokens, got.Lifetime.TotalTokens)
	assert.InDelta(t, want.Lifetime.TotalCost, got.Lifetime.TotalCost, 1e-12)
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "usage.db")
		store, err := OpenSQLite(ctx, path)
		require.NoError(t, err)
		defer store.Close()

		empty, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, empty.Records)
		assert.Zero(t, empty.Lifetime.RequestCount)

		require.NoError(t, store.Save(ctx, sampleLog()))
		got, err := store.Load(ctx)
		require.NoError(t, err)
		assertLogEqual(t, sampleLog(), got)
	})

	t.Run("save replaces previous log", func(t *testing.T) {
		store, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "usage.db"))
		require.NoError(t, err)
		defer store.Close()

		require.NoError(t, store.Save(ctx, sampleLog()))
		require.NoError(t, store.Save(ctx, domain.UsageLog{}))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, got.Records)
		assert.Zero(t, got.Lifetime.TotalTokens)
	})

	t.Run("reopen keeps data and migrations are idempotent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "usage.db")
		first, err := OpenSQLite(ctx, path)
		require.NoError(t, err)
		require.NoError(t, first.Save(ctx, sampleLog()))
		require.NoError(t, first.Close())

		second, err := OpenSQLite(ctx, path)
		require.NoError(t, err)
		defer second.Close()
		got, err := second.Load(ctx)
		require.NoError(t, err)
		assertLogEqual(t, sampleLog(), got)
	})
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file is empty", func(t *testing.T) {
		store := NewFileStore(filepath.Join(t.TempDir(), "usage.json"))
		log, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, log.Records)
	})

	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dir", "usage.json")
		store := NewFileStore(path)
		require.NoError(t, store.Save(ctx, sampleLog()))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assertLogEqual(t, sampleLog(), got)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(domain.SecureFilePermissions), info.Mode().Perm())
	})

	t.Run("accepts bare record array", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "usage.json")
		doc := `[{"timestamp":1760000000000,"model":"gpt-4o-mini","promptTokens":10,"completionTokens":5,"totalTokens":15,"cost":0.1}]`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

		got, err := NewFileStore(path).Load(ctx)
		require.NoError(t, err)
		require.Len(t, got.Records, 1)
		assert.Equal(t, 15, got.Records[0].TotalTokens)
		assert.Equal(t, int64(1760000000000), got.Records[0].Timestamp.UnixMilli())
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "usage.json")
		require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o600))
		_, err := NewFileStore(path).Load(ctx)
		assert.Error(t, err)
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	log := sampleLog()
	require.NoError(t, store.Save(ctx, log))

	log.Records[0].Model = "mutated"
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", got.Records[0].Model)
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	logger := zaptest.NewLogger(t)

	mem, err := Open(ctx, domain.UsageSettings{Backend: domain.UsageBackendMemory}, logger)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, mem)

	file, err := Open(ctx, domain.UsageSettings{Backend: domain.UsageBackendFile, Path: filepath.Join(dir, "u.json")}, logger)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, file)

	db, err := Open(ctx, domain.UsageSettings{Backend: domain.UsageBackendSQLite, Path: filepath.Join(dir, "u.db")}, logger)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, db)
	require.NoError(t, db.Close())

	_, err = Open(ctx, domain.UsageSettings{Backend: "postgres"}, logger)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestOpenFallsBackToFileStore(t *testing.T) {
	dir := t.TempDir()
	// A directory where the database file should be makes sqlite fail.
	dbPath := filepath.Join(dir, "usage.db")
	require.NoError(t, os.MkdirAll(dbPath, 0o755))

	store, err := Open(context.Background(), domain.UsageSettings{Backend: domain.UsageBackendSQLite, Path: dbPath}, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.IsType(t, &FileStore{}, store)
	assert.Equal(t, filepath.Join(dir, "usage.json"), store.Path())
}
