package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/termnamer/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "1", cfg.ConfigFormatVersion)
	assert.True(t, cfg.AutoRenameEnabled())
	assert.Equal(t, 3, cfg.Threshold())
	assert.Equal(t, domain.LanguageChinese, cfg.Language())
	assert.Equal(t, "openrouter", cfg.Preferences.Provider)
	assert.Equal(t, "OPENROUTER_API_KEY", cfg.Providers.OpenRouter.APIKeyEnv)
	assert.Equal(t, "llama3.2", cfg.Providers.Ollama.Model)
	assert.Equal(t, domain.UsageBackendSQLite, cfg.Usage.Backend)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, domain.DefaultCacheTTL, cfg.CacheTTL())
}

func TestFileLoader_WritesDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.SecureFilePermissions), info.Mode().Perm())
}

func TestFileLoader_HydratesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preferences:\n  language: en\n  auto_rename: false\n"), 0o600))

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageEnglish, cfg.Language())
	assert.False(t, cfg.AutoRenameEnabled())
	assert.Equal(t, domain.DefaultCommandThreshold, cfg.Preferences.CommandThreshold)
	assert.Equal(t, "openrouter", cfg.Preferences.Provider)
	assert.Equal(t, 60, cfg.Preferences.TimeoutSeconds)
	assert.Equal(t, domain.MaxUsageRecords, cfg.Usage.MaxRecords)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestFileLoader_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preferences: [unclosed"), 0o600))

	_, err := NewFileLoader(path).Load(context.Background())
	assert.Error(t, err)
}

func TestFileLoader_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	t.Setenv(EnvConfigPath, path)

	loader := NewFileLoader("")
	assert.Equal(t, path, loader.Path())

	explicit := filepath.Join(t.TempDir(), "flag.yaml")
	assert.Equal(t, explicit, NewFileLoader(explicit).Path())
}

func TestFileLoader_SaveBackupReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)
	ctx := context.Background()

	cfg, err := loader.Load(ctx)
	require.NoError(t, err)
	cfg.Preferences.CommandThreshold = 7
	require.NoError(t, loader.Save(cfg))

	reloaded, err := loader.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, reloaded.Threshold())

	backup, err := loader.Backup()
	require.NoError(t, err)
	assert.FileExists(t, backup)

	def, err := loader.Reset()
	require.NoError(t, err)
	assert.Equal(t, 3, def.Threshold())
	reloaded, err = loader.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.Threshold())
}

func TestGetAndSet(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("get scalar", func(t *testing.T) {
		v, err := Get(cfg, "preferences.language")
		require.NoError(t, err)
		assert.Equal(t, "zh", v)
	})

	t.Run("get section", func(t *testing.T) {
		v, err := Get(cfg, "usage")
		require.NoError(t, err)
		assert.IsType(t, map[string]interface{}{}, v)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := Get(cfg, "preferences.nope")
		assert.Error(t, err)
	})

	t.Run("set keeps types", func(t *testing.T) {
		updated, err := Set(cfg, "preferences.command_threshold", "5")
		require.NoError(t, err)
		assert.Equal(t, 5, updated.Threshold())

		updated, err = Set(updated, "preferences.auto_rename", "false")
		require.NoError(t, err)
		assert.False(t, updated.AutoRenameEnabled())
		assert.Equal(t, 5, updated.Threshold())
	})

	t.Run("set creates nested keys", func(t *testing.T) {
		updated, err := Set(cfg, "providers.openai.api_key", "sk-test")
		require.NoError(t, err)
		assert.Equal(t, "sk-test", updated.Providers.OpenAI.APIKey)
		assert.Empty(t, cfg.Providers.OpenAI.APIKey)
	})

	t.Run("set rejects mistyped value", func(t *testing.T) {
		_, err := Set(cfg, "preferences.command_threshold", "many")
		assert.Error(t, err)
	})

	t.Run("set rejects empty segment", func(t *testing.T) {
		_, err := Set(cfg, "preferences..language", "en")
		assert.Error(t, err)
	})
}
