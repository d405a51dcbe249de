package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContainer(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := `preferences:
  provider: ollama
usage:
  backend: file
  path: ` + filepath.Join(dir, "usage.json") + `
cache:
  enabled: true
  dir: ` + filepath.Join(dir, "cache") + `
logging:
  file: ` + filepath.Join(dir, "termnamer.log") + `
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	c, err := BuildContainer(context.Background(), Options{ConfigPath: cfgPath})
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, cfgPath, c.ConfigLoader.Path())
	assert.Equal(t, filepath.Join(dir, "usage.json"), c.UsageStore.Path())
	assert.Equal(t, filepath.Join(dir, "cache"), c.Cache.Dir())
	assert.Same(t, c.Meter, c.RenameService.Meter)
	assert.Same(t, c.RenameService, c.WatchService.Renamer)

	client, err := c.Factory.ForConfig(c.Config)
	require.NoError(t, err)
	assert.Equal(t, "ollama/llama3.2", client.Model())

	report, err := c.DoctorService.Run(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, report.Checks)
}
