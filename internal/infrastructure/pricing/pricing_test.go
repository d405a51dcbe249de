package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreIndependentCopies(t *testing.T) {
	a := Defaults()
	a.Models["gpt-4o-mini"] = DefaultModelPricing

	b := Defaults()
	assert.InDelta(t, 1.5e-7, b.Models["gpt-4o-mini"].InputPerToken, 1e-15)
	assert.InDelta(t, 6e-7, b.Models["gpt-4o-mini"].OutputPerToken, 1e-15)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	table, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultModelPricing, table.Default)
	assert.Len(t, table.Models, len(defaultModels))

	table, err = Load("")
	require.NoError(t, err)
	assert.Len(t, table.Models, len(defaultModels))
}

func TestLoadAppliesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.toml")
	doc := `
[default]
output_per_mtok = 1.0

[models."gpt-4o-mini"]
input_per_mtok = 0.3

[models."ollama/llama3.2"]
input_per_mtok = 0
output_per_mtok = 0
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	table, err := Load(path)
	require.NoError(t, err)

	assert.InDelta(t, 1e-7, table.Default.InputPerToken, 1e-15)
	assert.InDelta(t, 1e-6, table.Default.OutputPerToken, 1e-15)

	mini := table.Models["gpt-4o-mini"]
	assert.InDelta(t, 3e-7, mini.InputPerToken, 1e-15)
	assert.InDelta(t, 6e-7, mini.OutputPerToken, 1e-15, "unset field keeps the built-in price")

	local, ok := table.PriceFor("ollama/llama3.2")
	require.True(t, ok)
	assert.Zero(t, local.InputPerToken)
	assert.Zero(t, table.Cost("ollama/llama3.2", 100, 100))
}

func TestLoadRejectsInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.toml")
	require.NoError(t, os.WriteFile(path, []byte("[models\nbroken"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing pricing overrides")
}

func TestSorted(t *testing.T) {
	entries := Sorted(Defaults())
	require.NotEmpty(t, entries)
	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].Model, entries[i].Model)
	}
}
