// Package pricing provides the per-token price table used by the usage meter
// and optional user overrides read from TOML.
package pricing

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/doeshing/termnamer/internal/domain"
)

// DefaultModelPricing applies to models missing from the table.
var DefaultModelPricing = domain.ModelPricing{InputPerToken: 1e-7, OutputPerToken: 4e-7}

// defaultModels lists USD prices per token.
var defaultModels = map[string]domain.ModelPricing{
	// OpenRouter Gemini
	"google/gemini-2.0-flash-001":   {InputPerToken: 1e-7, OutputPerToken: 4e-7},
	"google/gemini-2.5-pro-preview": {InputPerToken: 1.25e-6, OutputPerToken: 1e-5},
	"google/gemini-2.5-flash":       {InputPerToken: 3e-7, OutputPerToken: 1e-6},
	"google/gemini-flash-1.5":       {InputPerToken: 7.5e-8, OutputPerToken: 3e-7},
	"google/gemini-pro-1.5":         {InputPerToken: 2.5e-6, OutputPerToken: 7.5e-6},

	// OpenRouter Claude
	"anthropic/claude-3-haiku":    {InputPerToken: 2.5e-7, OutputPerToken: 1.25e-6},
	"anthropic/claude-3.5-sonnet": {InputPerToken: 3e-6, OutputPerToken: 1.5e-5},
	"anthropic/claude-3-5-haiku":  {InputPerToken: 1e-6, OutputPerToken: 5e-6},
	"anthropic/claude-3.7-sonnet": {InputPerToken: 3e-6, OutputPerToken: 1.5e-5},

	// OpenRouter OpenAI
	"openai/gpt-4o-mini":  {InputPerToken: 1.5e-7, OutputPerToken: 6e-7},
	"openai/gpt-4o":       {InputPerToken: 2.5e-6, OutputPerToken: 1e-5},
	"openai/gpt-4.1":      {InputPerToken: 2e-6, OutputPerToken: 8e-6},
	"openai/gpt-4.1-mini": {InputPerToken: 4e-7, OutputPerToken: 1.6e-6},
	"openai/gpt-4.1-nano": {InputPerToken: 1e-7, OutputPerToken: 4e-7},

	// OpenAI direct
	"gpt-4o-mini": {InputPerToken: 1.5e-7, OutputPerToken: 6e-7},
	"gpt-4o":      {InputPerToken: 2.5e-6, OutputPerToken: 1e-5},

	// Anthropic direct
	"claude-3-haiku-20240307":    {InputPerToken: 2.5e-7, OutputPerToken: 1.25e-6},
	"claude-3-5-sonnet-20241022": {InputPerToken: 3e-6, OutputPerToken: 1.5e-5},

	// Meta Llama via OpenRouter
	"meta-llama/llama-3.1-8b-instruct":  {InputPerToken: 5.5e-8, OutputPerToken: 5.5e-8},
	"meta-llama/llama-3.1-70b-instruct": {InputPerToken: 3.5e-7, OutputPerToken: 4e-7},
}

// Defaults returns a fresh copy of the built-in table.
func Defaults() domain.PriceTable {
	models := make(map[string]domain.ModelPricing, len(defaultModels))
	for name, p := range defaultModels {
		models[name] = p
	}
	return domain.PriceTable{Models: models, Default: DefaultModelPricing}
}

// Overrides is the TOML document accepted by Load. Prices are USD per
// million tokens, e.g.
//
//	[default]
//	input_per_mtok = 0.1
//
//	[models."ollama/llama3.2"]
//	input_per_mtok = 0
//	output_per_mtok = 0
type Overrides struct {
	Default *ModelOverride           `toml:"default,omitempty"`
	Models  map[string]ModelOverride `toml:"models,omitempty"`
}

// ModelOverride holds optional per-million-token prices. Unset fields keep
// the built-in value.
type ModelOverride struct {
	InputPerMTok  *float64 `toml:"input_per_mtok,omitempty"`
	OutputPerMTok *float64 `toml:"output_per_mtok,omitempty"`
}

// Load returns the built-in table merged with overrides from path. An empty
// path or a missing file yields the defaults.
func Load(path string) (domain.PriceTable, error) {
	table := Defaults()
	if path == "" {
		return table, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return table, nil
		}
		return table, fmt.Errorf("reading pricing overrides: %w", err)
	}

	var overrides Overrides
	if err := toml.Unmarshal(data, &overrides); err != nil {
		return table, fmt.Errorf("parsing pricing overrides: %w", err)
	}
	return Apply(table, overrides), nil
}

// Apply merges overrides into table and returns the result.
func Apply(table domain.PriceTable, overrides Overrides) domain.PriceTable {
	if overrides.Default != nil {
		table.Default = overrides.Default.apply(table.Default)
	}
	for name, o := range overrides.Models {
		base, ok := table.Models[name]
		if !ok {
			base = table.Default
		}
		table.Models[name] = o.apply(base)
	}
	return table
}

func (o ModelOverride) apply(base domain.ModelPricing) domain.ModelPricing {
	if o.InputPerMTok != nil {
		base.InputPerToken = *o.InputPerMTok / 1_000_000
	}
	if o.OutputPerMTok != nil {
		base.OutputPerToken = *o.OutputPerMTok / 1_000_000
	}
	return base
}

// Entry is a single row of an effective price table.
type Entry struct {
	Model   string
	Pricing domain.ModelPricing
}

// Sorted lists the table rows by model name.
func Sorted(table domain.PriceTable) []Entry {
	entries := make([]Entry, 0, len(table.Models))
	for name, p := range table.Models {
		entries = append(entries, Entry{Model: name, Pricing: p})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Model < entries[j].Model })
	return entries
}
