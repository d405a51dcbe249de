package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageRecordJSONShape(t *testing.T) {
	rec := UsageRecord{
		Timestamp:        time.UnixMilli(1700000000123),
		Model:            "gpt-4o-mini",
		PromptTokens:     10,
		CompletionTokens: 5,
		TotalTokens:      15,
		Cost:             0.5,
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"timestamp":1700000000123,"model":"gpt-4o-mini","promptTokens":10,"completionTokens":5,"totalTokens":15,"cost":0.5}`, string(data))

	var back UsageRecord
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, rec.Timestamp.Equal(back.Timestamp))
	assert.Equal(t, rec.Model, back.Model)
}

func TestPriceTableCost(t *testing.T) {
	table := PriceTable{
		Models:  map[string]ModelPricing{"known": {InputPerToken: 2, OutputPerToken: 3}},
		Default: ModelPricing{InputPerToken: 1, OutputPerToken: 1},
	}

	assert.Equal(t, 2*10.0+3*4.0, table.Cost("known", 10, 4))
	assert.Equal(t, 14.0, table.Cost("unknown", 10, 4))

	_, found := table.PriceFor("unknown")
	assert.False(t, found)
}

func TestGenerationErrorMatchesSentinel(t *testing.T) {
	err := &GenerationError{Provider: "claude", Status: 401}
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.NotErrorIs(t, err, ErrConfiguration)
	assert.Equal(t, "generation failed (claude): status 401", err.Error())
}
