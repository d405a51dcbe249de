package domain

import (
	"encoding/json"
	"time"
)

// UsageRecord is one accounting entry for a completed backend call.
type UsageRecord struct {
	Timestamp        time.Time
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Cost             float64
}

// usageRecordJSON is the persisted shape: timestamps are unix milliseconds.
type usageRecordJSON struct {
	Timestamp        int64   `json:"timestamp"`
	Model            string  `json:"model"`
	PromptTokens     int     `json:"promptTokens"`
	CompletionTokens int     `json:"completionTokens"`
	TotalTokens      int     `json:"totalTokens"`
	Cost             float64 `json:"cost"`
}

func (r UsageRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(usageRecordJSON{
		Timestamp:        r.Timestamp.UnixMilli(),
		Model:            r.Model,
		PromptTokens:     r.PromptTokens,
		CompletionTokens: r.CompletionTokens,
		TotalTokens:      r.TotalTokens,
		Cost:             r.Cost,
	})
}

func (r *UsageRecord) UnmarshalJSON(data []byte) error {
	var raw usageRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = UsageRecord{
		Timestamp:        time.UnixMilli(raw.Timestamp),
		Model:            raw.Model,
		PromptTokens:     raw.PromptTokens,
		CompletionTokens: raw.CompletionTokens,
		TotalTokens:      raw.TotalTokens,
		Cost:             raw.Cost,
	}
	return nil
}

// UsageStats aggregates a set of usage records.
type UsageStats struct {
	TotalPromptTokens     int     `json:"totalPromptTokens"`
	TotalCompletionTokens int     `json:"totalCompletionTokens"`
	TotalTokens           int     `json:"totalTokens"`
	TotalCost             float64 `json:"totalCost"`
	RequestCount          int     `json:"requestCount"`
}

// Add folds a single record into the aggregate.
func (s UsageStats) Add(r UsageRecord) UsageStats {
	s.TotalPromptTokens += r.PromptTokens
	s.TotalCompletionTokens += r.CompletionTokens
	s.TotalTokens += r.TotalTokens
	s.TotalCost += r.Cost
	s.RequestCount++
	return s
}

// UsageLog is what the storage collaborator persists between runs.
type UsageLog struct {
	Records  []UsageRecord `json:"records"`
	Lifetime UsageStats    `json:"lifetime"`
}

// ModelPricing holds per-token USD prices.
type ModelPricing struct {
	InputPerToken  float64
	OutputPerToken float64
}

// PriceTable maps model identifiers to prices. Unknown models use Default.
type PriceTable struct {
	Models  map[string]ModelPricing
	Default ModelPricing
}

// PriceFor returns the pricing for model and whether it was found.
func (t PriceTable) PriceFor(model string) (ModelPricing, bool) {
	if p, ok := t.Models[model]; ok {
		return p, true
	}
	return t.Default, false
}

// Cost computes the price of a single call.
func (t PriceTable) Cost(model string, promptTokens, completionTokens int) float64 {
	p, _ := t.PriceFor(model)
	return float64(promptTokens)*p.InputPerToken + float64(completionTokens)*p.OutputPerToken
}
