// Package usage meters backend calls: token counts, derived cost, and the
// aggregate views shown to users.
package usage

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/doeshing/termnamer/internal/domain"
	"github.com/doeshing/termnamer/internal/ports"
)

// Options tunes a Meter.
type Options struct {
	// MaxRecords caps the retained log. Zero means domain.MaxUsageRecords.
	MaxRecords int
	// Now is the clock used for timestamps and the "today" window.
	Now    func() time.Time
	Logger *zap.Logger
}

// Meter accumulates usage records. It is not safe for concurrent use.
type Meter struct {
	repo       ports.UsageRepository
	prices     domain.PriceTable
	maxRecords int
	now        func() time.Time
	logger     *zap.Logger

	records  []domain.UsageRecord
	lifetime domain.UsageStats
	observer func(domain.UsageStats)
}

// NewMeter restores the persisted log from repo. A nil repo keeps usage in
// memory only.
func NewMeter(ctx context.Context, repo ports.UsageRepository, prices domain.PriceTable, opts Options) (*Meter, error) {
	m := &Meter{
		repo:       repo,
		prices:     prices,
		maxRecords: opts.MaxRecords,
		now:        opts.Now,
		logger:     opts.Logger,
	}
	if m.maxRecords <= 0 {
		m.maxRecords = domain.MaxUsageRecords
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if repo == nil {
		return m, nil
	}

	log, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load usage log: %w", err)
	}
	m.records = log.Records
	m.lifetime = log.Lifetime
	// Logs written before lifetime totals existed carry records only.
	if m.lifetime.RequestCount < len(m.records) {
		m.lifetime = fold(m.records, time.Time{})
	}
	m.trim()
	return m, nil
}

// RecordUsage prices and appends a call. The record is kept even when
// persisting it fails; the error only reports the storage failure.
func (m *Meter) RecordUsage(ctx context.Context, model string, promptTokens, completionTokens int) (domain.UsageRecord, error) {
	record := domain.UsageRecord{
		Timestamp:        m.now(),
		Model:            model,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
		Cost:             m.prices.Cost(model, promptTokens, completionTokens),
	}

	m.records = append(m.records, record)
	m.trim()
	m.lifetime = m.lifetime.Add(record)

	m.logger.Debug("usage recorded",
		zap.String("model", model),
		zap.Int("prompt_tokens", promptTokens),
		zap.Int("completion_tokens", completionTokens),
		zap.Float64("cost", record.Cost),
	)

	err := m.persist(ctx)
	m.notify()
	return record, err
}

// Stats folds every retained record. Once the cap is exceeded this is a
// sliding window, not a true all-time total; see LifetimeStats.
func (m *Meter) Stats() domain.UsageStats {
	return fold(m.records, time.Time{})
}

// TodayStats folds records stamped at or after local midnight.
func (m *Meter) TodayStats() domain.UsageStats {
	now := m.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return fold(m.records, midnight)
}

// LifetimeStats is a running total that survives log eviction. Only
// ResetStats clears it.
func (m *Meter) LifetimeStats() domain.UsageStats {
	return m.lifetime
}

// Records returns a copy of the retained log, oldest first.
func (m *Meter) Records() []domain.UsageRecord {
	return append([]domain.UsageRecord(nil), m.records...)
}

// Prices exposes the table used for cost computation.
func (m *Meter) Prices() domain.PriceTable {
	return m.prices
}

// ResetStats clears the log and the lifetime counter.
func (m *Meter) ResetStats(ctx context.Context) error {
	m.records = nil
	m.lifetime = domain.UsageStats{}
	err := m.persist(ctx)
	m.notify()
	return err
}

// SetObserver registers fn to receive today's stats after every change.
func (m *Meter) SetObserver(fn func(domain.UsageStats)) {
	m.observer = fn
}

func (m *Meter) trim() {
	if overflow := len(m.records) - m.maxRecords; overflow > 0 {
		m.records = append([]domain.UsageRecord(nil), m.records[overflow:]...)
	}
}

func (m *Meter) persist(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}
	log := domain.UsageLog{Records: m.Records(), Lifetime: m.lifetime}
	if err := m.repo.Save(ctx, log); err != nil {
		m.logger.Warn("persist usage log failed", zap.Error(err))
		return fmt.Errorf("save usage log: %w", err)
	}
	return nil
}

func (m *Meter) notify() {
	if m.observer != nil {
		m.observer(m.TodayStats())
	}
}

func fold(records []domain.UsageRecord, since time.Time) domain.UsageStats {
	var stats domain.UsageStats
	for _, r := range records {
		if r.Timestamp.Before(since) {
			continue
		}
		stats = stats.Add(r)
	}
	return stats
}
