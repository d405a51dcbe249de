// Package rename turns a session's command history into a name and applies
// it through the host renamer.
package rename

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/doeshing/termnamer/internal/application/usage"
	"github.com/doeshing/termnamer/internal/domain"
	"github.com/doeshing/termnamer/internal/ports"
)

// Service orchestrates a single naming attempt end-to-end.
type Service struct {
	ConfigProvider  ports.ConfigProvider
	ProviderFactory ports.ProviderFactory
	Renamer         ports.SessionRenamer
	Meter           *usage.Meter
	Logger          *zap.Logger
}

// Overrides replace configured values for one generation.
type Overrides struct {
	Language string
	Provider string
}

// Generate asks the configured backend for a name for commands.
func (s *Service) Generate(ctx context.Context, commands []string) (domain.GenerationResult, error) {
	return s.GenerateWith(ctx, commands, Overrides{})
}

// GenerateWith is Generate with per-call language and provider overrides.
func (s *Service) GenerateWith(ctx context.Context, commands []string, o Overrides) (domain.GenerationResult, error) {
	if s.ConfigProvider == nil || s.ProviderFactory == nil {
		return domain.GenerationResult{}, errors.New("rename.Service dependencies not satisfied")
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("load config: %w", err)
	}
	if o.Provider != "" {
		cfg.Preferences.Provider = o.Provider
	}
	lang := cfg.Language()
	if o.Language != "" {
		lang, err = domain.ParseLanguage(o.Language)
		if err != nil {
			return domain.GenerationResult{}, &domain.ConfigError{Field: "language", Reason: err.Error()}
		}
	}

	client, err := s.ProviderFactory.ForConfig(cfg)
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("provider init: %w", err)
	}

	s.logger().Info("generating session name",
		zap.String("provider", client.Name()),
		zap.String("model", client.Model()),
		zap.String("language", string(lang)),
		zap.Int("commands", len(commands)),
	)

	return client.GenerateName(ctx, domain.GenerationRequest{Commands: commands, Language: lang})
}

// Apply records the result's usage, if any, and renames the session.
func (s *Service) Apply(ctx context.Context, id domain.SessionID, result domain.GenerationResult) error {
	s.Record(ctx, result)
	if s.Renamer == nil {
		return nil
	}
	if err := s.Renamer.Rename(ctx, id, result.Name); err != nil {
		return fmt.Errorf("rename session %s: %w", id, err)
	}
	return nil
}

// Record meters result when the backend reported token counts. Storage
// failures are logged; the record stays in memory.
func (s *Service) Record(ctx context.Context, result domain.GenerationResult) {
	if s.Meter == nil || result.Usage == nil {
		return
	}
	if _, err := s.Meter.RecordUsage(ctx, result.Model, result.Usage.PromptTokens, result.Usage.CompletionTokens); err != nil {
		s.logger().Warn("usage not persisted", zap.Error(err))
	}
}

func (s *Service) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
