// Package doctor runs environment diagnostics.
package doctor

import (
	"context"
	"errors"
	"fmt"

	configapp "github.com/doeshing/termnamer/internal/application/config"
	"github.com/doeshing/termnamer/internal/domain"
	"github.com/doeshing/termnamer/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider  ports.ConfigProvider
	ProviderFactory ports.ProviderFactory
	Usage           ports.UsageRepository
	Cache           ports.NameCache
	// UsagePath and CachePath are shown next to their checks.
	UsagePath string
	CachePath string
	// KeyEnv names the conventional credential variable of a provider. It
	// turns a missing-key failure into a hint.
	KeyEnv func(domain.ProviderKind) string
}

// Run executes checks and returns a report. The error is non-nil only when
// the configuration cannot be loaded at all.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("format version %s", cfg.ConfigFormatVersion)))

	if err := configapp.Validate(cfg); err != nil {
		checks = append(checks, fail("Config values", err.Error()))
	} else {
		checks = append(checks, ok("Config values", fmt.Sprintf("threshold %d, language %s, auto-rename %t",
			cfg.Threshold(), cfg.Language(), cfg.AutoRenameEnabled())))
	}

	checks = append(checks, s.providerCheck(cfg))
	checks = append(checks, s.usageCheck(ctx))
	checks = append(checks, s.cacheCheck(cfg))

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) providerCheck(cfg domain.Config) domain.HealthCheck {
	const name = "Provider"
	if s.ProviderFactory == nil {
		return warn(name, "provider factory not initialized")
	}
	client, err := s.ProviderFactory.ForConfig(cfg)
	if err != nil {
		if errors.Is(err, domain.ErrConfiguration) {
			return fail(name, err.Error()+s.keyHint(cfg))
		}
		return warn(name, err.Error())
	}
	return ok(name, fmt.Sprintf("%s ready (model %s)", client.Name(), client.Model()))
}

// keyHint suggests where a credential for the configured provider goes.
func (s *Service) keyHint(cfg domain.Config) string {
	if s.KeyEnv == nil {
		return ""
	}
	kind, err := domain.ParseProviderKind(cfg.Preferences.Provider)
	if err != nil {
		return ""
	}
	env := s.KeyEnv(kind)
	if env == "" {
		return ""
	}
	return fmt.Sprintf(" (export %s or set providers.%s.api_key)", env, kind)
}

func (s *Service) usageCheck(ctx context.Context) domain.HealthCheck {
	const name = "Usage store"
	if s.Usage == nil {
		return warn(name, "not initialized; usage is kept in memory")
	}
	log, err := s.Usage.Load(ctx)
	if err != nil {
		return fail(name, fmt.Sprintf("%s: %v", s.UsagePath, err))
	}
	return ok(name, fmt.Sprintf("%s (%d records)", s.UsagePath, len(log.Records)))
}

func (s *Service) cacheCheck(cfg domain.Config) domain.HealthCheck {
	const name = "Name cache"
	if !cfg.Cache.Enabled {
		return ok(name, "disabled")
	}
	if s.Cache == nil {
		return warn(name, "enabled in config but not initialized")
	}
	entries, err := s.Cache.Entries()
	if err != nil {
		return warn(name, fmt.Sprintf("%s: %v", s.CachePath, err))
	}
	return ok(name, fmt.Sprintf("%s (%d entries, ttl %s)", s.CachePath, len(entries), s.Cache.TTL()))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
