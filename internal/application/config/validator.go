// Package config validates configuration before it is saved or used.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doeshing/termnamer/internal/domain"
)

// Validate ensures config values are usable. Every problem is reported as a
// *domain.ConfigError; multiple problems are joined.
func Validate(cfg domain.Config) error {
	var errs []error
	add := func(field, reason string, args ...interface{}) {
		errs = append(errs, &domain.ConfigError{Field: field, Reason: fmt.Sprintf(reason, args...)})
	}

	if cfg.Preferences.CommandThreshold < 1 {
		add("preferences.command_threshold", "must be >= 1, got %d", cfg.Preferences.CommandThreshold)
	}
	if _, err := domain.ParseLanguage(cfg.Preferences.Language); err != nil {
		add("preferences.language", "%v", err)
	}
	if _, err := domain.ParseProviderKind(cfg.Preferences.Provider); err != nil {
		add("preferences.provider", "%v", err)
	}
	if cfg.Preferences.TimeoutSeconds < 0 {
		add("preferences.timeout", "must be >= 0, got %d", cfg.Preferences.TimeoutSeconds)
	}

	for _, kind := range domain.ProviderKinds {
		block, _ := cfg.ProviderConfig(kind)
		if block.MaxTokens < 0 {
			add(fmt.Sprintf("providers.%s.max_tokens", kind), "must be >= 0")
		}
		if block.Temperature != nil && (*block.Temperature < 0 || *block.Temperature > 2) {
			add(fmt.Sprintf("providers.%s.temperature", kind), "must be within [0, 2]")
		}
		if block.Endpoint != "" && !strings.HasPrefix(block.Endpoint, "http://") && !strings.HasPrefix(block.Endpoint, "https://") {
			add(fmt.Sprintf("providers.%s.endpoint", kind), "must be an http(s) URL, got %q", block.Endpoint)
		}
	}

	switch cfg.Usage.Backend {
	case "", domain.UsageBackendSQLite, domain.UsageBackendFile, domain.UsageBackendMemory:
	default:
		add("usage.backend", "must be sqlite|file|memory, got %q", cfg.Usage.Backend)
	}
	if cfg.Usage.MaxRecords < 0 {
		add("usage.max_records", "must be >= 0")
	}

	if cfg.Cache.TTL != "" {
		ttl, err := time.ParseDuration(cfg.Cache.TTL)
		if err != nil {
			add("cache.ttl", "%v", err)
		} else if ttl <= 0 {
			add("cache.ttl", "must be positive")
		}
	}
	if cfg.Cache.MaxEntries < 0 {
		add("cache.max_entries", "must be >= 0")
	}

	switch strings.ToLower(cfg.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		add("logging.level", "must be debug|info|warn|error, got %q", cfg.Logging.Level)
	}

	return errors.Join(errs...)
}
