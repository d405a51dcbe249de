package domain

import (
	"fmt"
	"time"
)

// AutoRenameEnabled reports whether threshold crossings trigger naming.
// A missing key means enabled.
func (c *Config) AutoRenameEnabled() bool {
	if c.Preferences.AutoRename == nil {
		return true
	}
	return *c.Preferences.AutoRename
}

// SetAutoRename stores an explicit auto-rename toggle.
func (c *Config) SetAutoRename(enabled bool) {
	c.Preferences.AutoRename = &enabled
}

// Threshold returns the configured command threshold, never below 1.
func (c *Config) Threshold() int {
	if c.Preferences.CommandThreshold < 1 {
		return DefaultCommandThreshold
	}
	return c.Preferences.CommandThreshold
}

// Language returns the configured output language, falling back to the
// primary language when the value is unusable.
func (c *Config) Language() Language {
	lang, err := ParseLanguage(c.Preferences.Language)
	if err != nil {
		return LanguageChinese
	}
	return lang
}

// ActiveProvider resolves preferences.provider.
func (c *Config) ActiveProvider() (ProviderKind, error) {
	kind, err := ParseProviderKind(c.Preferences.Provider)
	if err != nil {
		return "", &ConfigError{Field: "preferences.provider", Reason: err.Error()}
	}
	return kind, nil
}

// ProviderConfig returns the settings block for kind.
func (c *Config) ProviderConfig(kind ProviderKind) (ProviderConfig, error) {
	switch kind {
	case ProviderKindOpenAI:
		return c.Providers.OpenAI, nil
	case ProviderKindClaude:
		return c.Providers.Claude, nil
	case ProviderKindOllama:
		return c.Providers.Ollama, nil
	case ProviderKindOpenRouter:
		return c.Providers.OpenRouter, nil
	default:
		return ProviderConfig{}, &ConfigError{Field: "preferences.provider", Reason: fmt.Sprintf("unsupported provider %q", kind)}
	}
}

// RequestTimeout converts preferences.timeout into a duration.
func (c *Config) RequestTimeout() time.Duration {
	if c.Preferences.TimeoutSeconds <= 0 {
		return DefaultHTTPClientTimeout
	}
	return time.Duration(c.Preferences.TimeoutSeconds) * time.Second
}

// CacheTTL parses cache.ttl, falling back to the default on bad input.
func (c *Config) CacheTTL() time.Duration {
	if c.Cache.TTL == "" {
		return DefaultCacheTTL
	}
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return DefaultCacheTTL
	}
	return ttl
}
