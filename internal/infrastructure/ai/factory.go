package ai

import (
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/doeshing/termnamer/internal/domain"
	"github.com/doeshing/termnamer/internal/ports"
)

// providerDefaults fills gaps in a provider block.
type providerDefaults struct {
	endpoint    string
	model       string
	maxTokens   int
	temperature float64
	keyEnv      string
	needsKey    bool
}

var defaultsByKind = map[domain.ProviderKind]providerDefaults{
	domain.ProviderKindOpenAI: {
		endpoint:    "https://api.openai.com/v1",
		model:       "gpt-4o-mini",
		maxTokens:   50,
		temperature: 0.7,
		keyEnv:      "OPENAI_API_KEY",
		needsKey:    true,
	},
	domain.ProviderKindClaude: {
		endpoint:  "https://api.anthropic.com",
		model:     "claude-3-haiku-20240307",
		maxTokens: 50,
		keyEnv:    "ANTHROPIC_API_KEY",
		needsKey:  true,
	},
	domain.ProviderKindOllama: {
		endpoint:    "http://localhost:11434",
		model:       "llama3.2",
		maxTokens:   50,
		temperature: 0.7,
	},
	domain.ProviderKindOpenRouter: {
		endpoint:    "https://openrouter.ai/api/v1",
		model:       "google/gemini-2.5-flash",
		maxTokens:   15,
		temperature: 0.1,
		keyEnv:      "OPENROUTER_API_KEY",
		needsKey:    true,
	},
}

// DefaultModel returns the model used when a provider block leaves it empty.
func DefaultModel(kind domain.ProviderKind) string {
	return defaultsByKind[kind].model
}

// DefaultKeyEnv names the conventional credential env var for kind.
func DefaultKeyEnv(kind domain.ProviderKind) string {
	return defaultsByKind[kind].keyEnv
}

// settings is a fully resolved provider block.
type settings struct {
	kind        domain.ProviderKind
	endpoint    string
	model       string
	apiKey      string
	maxTokens   int
	temperature float64
}

// Factory builds generation clients from configuration.
type Factory struct {
	// Cache, when set and enabled in config, wraps every client.
	Cache  ports.NameCache
	Logger *zap.Logger

	httpClient *http.Client
}

// NewFactory returns a Factory. A nil client means one is built per call
// with the configured timeout.
func NewFactory(client *http.Client) *Factory {
	return &Factory{httpClient: client}
}

// ForConfig resolves preferences.provider into a ready client. Missing
// credentials or an unknown provider yield a *domain.ConfigError before any
// request is made.
func (f *Factory) ForConfig(cfg domain.Config) (ports.GenerationClient, error) {
	kind, err := cfg.ActiveProvider()
	if err != nil {
		return nil, err
	}
	resolved, err := resolveSettings(cfg, kind)
	if err != nil {
		return nil, err
	}

	httpClient := f.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.RequestTimeout()}
	}

	var client ports.GenerationClient
	switch kind {
	case domain.ProviderKindOpenAI:
		client = newChatClient(resolved, httpClient, nil)
	case domain.ProviderKindOpenRouter:
		client = newChatClient(resolved, httpClient, openRouterHeaders)
	case domain.ProviderKindClaude:
		client = newHTTPProvider(resolved, httpClient, anthropicAdapter())
	case domain.ProviderKindOllama:
		client = newHTTPProvider(resolved, httpClient, ollamaAdapter())
	default:
		return nil, &domain.ConfigError{Field: "preferences.provider", Reason: fmt.Sprintf("unsupported provider %q", kind)}
	}

	f.logger().Debug("generation client ready",
		zap.String("provider", client.Name()),
		zap.String("model", client.Model()),
	)

	if f.Cache != nil && cfg.Cache.Enabled {
		client = NewCachedClient(client, f.Cache, f.logger())
	}
	return client, nil
}

func (f *Factory) logger() *zap.Logger {
	if f.Logger == nil {
		return zap.NewNop()
	}
	return f.Logger
}

func resolveSettings(cfg domain.Config, kind domain.ProviderKind) (settings, error) {
	block, err := cfg.ProviderConfig(kind)
	if err != nil {
		return settings{}, err
	}
	defaults := defaultsByKind[kind]

	resolved := settings{
		kind:        kind,
		endpoint:    strings.TrimRight(valueOrDefault(block.Endpoint, defaults.endpoint), "/"),
		model:       valueOrDefault(block.Model, defaults.model),
		maxTokens:   valueOrDefaultInt(block.MaxTokens, defaults.maxTokens),
		temperature: valueOrDefaultFloat(block.Temperature, defaults.temperature),
		apiKey:      resolveAPIKey(block.APIKey, block.APIKeyEnv, defaults.keyEnv),
	}

	if defaults.needsKey && resolved.apiKey == "" {
		hint := defaults.keyEnv
		if block.APIKeyEnv != "" {
			hint = block.APIKeyEnv + " or " + hint
		}
		return settings{}, &domain.ConfigError{
			Field:  fmt.Sprintf("providers.%s.api_key", kind),
			Reason: fmt.Sprintf("missing API key: set it in config or export %s", hint),
		}
	}
	return resolved, nil
}

var _ ports.ProviderFactory = (*Factory)(nil)
