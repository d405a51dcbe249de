package domain

// Config mirrors ~/.termnamer/config.yaml.
type Config struct {
	ConfigFormatVersion string           `yaml:"config_format_version"`
	Preferences         Preferences      `yaml:"preferences"`
	Providers           ProviderSettings `yaml:"providers"`
	Usage               UsageSettings    `yaml:"usage"`
	Pricing             PricingSettings  `yaml:"pricing"`
	Cache               CacheSettings    `yaml:"cache"`
	Logging             LoggingSettings  `yaml:"logging"`
}

// Preferences captures the naming toggles read live by the tracker.
type Preferences struct {
	AutoRename       *bool  `yaml:"auto_rename,omitempty"`
	CommandThreshold int    `yaml:"command_threshold"`
	Language         string `yaml:"language"`
	Provider         string `yaml:"provider"`
	TimeoutSeconds   int    `yaml:"timeout"`
}

// ProviderSettings holds one block per backend.
type ProviderSettings struct {
	OpenAI     ProviderConfig `yaml:"openai"`
	Claude     ProviderConfig `yaml:"claude"`
	Ollama     ProviderConfig `yaml:"ollama"`
	OpenRouter ProviderConfig `yaml:"openrouter"`
}

// ProviderConfig describes how to reach a single backend.
type ProviderConfig struct {
	APIKey      string   `yaml:"api_key,omitempty"`
	APIKeyEnv   string   `yaml:"api_key_env,omitempty"`
	Endpoint    string   `yaml:"endpoint,omitempty"`
	Model       string   `yaml:"model,omitempty"`
	MaxTokens   int      `yaml:"max_tokens,omitempty"`
	Temperature *float64 `yaml:"temperature,omitempty"`
}

// UsageSettings selects where the usage log is persisted.
type UsageSettings struct {
	Backend    string `yaml:"backend"`
	Path       string `yaml:"path,omitempty"`
	MaxRecords int    `yaml:"max_records"`
}

// PricingSettings points at optional per-model price overrides.
type PricingSettings struct {
	OverridesFile string `yaml:"overrides_file,omitempty"`
}

// CacheSettings configures the generated-name cache.
type CacheSettings struct {
	Enabled    bool   `yaml:"enabled"`
	TTL        string `yaml:"ttl"`
	MaxEntries int    `yaml:"max_entries"`
	Dir        string `yaml:"dir,omitempty"`
}

// LoggingSettings configures the zap logger.
type LoggingSettings struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}
