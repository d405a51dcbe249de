package domain

import (
	"fmt"
	"strings"
)

// ProviderKind enumerates the supported generation backends.
type ProviderKind string

const (
	ProviderKindOpenAI     ProviderKind = "openai"
	ProviderKindClaude     ProviderKind = "claude"
	ProviderKindOllama     ProviderKind = "ollama"
	ProviderKindOpenRouter ProviderKind = "openrouter"
)

// ProviderKinds lists every supported backend in display order.
var ProviderKinds = []ProviderKind{
	ProviderKindOpenAI,
	ProviderKindClaude,
	ProviderKindOllama,
	ProviderKindOpenRouter,
}

// ParseProviderKind validates a provider name from configuration.
func ParseProviderKind(raw string) (ProviderKind, error) {
	kind := ProviderKind(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range ProviderKinds {
		if kind == known {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unsupported provider %q", raw)
}
