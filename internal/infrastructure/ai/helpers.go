package ai

import (
	"os"
	"strings"
)

// resolveAPIKey prefers an inline key, then the configured env var, then the
// provider's conventional env var.
func resolveAPIKey(inline, envName, fallbackEnv string) string {
	if key := strings.TrimSpace(inline); key != "" {
		return key
	}
	if envName != "" {
		if value := strings.TrimSpace(os.Getenv(envName)); value != "" {
			return value
		}
	}
	if fallbackEnv == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(fallbackEnv))
}

func valueOrDefault(value string, def string) string {
	if value == "" {
		return def
	}
	return value
}

func valueOrDefaultInt(value int, def int) int {
	if value == 0 {
		return def
	}
	return value
}

func valueOrDefaultFloat(value *float64, def float64) float64 {
	if value == nil {
		return def
	}
	return *value
}

// snippet shortens an error body for inclusion in messages.
func snippet(body []byte) string {
	const limit = 200
	text := strings.TrimSpace(string(body))
	if len(text) > limit {
		return text[:limit] + "..."
	}
	return text
}
