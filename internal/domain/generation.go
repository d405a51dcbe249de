package domain

import "time"

// GenerationRequest is built fresh for every naming attempt.
type GenerationRequest struct {
	Commands []string
	Language Language
}

// TokenUsage mirrors what a backend reports for a single call.
type TokenUsage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// GenerationResult is the sanitized outcome of a backend call. Usage is nil
// when the backend did not report token counts.
type GenerationResult struct {
	Name  string
	Model string
	Usage *TokenUsage
}

// Prompt is the instruction/input pair handed to a backend.
type Prompt struct {
	Instruction string
	Input       string
}

// CacheEntry stores a previously generated name.
type CacheEntry struct {
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	Model     string    `json:"model"`
	Provider  string    `json:"provider"`
	Language  Language  `json:"language"`
	Commands  []string  `json:"commands"`
	CreatedAt time.Time `json:"created_at"`
}
