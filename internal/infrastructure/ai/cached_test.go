package ai_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/doeshing/termnamer/internal/domain"
	"github.com/doeshing/termnamer/internal/infrastructure/ai"
)

type countingClient struct {
	calls int
	err   error
}

func (c *countingClient) Name() string  { return "stub" }
func (c *countingClient) Model() string { return "stub-model" }

func (c *countingClient) GenerateName(context.Context, domain.GenerationRequest) (domain.GenerationResult, error) {
	c.calls++
	if c.err != nil {
		return domain.GenerationResult{}, c.err
	}
	return domain.GenerationResult{
		Name:  "Deploy",
		Model: "stub-model",
		Usage: &domain.TokenUsage{PromptTokens: 1, CompletionTokens: 1, TotalTokens: 2},
	}, nil
}

type mapCache map[string]domain.CacheEntry

func (m mapCache) Get(key string) (domain.CacheEntry, bool) {
	e, ok := m[key]
	return e, ok
}

func (m mapCache) Set(e domain.CacheEntry) error {
	m[e.Key] = e
	return nil
}

func (m mapCache) Entries() ([]domain.CacheEntry, error) {
	var out []domain.CacheEntry
	for _, e := range m {
		out = append(out, e)
	}
	return out, nil
}

func (m mapCache) Clear() error {
	clear(m)
	return nil
}

func (m mapCache) TTL() time.Duration { return 0 }

func TestCachedClient(t *testing.T) {
	inner := &countingClient{}
	cache := mapCache{}
	client := ai.NewCachedClient(inner, cache, zaptest.NewLogger(t))
	req := domain.GenerationRequest{Commands: []string{"make deploy", "make deploy"}, Language: domain.LanguageEnglish}

	first, err := client.GenerateName(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, first.Usage)

	second, err := client.GenerateName(context.Background(), domain.GenerationRequest{Commands: []string{" make deploy "}, Language: domain.LanguageEnglish})
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls, "normalized commands hit the cache")
	assert.Equal(t, "Deploy", second.Name)
	assert.Equal(t, "stub-model", second.Model)
	assert.Nil(t, second.Usage, "cache hits carry no usage")

	_, err = client.GenerateName(context.Background(), domain.GenerationRequest{Commands: []string{"make deploy"}, Language: domain.LanguageChinese})
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls, "language is part of the key")
}

func TestCachedClient_ErrorsAreNotCached(t *testing.T) {
	inner := &countingClient{err: &domain.GenerationError{Provider: "stub", Cause: errors.New("boom")}}
	cache := mapCache{}
	client := ai.NewCachedClient(inner, cache, zaptest.NewLogger(t))

	_, err := client.GenerateName(context.Background(), domain.GenerationRequest{Commands: []string{"ls"}})
	require.Error(t, err)
	assert.Empty(t, cache)
}

type failingCache struct{ mapCache }

func (failingCache) Set(domain.CacheEntry) error { return errors.New("read-only file system") }

func TestCachedClient_LogsFailedCacheWrite(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	inner := &countingClient{}
	client := ai.NewCachedClient(inner, failingCache{mapCache{}}, zap.New(core))

	result, err := client.GenerateName(context.Background(), domain.GenerationRequest{Commands: []string{"ls"}})
	require.NoError(t, err)
	assert.Equal(t, "Deploy", result.Name)

	entries := logs.FilterMessage("name cache write failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "read-only file system", entries[0].ContextMap()["error"])
}

func TestFactory_WrapsWithCacheWhenEnabled(t *testing.T) {
	clearProviderEnv(t)
	factory := ai.NewFactory(nil)
	factory.Cache = mapCache{}

	cfg := configFor(domain.ProviderKindOllama, domain.ProviderConfig{})
	client, err := factory.ForConfig(cfg)
	require.NoError(t, err)
	_, cached := client.(*ai.CachedClient)
	assert.False(t, cached)

	cfg.Cache.Enabled = true
	client, err = factory.ForConfig(cfg)
	require.NoError(t, err)
	_, cached = client.(*ai.CachedClient)
	assert.True(t, cached)
}
