package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/doeshing/termnamer/internal/domain"
	"github.com/doeshing/termnamer/internal/naming"
	"github.com/doeshing/termnamer/internal/ports"
)

// CachedClient reuses names generated for identical requests. Cache hits
// cost nothing, so they carry no usage.
type CachedClient struct {
	inner ports.GenerationClient
	cache  ports.NameCache
	logger *zap.Logger
	now    func() time.Time
}

// NewCachedClient wraps inner with cache. A nil logger discards output.
func NewCachedClient(inner ports.GenerationClient, cache ports.NameCache, logger *zap.Logger) *CachedClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedClient{inner: inner, cache: cache, logger: logger, now: time.Now}
}

func (c *CachedClient) Name() string  { return c.inner.Name() }
func (c *CachedClient) Model() string { return c.inner.Model() }

func (c *CachedClient) GenerateName(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	commands := naming.PromptCommands(req.Commands)
	key := CacheKey(c.inner.Name(), c.inner.Model(), req.Language, commands)

	if entry, ok := c.cache.Get(key); ok {
		return domain.GenerationResult{Name: entry.Name, Model: entry.Model}, nil
	}

	result, err := c.inner.GenerateName(ctx, req)
	if err != nil {
		return result, err
	}

	// Cache writes are best effort.
	if err := c.cache.Set(domain.CacheEntry{
		Key:       key,
		Name:      result.Name,
		Model:     result.Model,
		Provider:  c.inner.Name(),
		Language:  req.Language,
		Commands:  commands,
		CreatedAt: c.now(),
	}); err != nil {
		c.logger.Debug("name cache write failed", zap.String("key", key), zap.Error(err))
	}
	return result, nil
}

// CacheKey identifies a request by backend, model, language and the
// normalized command list.
func CacheKey(provider, model string, lang domain.Language, commands []string) string {
	h := sha256.New()
	h.Write([]byte(strings.Join([]string{provider, model, string(lang)}, "|")))
	for _, cmd := range commands {
		h.Write([]byte{0})
		h.Write([]byte(cmd))
	}
	return hex.EncodeToString(h.Sum(nil))
}

var _ ports.GenerationClient = (*CachedClient)(nil)
