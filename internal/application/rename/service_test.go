package rename_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/doeshing/termnamer/internal/application/rename"
	"github.com/doeshing/termnamer/internal/application/usage"
	"github.com/doeshing/termnamer/internal/domain"
	"github.com/doeshing/termnamer/internal/ports"
)

type staticConfig struct {
	cfg domain.Config
	err error
}

func (s staticConfig) Load(context.Context) (domain.Config, error) { return s.cfg, s.err }

type fakeClient struct {
	mu       sync.Mutex
	requests []domain.GenerationRequest
	usage    *domain.TokenUsage
	fail     func(commands []string) error
}

func (c *fakeClient) Name() string  { return "fake" }
func (c *fakeClient) Model() string { return "gpt-4o-mini" }

func (c *fakeClient) GenerateName(_ context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.mu.Unlock()
	if c.fail != nil {
		if err := c.fail(req.Commands); err != nil {
			return domain.GenerationResult{}, err
		}
	}
	return domain.GenerationResult{
		Name:  strings.Fields(req.Commands[0])[0] + "-" + string(req.Language),
		Model: c.Model(),
		Usage: c.usage,
	}, nil
}

type fakeFactory struct {
	client  *fakeClient
	lastCfg domain.Config
	err     error
}

func (f *fakeFactory) ForConfig(cfg domain.Config) (ports.GenerationClient, error) {
	f.lastCfg = cfg
	if f.err != nil {
		return nil, f.err
	}
	return f.client, nil
}

type recordingRenamer struct {
	names map[domain.SessionID]string
	err   error
}

func (r *recordingRenamer) Rename(_ context.Context, id domain.SessionID, name string) error {
	if r.err != nil {
		return r.err
	}
	if r.names == nil {
		r.names = map[domain.SessionID]string{}
	}
	r.names[id] = name
	return nil
}

func newService(t *testing.T, cfg domain.Config, client *fakeClient) (*rename.Service, *fakeFactory, *recordingRenamer) {
	t.Helper()
	meter, err := usage.NewMeter(context.Background(), nil, domain.PriceTable{
		Default: domain.ModelPricing{InputPerToken: 1e-7, OutputPerToken: 4e-7},
	}, usage.Options{})
	require.NoError(t, err)

	factory := &fakeFactory{client: client}
	renamer := &recordingRenamer{}
	return &rename.Service{
		ConfigProvider:  staticConfig{cfg: cfg},
		ProviderFactory: factory,
		Renamer:         renamer,
		Meter:           meter,
		Logger:          zaptest.NewLogger(t),
	}, factory, renamer
}

func TestGenerate_UsesConfiguredLanguage(t *testing.T) {
	client := &fakeClient{}
	cfg := domain.Config{Preferences: domain.Preferences{Language: "en", Provider: "openai"}}
	svc, factory, _ := newService(t, cfg, client)

	result, err := svc.Generate(context.Background(), []string{"npm run dev"})
	require.NoError(t, err)
	assert.Equal(t, "npm-en", result.Name)
	assert.Equal(t, "openai", factory.lastCfg.Preferences.Provider)
	require.Len(t, client.requests, 1)
	assert.Equal(t, domain.LanguageEnglish, client.requests[0].Language)
}

func TestGenerateWith_Overrides(t *testing.T) {
	client := &fakeClient{}
	svc, factory, _ := newService(t, domain.Config{Preferences: domain.Preferences{Provider: "openai"}}, client)

	result, err := svc.GenerateWith(context.Background(), []string{"go test"}, rename.Overrides{Language: "en", Provider: "ollama"})
	require.NoError(t, err)
	assert.Equal(t, "go-en", result.Name)
	assert.Equal(t, "ollama", factory.lastCfg.Preferences.Provider)

	_, err = svc.GenerateWith(context.Background(), []string{"go test"}, rename.Overrides{Language: "fr"})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestGenerate_PropagatesErrors(t *testing.T) {
	t.Run("config", func(t *testing.T) {
		svc, _, _ := newService(t, domain.Config{}, &fakeClient{})
		svc.ConfigProvider = staticConfig{err: errors.New("disk gone")}
		_, err := svc.Generate(context.Background(), []string{"ls"})
		assert.ErrorContains(t, err, "load config")
	})

	t.Run("factory", func(t *testing.T) {
		svc, factory, _ := newService(t, domain.Config{}, &fakeClient{})
		factory.err = &domain.ConfigError{Field: "providers.openai.api_key", Reason: "missing"}
		_, err := svc.Generate(context.Background(), []string{"ls"})
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})

	t.Run("generation", func(t *testing.T) {
		client := &fakeClient{fail: func([]string) error {
			return &domain.GenerationError{Provider: "fake", Status: 500}
		}}
		svc, _, _ := newService(t, domain.Config{}, client)
		_, err := svc.Generate(context.Background(), []string{"ls"})
		assert.ErrorIs(t, err, domain.ErrGenerationFailed)
	})
}

func TestApply_RecordsUsageOnlyWhenReported(t *testing.T) {
	svc, _, renamer := newService(t, domain.Config{}, &fakeClient{})
	ctx := context.Background()

	require.NoError(t, svc.Apply(ctx, "t1", domain.GenerationResult{Name: "构建", Model: "ollama/llama3.2"}))
	assert.Zero(t, svc.Meter.Stats().RequestCount)

	usageReport := &domain.TokenUsage{PromptTokens: 100, CompletionTokens: 5, TotalTokens: 105}
	require.NoError(t, svc.Apply(ctx, "t2", domain.GenerationResult{Name: "部署", Model: "gpt-4o-mini", Usage: usageReport}))
	assert.Equal(t, 1, svc.Meter.Stats().RequestCount)
	assert.Equal(t, 105, svc.Meter.Stats().TotalTokens)

	assert.Equal(t, map[domain.SessionID]string{"t1": "构建", "t2": "部署"}, renamer.names)
}

func TestApply_RenameFailure(t *testing.T) {
	svc, _, renamer := newService(t, domain.Config{}, &fakeClient{})
	renamer.err = errors.New("host closed")
	err := svc.Apply(context.Background(), "t1", domain.GenerationResult{Name: "x"})
	assert.ErrorContains(t, err, "host closed")
}
