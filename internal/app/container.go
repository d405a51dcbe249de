// Package app wires application services to infrastructure adapters.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/doeshing/termnamer/internal/application/doctor"
	"github.com/doeshing/termnamer/internal/application/rename"
	"github.com/doeshing/termnamer/internal/application/usage"
	"github.com/doeshing/termnamer/internal/application/watch"
	"github.com/doeshing/termnamer/internal/domain"
	"github.com/doeshing/termnamer/internal/infrastructure/ai"
	"github.com/doeshing/termnamer/internal/infrastructure/cache"
	"github.com/doeshing/termnamer/internal/infrastructure/config"
	"github.com/doeshing/termnamer/internal/infrastructure/pricing"
	"github.com/doeshing/termnamer/internal/infrastructure/usagestore"
	"github.com/doeshing/termnamer/internal/pkg/filesystem"
	"github.com/doeshing/termnamer/internal/pkg/logger"
	"github.com/doeshing/termnamer/internal/ports"
)

// Options selects how the container is built.
type Options struct {
	// ConfigPath overrides the config file location.
	ConfigPath string
	Verbose    bool
}

// Container holds the dependency graph for one CLI invocation.
type Container struct {
	Logger         *zap.Logger
	LogLevel       zap.AtomicLevel
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	UsageStore     usagestore.Store
	Meter          *usage.Meter
	Cache          *cache.FileCache
	Factory        *ai.Factory
	RenameService  *rename.Service
	WatchService   *watch.Service
	DoctorService  *doctor.Service
	// Clipboard is supplied by the CLI layer.
	Clipboard ports.Clipboard
}

// BuildContainer constructs the dependency graph. Close releases it.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, level, err := logger.New(cfg.Logging, logger.Verbose(opts.Verbose))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	prices, err := pricing.Load(filesystem.ExpandHome(cfg.Pricing.OverridesFile))
	if err != nil {
		log.Warn("pricing overrides ignored", zap.Error(err))
	}

	store, err := usagestore.Open(ctx, cfg.Usage, log.Named("usage"))
	if err != nil {
		return nil, err
	}

	meter, err := usage.NewMeter(ctx, store, prices, usage.Options{
		MaxRecords: cfg.Usage.MaxRecords,
		Logger:     log.Named("usage"),
	})
	if err != nil {
		log.Warn("usage log unreadable, starting empty", zap.String("path", store.Path()), zap.Error(err))
		meter, err = usage.NewMeter(ctx, nil, prices, usage.Options{MaxRecords: cfg.Usage.MaxRecords, Logger: log.Named("usage")})
		if err != nil {
			return nil, err
		}
	}

	nameCache := cache.NewFileCache(cfg.Cache.Dir, cfg.CacheTTL(), cfg.Cache.MaxEntries)

	factory := ai.NewFactory(nil)
	factory.Cache = nameCache
	factory.Logger = log.Named("ai")

	renameService := &rename.Service{
		ConfigProvider:  cfgLoader,
		ProviderFactory: factory,
		Meter:           meter,
		Logger:          log.Named("rename"),
	}

	watchService := &watch.Service{
		ConfigProvider: cfgLoader,
		Renamer:        renameService,
		Logger:         log.Named("watch"),
	}

	doctorService := &doctor.Service{
		ConfigProvider:  cfgLoader,
		ProviderFactory: factory,
		Usage:           store,
		Cache:           nameCache,
		UsagePath:       store.Path(),
		CachePath:       nameCache.Dir(),
		KeyEnv:          ai.DefaultKeyEnv,
	}

	log.Debug("container ready",
		zap.String("config", cfgLoader.Path()),
		zap.String("usage_store", store.Path()),
		zap.String("cache", nameCache.Dir()),
	)

	return &Container{
		Logger:         log,
		LogLevel:       level,
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		UsageStore:     store,
		Meter:          meter,
		Cache:          nameCache,
		Factory:        factory,
		RenameService:  renameService,
		WatchService:   watchService,
		DoctorService:  doctorService,
	}, nil
}

// Close flushes the logger and releases the usage store.
func (c *Container) Close() error {
	var errs []error
	if c.UsageStore != nil {
		errs = append(errs, c.UsageStore.Close())
	}
	if c.Logger != nil {
		// Sync on stderr fails on some platforms; ignore it.
		_ = c.Logger.Sync()
	}
	return errors.Join(errs...)
}
