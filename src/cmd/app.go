package cmd

import (
	"context"
	"errors"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/BielosX/wombat/poke-data/src/cache"
	"github.com/BielosX/wombat/poke-data/src/config"
	"github.com/BielosX/wombat/poke-data/src/index"
	"github.com/BielosX/wombat/poke-data/src/logging"
	"github.com/BielosX/wombat/poke-data/src/pipeline"
	"github.com/BielosX/wombat/poke-data/src/pokeapi"
	"github.com/BielosX/wombat/poke-data/src/pokemon"
	"github.com/BielosX/wombat/poke-data/src/s3"
	"github.com/BielosX/wombat/poke-data/src/store"
)

// App carries the loaded configuration and the logger, and builds the
// components commands and lambda handlers share.
type App struct {
	Config  *config.Config
	Sugar   *zap.SugaredLogger
	tables  pokemon.Tables
	closers []func() error
}

func NewApp(v *viper.Viper, configFile string) (*App, error) {
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return nil, err
	}
	sugar, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	tables, err := cfg.Tables()
	if err != nil {
		return nil, err
	}
	return &App{Config: cfg, Sugar: sugar, tables: tables}, nil
}

func (a *App) Store() *store.Store {
	return store.New(a.Config.Data.Dir)
}

func (a *App) Driver(name string) *pipeline.Driver {
	return pipeline.NewDriver(a.Sugar, name, a.Config.API.Delay)
}

// Client returns a PokeAPI client behind an in-memory cache, backed by a
// badger store when cache.dir is set.
func (a *App) Client() (*pokeapi.Client, error) {
	l1, err := cache.NewOtterCache(a.Sugar, a.Config.Cache.Size, a.Config.Cache.TTL)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() error { l1.Close(); return nil })
	layers := []pokeapi.Cache{l1}
	if a.Config.Cache.Dir != "" {
		l2, err := cache.OpenBadgerCache(a.Sugar, a.Config.Cache.Dir, a.Config.Cache.TTL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, l2.Close)
		layers = append(layers, l2)
	}
	return pokeapi.NewClient(a.Sugar, pokeapi.Options{
		BaseUrl: a.Config.API.BaseUrl,
		Timeout: a.Config.API.Timeout,
		Cache:   cache.NewMultiLayerCache(a.Sugar, layers...),
	}), nil
}

// Fetcher wires the fetch step writing into s.
func (a *App) Fetcher(api pipeline.API, s *store.Store) *pipeline.Fetcher {
	transformer := pokemon.NewTransformer(pokemon.Config{
		Tables:         a.tables,
		SpriteBaseUrl:  a.Config.Sprites.BaseUrl,
		MaxMoves:       a.Config.Transform.MaxMoves,
		MaxFlavorTexts: a.Config.Transform.MaxFlavorTexts,
	})
	return pipeline.NewFetcher(a.Sugar, api, transformer, s, index.NewUpdater(a.Sugar, s, a.tables))
}

func (a *App) S3(ctx context.Context) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if a.Config.S3.Region != "" {
		opts = append(opts, awsconfig.WithRegion(a.Config.S3.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return s3.NewClient(a.Sugar, cfg), nil
}

// Close releases the caches and flushes the logger.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	_ = a.Sugar.Sync()
	return errors.Join(errs...)
}
