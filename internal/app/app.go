package app

import (
	"context"

	"github.com/futstats/soccergraph/internal/config"
	"github.com/futstats/soccergraph/internal/graph"
	"github.com/futstats/soccergraph/internal/infrastructure/graphstore/memory"
	"github.com/futstats/soccergraph/internal/infrastructure/graphstore/postgres"
	"github.com/futstats/soccergraph/internal/infrastructure/tabular"
	"github.com/futstats/soccergraph/internal/ingestion"
	"github.com/futstats/soccergraph/internal/platform/cache"
	"github.com/futstats/soccergraph/internal/platform/logging"
	"github.com/futstats/soccergraph/internal/usecase"
)

// App wires the configured graph store into the ingestion pipeline and
// the query service.
type App struct {
	Config   *config.Config
	Logger   *logging.Logger
	Store    graph.Store
	Pipeline *ingestion.Pipeline
	Queries  *usecase.QueryService

	closers []func() error
}

func New(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	a := &App{Config: cfg, Logger: logger}

	switch cfg.GraphStore {
	case config.StorePostgres:
		store, err := postgres.Connect(ctx, cfg.DBURL)
		if err != nil {
			return nil, err
		}
		a.Store = store
		a.closers = append(a.closers, store.Close)
	default:
		a.Store = memory.NewStore()
	}

	var resultCache *cache.Store
	if cfg.CacheEnabled {
		resultCache = cache.NewStore(cfg.CacheTTL)
	}

	a.Pipeline = ingestion.NewPipeline(a.Store, tabular.NewCSVReader(), logger, cfg.PlayerBatchSize)
	a.Queries = usecase.NewQueryService(a.Store, resultCache, logger)
	return a, nil
}

func (a *App) Close() error {
	var firstErr error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
