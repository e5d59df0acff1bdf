// Package app wires application services with infrastructure adapters.
package app

import (
	"github.com/mtakeda/plansh/internal/domain"
	"github.com/mtakeda/plansh/internal/infrastructure/cache"
	"github.com/mtakeda/plansh/internal/infrastructure/config"
	contextcollector "github.com/mtakeda/plansh/internal/infrastructure/context"
	"github.com/mtakeda/plansh/internal/infrastructure/executor"
	"github.com/mtakeda/plansh/internal/infrastructure/history"
	"github.com/mtakeda/plansh/internal/infrastructure/provider"
	"github.com/mtakeda/plansh/internal/pkg/logger"
	"github.com/mtakeda/plansh/internal/ports"
	"github.com/mtakeda/plansh/internal/services"
)

// Container holds the wired dependency graph for the CLI.
type Container struct {
	Config       domain.Config
	ConfigLoader *config.FileLoader
	QueryService *services.QueryService
	HistoryStore ports.PlanStore
	CacheStore   ports.PlanCache
	Logger       ports.Logger
}

// BuildContainer constructs the dependency graph: .env bootstrap, environment
// resolution, preferences-file merge, then the adapters the query service
// consumes.
func BuildContainer(verbose bool) (*Container, error) {
	config.LoadDotenv()

	loader := config.NewFileLoader("")
	cfg, err := loader.Load(config.Resolve(config.SnapshotEnviron()))
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)
	collector := contextcollector.NewBasicCollector()

	var historyStore ports.PlanStore
	if cfg.History.Enabled {
		historyStore = history.NewSQLiteStore()
	}
	var cacheStore ports.PlanCache
	if cfg.Cache.Enabled {
		cacheStore = cache.NewFileCache(cfg.CacheTTL(), cfg.CacheMaxEntries())
	}

	queryService := &services.QueryService{
		Config:           cfg,
		Transport:        provider.NewHTTPTransport(),
		ContextCollector: collector,
		HistoryStore:     historyStore,
		CacheStore:       cacheStore,
		Executor:         executor.NewPlanExecutor(),
		Logger:           log,
	}

	return &Container{
		Config:       cfg,
		ConfigLoader: loader,
		QueryService: queryService,
		HistoryStore: historyStore,
		CacheStore:   cacheStore,
		Logger:       log,
	}, nil
}
