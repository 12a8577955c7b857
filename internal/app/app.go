package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/gridrivals/fantasy-motorsport/external/resultsfeed"
	"github.com/gridrivals/fantasy-motorsport/internal/config"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/constructor"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/participant"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/race"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/results"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/rider"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/roster"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/settings"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/snapshot"
	cacherepo "github.com/gridrivals/fantasy-motorsport/internal/infrastructure/repository/cache"
	"github.com/gridrivals/fantasy-motorsport/internal/infrastructure/repository/memory"
	"github.com/gridrivals/fantasy-motorsport/internal/infrastructure/repository/postgres"
	"github.com/gridrivals/fantasy-motorsport/internal/interfaces/httpapi"
	"github.com/gridrivals/fantasy-motorsport/internal/platform/cache"
	idgen "github.com/gridrivals/fantasy-motorsport/internal/platform/id"
	"github.com/gridrivals/fantasy-motorsport/internal/platform/logging"
	"github.com/gridrivals/fantasy-motorsport/internal/platform/resilience"
	"github.com/gridrivals/fantasy-motorsport/internal/usecase"
)

type repositories struct {
	rider       rider.Repository
	constructor constructor.Repository
	race        race.Repository
	participant participant.Repository
	snapshot    snapshot.Repository
	results     results.Repository
	settings    settings.Repository
}

// NewHTTPServer wires storage, services and the HTTP router into a ready
// server. The returned cleanup closes the database connection when the
// postgres driver is active; callers run it after server shutdown.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, cleanup, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var standingsCache *cache.Store
	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL)
		repos.rider = cacherepo.NewRiderRepository(repos.rider, store)
		repos.constructor = cacherepo.NewConstructorRepository(repos.constructor, store)
		repos.race = cacherepo.NewRaceRepository(repos.race, store)
		standingsCache = store
	}

	rules := roster.DefaultRules()

	catalogSvc := usecase.NewCatalogService(repos.rider, repos.constructor, repos.race, repos.participant, repos.settings)
	teamSvc := usecase.NewTeamService(
		repos.participant,
		repos.race,
		repos.snapshot,
		repos.rider,
		repos.constructor,
		repos.settings,
		rules,
		idgen.NewRandomGenerator(),
	)
	scoringSvc := usecase.NewScoringService(
		repos.participant,
		repos.race,
		repos.snapshot,
		repos.rider,
		repos.constructor,
		repos.results,
		rules,
		standingsCache,
	)
	statsSvc := usecase.NewStatsService(repos.participant, repos.snapshot, repos.rider, repos.constructor, repos.results)
	dreamTeamSvc := usecase.NewDreamTeamService(repos.race, repos.rider, repos.constructor, repos.results, rules)
	marketSvc := usecase.NewMarketService(
		repos.race,
		repos.rider,
		repos.constructor,
		repos.participant,
		repos.snapshot,
		rules,
		logger,
	)
	resultsSyncSvc := usecase.NewResultsSyncService(repos.race, repos.rider, repos.results, buildResultsFeed(cfg, logger))

	handler := httpapi.NewHandler(
		catalogSvc,
		teamSvc,
		scoringSvc,
		statsSvc,
		dreamTeamSvc,
		marketSvc,
		resultsSyncSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDatabase(ctx, cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
		}
		logger.Info("storage ready", "driver", config.StoragePostgres, "database", dbNameFromURL(cfg.DBURL))
		return repositories{
			rider:       postgres.NewRiderRepository(db),
			constructor: postgres.NewConstructorRepository(db),
			race:        postgres.NewRaceRepository(db),
			participant: postgres.NewParticipantRepository(db),
			snapshot:    postgres.NewSnapshotRepository(db),
			results:     postgres.NewResultsRepository(db),
			settings:    postgres.NewSettingsRepository(db),
		}, db.Close, nil
	default:
		logger.Info("storage ready", "driver", config.StorageMemory)
		return repositories{
			rider:       memory.NewRiderRepository(memory.SeedRiders()),
			constructor: memory.NewConstructorRepository(memory.SeedConstructors()),
			race:        memory.NewRaceRepository(memory.SeedRaces()),
			participant: memory.NewParticipantRepository(memory.SeedParticipants()),
			snapshot:    memory.NewSnapshotRepository(nil),
			results:     memory.NewResultsRepository(nil),
			settings:    memory.NewSettingsRepository(memory.SeedSettings()),
		}, noop, nil
	}
}

func openDatabase(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

func buildResultsFeed(cfg config.Config, logger *logging.Logger) usecase.ResultsFeed {
	if !cfg.ResultsFeedEnabled {
		return nil
	}

	return resultsfeed.NewClient(resultsfeed.ClientConfig{
		BaseURL:    cfg.ResultsFeedBaseURL,
		Token:      cfg.ResultsFeedToken,
		Timeout:    cfg.ResultsFeedTimeout,
		MaxRetries: cfg.ResultsFeedMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ResultsFeedCircuitEnabled,
			FailureThreshold: cfg.ResultsFeedCircuitFailureCount,
			OpenTimeout:      cfg.ResultsFeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ResultsFeedCircuitHalfOpenMaxReq,
		},
	})
}
