package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/roster-wayback/external/liquipedia"
	"github.com/riskibarqy/roster-wayback/internal/config"
	"github.com/riskibarqy/roster-wayback/internal/domain/roster"
	"github.com/riskibarqy/roster-wayback/internal/domain/statistics"
	"github.com/riskibarqy/roster-wayback/internal/infrastructure/dataset"
	cacherepo "github.com/riskibarqy/roster-wayback/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/roster-wayback/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/roster-wayback/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/roster-wayback/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/roster-wayback/internal/platform/cache"
	idgen "github.com/riskibarqy/roster-wayback/internal/platform/id"
	"github.com/riskibarqy/roster-wayback/internal/platform/logging"
	"github.com/riskibarqy/roster-wayback/internal/platform/resilience"
	"github.com/riskibarqy/roster-wayback/internal/usecase"
)

// Stores is the roster storage selected by STORAGE_DRIVER, already wrapped
// by the read cache when it is enabled.
type Stores struct {
	Roster     roster.Repository
	Statistics statistics.Repository
	// File is the JSON-lines dataset. A rescrape writes it when the memory
	// driver is active so the next start sees the new rosters.
	File *dataset.FileStore

	db *sqlx.DB
}

func (s *Stores) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// OpenStores builds the repositories for cfg.StorageDriver.
func OpenStores(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Stores, error) {
	if logger == nil {
		logger = logging.Default()
	}

	stores := &Stores{}
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		stores.db = db
		stores.Roster = postgres.NewRosterRepository(db)
		stores.Statistics = postgres.NewStatisticsRepository(db)
		logger.Info("roster storage ready", "driver", cfg.StorageDriver, "db_name", dbNameFromURL(cfg.DBURL))
	case config.StorageMemory, "":
		stores.File = dataset.NewFileStore(cfg.DatasetPath, cfg.DatasetVersionPath)
		data, err := stores.File.Load()
		if err != nil {
			return nil, fmt.Errorf("load dataset: %w", err)
		}
		rosterRepo := memory.NewRosterRepository(data)
		stores.Roster = rosterRepo
		stores.Statistics = memory.NewStatisticsRepository(rosterRepo)
		logger.Info("roster storage ready",
			"driver", config.StorageMemory,
			"dataset_path", cfg.DatasetPath,
			"teams", len(data.Teams),
			"records", len(data.Players),
		)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		stores.Roster = cacherepo.NewRosterRepository(stores.Roster, store)
		stores.Statistics = cacherepo.NewStatisticsRepository(stores.Statistics, store)
	}

	return stores, nil
}

// NewCrawler wires the wiki client and crawler from the SCRAPER_* settings.
func NewCrawler(cfg config.Config, logger *logging.Logger) *liquipedia.Crawler {
	client := liquipedia.NewClient(liquipedia.ClientConfig{
		BaseURL:    cfg.ScraperBaseURL,
		Email:      cfg.ScraperEmail,
		Timeout:    cfg.ScraperTimeout,
		Delay:      cfg.ScraperDelay,
		MaxRetries: cfg.ScraperMaxRetries,
		Logger:     logger.Named("liquipedia.client"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ScraperCircuitEnabled,
			FailureThreshold: cfg.ScraperCircuitFailureCount,
			OpenTimeout:      cfg.ScraperCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ScraperCircuitHalfOpenMaxReq,
		},
	})

	return liquipedia.NewCrawler(client, liquipedia.CrawlerConfig{
		Concurrency: cfg.ScraperConcurrency,
		Logger:      logger.Named("liquipedia.crawler"),
	})
}

// NewIngestionService replaces the active store on each run and, with the
// memory driver, rewrites the dataset file as well.
func NewIngestionService(cfg config.Config, stores *Stores, logger *logging.Logger) *usecase.IngestionService {
	var sinks []usecase.RecordSink
	if stores.File != nil {
		sinks = append(sinks, stores.File)
	}
	return usecase.NewIngestionService(NewCrawler(cfg, logger), stores.Roster, logger.Named("ingestion"), sinks...).
		WithRunIDGenerator(idgen.NewRandomGenerator("rescrape"))
}

// NewHTTPServer builds the API server. The returned stores must be closed
// after the server has shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, *Stores, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	stores, err := OpenStores(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	rosterSvc := usecase.NewRosterService(stores.Roster, usecase.RosterServiceConfig{
		WindowStart: cfg.RosterWindowStart,
		MinDays:     cfg.RosterMinDays,
	})
	playerSvc := usecase.NewPlayerService(stores.Roster)
	searchSvc := usecase.NewSearchService(stores.Roster)
	statisticsSvc := usecase.NewStatisticsService(stores.Statistics)
	metaSvc := usecase.NewMetaService(stores.Roster)

	var ingestionSvc *usecase.IngestionService
	if cfg.InternalJobToken != "" {
		ingestionSvc = NewIngestionService(cfg, stores, logger)
	} else {
		logger.Info("rescrape job disabled", "reason", "INTERNAL_JOB_TOKEN empty")
	}

	handler := httpapi.NewHandler(rosterSvc, playerSvc, searchSvc, statisticsSvc, metaSvc, ingestionSvc, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, stores, nil
}
