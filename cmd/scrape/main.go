package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/riskibarqy/roster-wayback/internal/app"
	"github.com/riskibarqy/roster-wayback/internal/config"
	"github.com/riskibarqy/roster-wayback/internal/domain/roster"
	"github.com/riskibarqy/roster-wayback/internal/infrastructure/dataset"
	"github.com/riskibarqy/roster-wayback/internal/observability"
	idgen "github.com/riskibarqy/roster-wayback/internal/platform/id"
	"github.com/riskibarqy/roster-wayback/internal/platform/logging"
	"github.com/riskibarqy/roster-wayback/internal/usecase"
)

func main() {
	os.Exit(run())
}

func run() int {
	out := flag.String("out", "", "write the scraped records as JSON lines to this file")
	versionOut := flag.String("version-out", "", "write the dataset date next to -out (default: version.txt in the same directory)")
	replace := flag.Bool("replace", false, "replace the dataset of the configured STORAGE_DRIVER")
	flag.Parse()

	if *out == "" && !*replace {
		fmt.Fprintf(os.Stderr, "usage: %s [-out rosters.jsonl] [-replace]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}
	// One-shot process: nothing reads the cache.
	cfg.CacheEnabled = false

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Stderr: true}).With("service", cfg.ServiceName+"-scrape", "env", cfg.AppEnv)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return 1
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("shutdown uptrace", "error", err)
		}
	}()

	stopProfiler, err := observability.InitPyroscope(cfg, "scrape", logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		return 1
	}
	defer func() {
		if err := stopProfiler(); err != nil {
			logger.Error("stop pyroscope", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		repo  roster.Repository
		sinks []usecase.RecordSink
	)
	if *out != "" {
		sinks = append(sinks, dataset.NewFileStore(*out, versionPathFor(*out, *versionOut)))
	}
	if *replace {
		stores, err := app.OpenStores(ctx, cfg, logger)
		if err != nil {
			logger.Error("open stores", "error", err)
			return 1
		}
		defer func() { _ = stores.Close() }()

		// The memory driver is backed by the dataset file; a separate process
		// serving it picks the new file up on restart.
		if stores.File != nil {
			sinks = append(sinks, stores.File)
		} else {
			repo = stores.Roster
		}
	}

	service := usecase.NewIngestionService(app.NewCrawler(cfg, logger), repo, logger.Named("ingestion"), sinks...).
		WithRunIDGenerator(idgen.NewRandomGenerator("scrape"))

	var result usecase.IngestionResult
	observability.ProfileRun(ctx, "scrape", func(ctx context.Context) {
		result, err = service.Rescrape(ctx)
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "scrape interrupted")
		} else {
			fmt.Fprintf(os.Stderr, "scrape failed: %v\n", err)
		}
		return 1
	}

	fmt.Println(result.Message())
	return 0
}

func versionPathFor(out, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return filepath.Join(filepath.Dir(out), "version.txt")
}
