package liquipedia

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/roster-wayback/internal/domain/roster"
	"github.com/riskibarqy/roster-wayback/internal/platform/logging"
)

const (
	DefaultCategoryPath = "/counterstrike/index.php?title=Category:Teams"
	defaultConcurrency  = 2
	maxCategoryPages    = 500
)

type PageFetcher interface {
	FetchPage(ctx context.Context, ref string) (Page, error)
}

type CrawlerConfig struct {
	CategoryPath string
	Concurrency  int
	Logger       *logging.Logger
}

// Crawler walks the team category and scrapes every team's roster section.
type Crawler struct {
	fetcher      PageFetcher
	categoryPath string
	concurrency  int
	logger       *logging.Logger
}

func NewCrawler(fetcher PageFetcher, cfg CrawlerConfig) *Crawler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	categoryPath := cfg.CategoryPath
	if categoryPath == "" {
		categoryPath = DefaultCategoryPath
	}
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}

	return &Crawler{
		fetcher:      fetcher,
		categoryPath: categoryPath,
		concurrency:  concurrency,
		logger:       logger,
	}
}

// ScrapeRecords returns the rows of every team page in category order. A team
// page that fails is logged and skipped; the crawl fails only when no team
// could be scraped.
func (c *Crawler) ScrapeRecords(ctx context.Context) ([]roster.Record, error) {
	start := time.Now()

	teamURLs, err := c.listTeams(ctx)
	if err != nil {
		return nil, err
	}
	if len(teamURLs) == 0 {
		return nil, fmt.Errorf("team category %s lists no teams", c.categoryPath)
	}

	pool, err := ants.NewPool(c.concurrency)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	perTeam := make([][]roster.Record, len(teamURLs))
	var failedCount atomic.Int32
	var workers sync.WaitGroup
	for i, teamURL := range teamURLs {
		i, teamURL := i, teamURL
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if ctx.Err() != nil {
				return
			}

			records, err := c.scrapeTeam(ctx, teamURL)
			if err != nil {
				failedCount.Add(1)
				c.logger.WarnContext(ctx, "scrape team page failed", "url", teamURL, "error", err)
				return
			}
			perTeam[i] = records
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit team page to worker pool: %w", err)
		}
	}
	workers.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	failed := int(failedCount.Load())
	if failed == len(teamURLs) {
		return nil, fmt.Errorf("all %d team pages failed", failed)
	}

	out := make([]roster.Record, 0, len(teamURLs)*16)
	for _, records := range perTeam {
		out = append(out, records...)
	}

	c.logger.InfoContext(ctx, "crawl finished",
		"teams", len(teamURLs),
		"failed_teams", failed,
		"records", len(out),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

func (c *Crawler) listTeams(ctx context.Context) ([]string, error) {
	seenPages := make(map[string]struct{})
	seenTeams := make(map[string]struct{})
	out := make([]string, 0, 1024)

	next := c.categoryPath
	for pages := 0; next != ""; pages++ {
		if pages >= maxCategoryPages {
			return nil, fmt.Errorf("team category exceeds %d pages", maxCategoryPages)
		}

		page, err := c.fetcher.FetchPage(ctx, next)
		if err != nil {
			return nil, fmt.Errorf("fetch team category page %s: %w", next, err)
		}
		seenPages[page.URL] = struct{}{}

		listing, err := ParseCategoryPage(page.Body, page.URL)
		if err != nil {
			return nil, fmt.Errorf("parse team category page %s: %w", page.URL, err)
		}
		for _, teamURL := range listing.TeamURLs {
			if _, ok := seenTeams[teamURL]; ok {
				continue
			}
			seenTeams[teamURL] = struct{}{}
			out = append(out, teamURL)
		}

		next = listing.NextURL
		if _, ok := seenPages[next]; ok {
			next = ""
		}
	}

	return out, nil
}

func (c *Crawler) scrapeTeam(ctx context.Context, teamURL string) ([]roster.Record, error) {
	page, err := c.fetcher.FetchPage(ctx, teamURL)
	if err != nil {
		return nil, fmt.Errorf("fetch team page: %w", err)
	}
	records, err := ParseTeamPage(page.Body, page.URL)
	if err != nil {
		return nil, fmt.Errorf("parse team page: %w", err)
	}
	return records, nil
}
