package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/roster-wayback/internal/domain/daterange"
	"github.com/riskibarqy/roster-wayback/internal/domain/roster"
	"github.com/riskibarqy/roster-wayback/internal/platform/id"
	"github.com/riskibarqy/roster-wayback/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// RecordScraper crawls the wiki and returns every roster row it found.
type RecordScraper interface {
	ScrapeRecords(ctx context.Context) ([]roster.Record, error)
}

// RecordSink persists a scrape result outside the roster store, for example
// as a JSON-lines file.
type RecordSink interface {
	WriteRecords(ctx context.Context, records []roster.Record, updatedAt time.Time) error
}

type IngestionResult struct {
	RunID          string    `json:"run_id,omitempty"`
	Teams          int       `json:"teams"`
	Records        int       `json:"records"`
	InvalidRecords int       `json:"invalid_records"`
	Replaced       bool      `json:"replaced"`
	UpdatedAt      time.Time `json:"updated_at"`
	DurationMs     int64     `json:"duration_ms"`
}

// Message is a one-line human readable summary.
func (r IngestionResult) Message() string {
	action := "scraped"
	if r.Replaced {
		action = "scraped and replaced"
	}
	return fmt.Sprintf("%s %d records of %d teams (%d with invalid dates) in %s",
		action, r.Records, r.Teams, r.InvalidRecords, time.Duration(r.DurationMs)*time.Millisecond)
}

type IngestionService struct {
	scraper RecordScraper
	repo    roster.Repository
	sinks   []RecordSink
	logger  *logging.Logger
	runIDs  id.Generator
	now     func() time.Time
	running atomic.Bool
}

// NewIngestionService wires a scraper to its outputs. repo may be nil when the
// result should only be written to sinks.
func NewIngestionService(scraper RecordScraper, repo roster.Repository, logger *logging.Logger, sinks ...RecordSink) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		scraper: scraper,
		repo:    repo,
		sinks:   sinks,
		logger:  logger,
		now:     time.Now,
	}
}

// WithRunIDGenerator tags each run's result and logs with an id from gen.
func (s *IngestionService) WithRunIDGenerator(gen id.Generator) *IngestionService {
	s.runIDs = gen
	return s
}

// Rescrape crawls the wiki and replaces the dataset wholesale. Only one run can
// be in flight at a time.
func (s *IngestionService) Rescrape(ctx context.Context) (IngestionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.Rescrape")
	defer span.End()

	if s.scraper == nil {
		return IngestionResult{}, fmt.Errorf("%w: scraper is not configured", ErrDependencyUnavailable)
	}
	if !s.running.CompareAndSwap(false, true) {
		return IngestionResult{}, fmt.Errorf("%w: rescrape already running", ErrConflict)
	}
	defer s.running.Store(false)

	runID, err := s.newRunID()
	if err != nil {
		return IngestionResult{}, err
	}
	logger := s.logger
	if runID != "" {
		logger = logger.With("run_id", runID)
	}
	logger.InfoContext(ctx, "roster rescrape started")

	startedAt := s.now()
	records, err := s.scraper.ScrapeRecords(ctx)
	if err != nil {
		return IngestionResult{}, fmt.Errorf("scrape records: %w", err)
	}
	records = cleanRecords(records)
	if len(records) == 0 {
		return IngestionResult{}, fmt.Errorf("%w: scraper returned no records", ErrDependencyUnavailable)
	}

	updatedAt := daterange.Day(startedAt)
	dataset := roster.DatasetFromRecords(records, &updatedAt)

	result := IngestionResult{
		RunID:     runID,
		Teams:     len(dataset.Teams),
		Records:   len(dataset.Players),
		UpdatedAt: updatedAt,
	}
	for _, p := range dataset.Players {
		if !p.HasValidDates() {
			result.InvalidRecords++
		}
	}

	for _, sink := range s.sinks {
		if err := sink.WriteRecords(ctx, records, updatedAt); err != nil {
			return IngestionResult{}, fmt.Errorf("write records: %w", err)
		}
	}

	if s.repo != nil {
		if err := s.repo.ReplaceDataset(ctx, dataset); err != nil {
			return IngestionResult{}, fmt.Errorf("replace dataset: %w", err)
		}
		result.Replaced = true
	}

	result.DurationMs = s.now().Sub(startedAt).Milliseconds()
	span.SetAttributes(
		attribute.String("ingestion.run_id", runID),
		attribute.Int("ingestion.teams", result.Teams),
		attribute.Int("ingestion.records", result.Records),
		attribute.Int("ingestion.invalid_records", result.InvalidRecords),
	)
	logger.InfoContext(ctx, "roster dataset ingested",
		"teams", result.Teams,
		"records", result.Records,
		"invalid_records", result.InvalidRecords,
		"replaced", result.Replaced,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

func (s *IngestionService) newRunID() (string, error) {
	if s.runIDs == nil {
		return "", nil
	}
	runID, err := s.runIDs.NewID()
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}
	return runID, nil
}

func cleanRecords(records []roster.Record) []roster.Record {
	out := make([]roster.Record, 0, len(records))
	for _, rec := range records {
		rec.TeamUniqueName = strings.TrimSpace(rec.TeamUniqueName)
		rec.PlayerUniqueID = strings.TrimSpace(rec.PlayerUniqueID)
		rec.PlayerID = strings.TrimSpace(rec.PlayerID)
		if rec.TeamUniqueName == "" || (rec.PlayerUniqueID == "" && rec.PlayerID == "") {
			continue
		}
		out = append(out, rec)
	}
	return out
}
