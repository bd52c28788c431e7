package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/roster-wayback/internal/domain/statistics"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

type StatisticsService struct {
	repo statistics.Repository
}

func NewStatisticsService(repo statistics.Repository) *StatisticsService {
	return &StatisticsService{repo: repo}
}

// Overview runs every statistics query concurrently.
func (s *StatisticsService) Overview(ctx context.Context, limit int) (statistics.Overview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatisticsService.Overview",
		attribute.Int("statistics.limit", limit))
	defer span.End()

	if limit == 0 {
		limit = statistics.DefaultLimit
	}
	if err := statistics.ValidateLimit(limit); err != nil {
		return statistics.Overview{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var out statistics.Overview
	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError()

	p.Go(func(ctx context.Context) error {
		items, err := s.repo.PlayersWithMostDaysInCurrentTeam(ctx, limit)
		if err != nil {
			return fmt.Errorf("players with most days in current team: %w", err)
		}
		out.MostDaysInCurrentTeam = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.repo.PlayersWithMostTeams(ctx, limit)
		if err != nil {
			return fmt.Errorf("players with most teams: %w", err)
		}
		out.MostTeams = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.repo.ActivePlayersByCountry(ctx, limit)
		if err != nil {
			return fmt.Errorf("active players by country: %w", err)
		}
		out.ActiveByCountry = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.repo.TeamsWithMostPlayers(ctx, limit)
		if err != nil {
			return fmt.Errorf("teams with most players: %w", err)
		}
		out.TeamsWithMostPlayers = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.repo.PlayersWithMostTeammates(ctx, limit)
		if err != nil {
			return fmt.Errorf("players with most teammates: %w", err)
		}
		out.MostTeammates = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.repo.TeammatePairsWithMostTime(ctx, limit)
		if err != nil {
			return fmt.Errorf("teammate pairs with most time: %w", err)
		}
		out.LongestPairs = items
		return nil
	})

	if err := p.Wait(); err != nil {
		return statistics.Overview{}, err
	}
	return out, nil
}
