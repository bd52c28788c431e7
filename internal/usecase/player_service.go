package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/riskibarqy/roster-wayback/internal/domain/roster"
	"go.opentelemetry.io/otel/attribute"
)

// PlayerHistory is every tenure of one player, oldest first.
type PlayerHistory struct {
	// Player is the most recently stored record and drives display fields.
	Player  roster.Player
	Tenures []roster.Player
}

type PlayerService struct {
	repo roster.Repository
}

func NewPlayerService(repo roster.Repository) *PlayerService {
	return &PlayerService{repo: repo}
}

func (s *PlayerService) GetPlayerHistory(ctx context.Context, playerID string) (PlayerHistory, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayerHistory",
		attribute.String("roster.player_id", playerID))
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return PlayerHistory{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	var records []roster.Player
	for _, candidate := range idCandidates(playerID) {
		items, err := s.repo.GetPlayer(ctx, candidate)
		if err != nil {
			return PlayerHistory{}, fmt.Errorf("get player: %w", err)
		}
		if len(items) > 0 {
			records = items
			break
		}
	}
	if len(records) == 0 {
		return PlayerHistory{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	latest := records[len(records)-1]
	tenures := slices.Clone(records)
	slices.SortStableFunc(tenures, func(a, b roster.Player) int {
		return a.ActivePeriod().Start.Compare(b.ActivePeriod().Start)
	})

	return PlayerHistory{
		Player:  latest,
		Tenures: tenures,
	}, nil
}
