package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/roster-wayback/internal/domain/daterange"
	"github.com/riskibarqy/roster-wayback/internal/domain/roster"
	"go.opentelemetry.io/otel/attribute"
)

const defaultRosterMinDays = 7

var defaultRosterWindowStart = daterange.Date(2000, time.November, 9)

type RosterServiceConfig struct {
	// WindowStart is the default lower bound of a team history query.
	WindowStart time.Time
	// MinDays hides rosters that lasted fewer days. The invalid bucket is never hidden.
	MinDays int
}

type TeamRostersQuery struct {
	TeamID  string
	From    *time.Time
	To      *time.Time
	MinDays *int
}

type TeamRosters struct {
	Team    roster.Team
	From    time.Time
	To      time.Time
	Rosters []roster.Roster
}

type RosterService struct {
	repo roster.Repository
	cfg  RosterServiceConfig
	now  func() time.Time
}

func NewRosterService(repo roster.Repository, cfg RosterServiceConfig) *RosterService {
	if cfg.WindowStart.IsZero() {
		cfg.WindowStart = defaultRosterWindowStart
	}
	if cfg.MinDays < 0 {
		cfg.MinDays = defaultRosterMinDays
	}

	return &RosterService{
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
	}
}

func (s *RosterService) GetTeamRosters(ctx context.Context, query TeamRostersQuery) (TeamRosters, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.GetTeamRosters",
		attribute.String("roster.team_id", query.TeamID))
	defer span.End()

	teamID := strings.TrimSpace(query.TeamID)
	if teamID == "" {
		return TeamRosters{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	from := s.cfg.WindowStart
	if query.From != nil {
		from = daterange.Day(*query.From)
	}
	to := daterange.Date(s.now().UTC().Year(), time.December, 31)
	if query.To != nil {
		to = daterange.Day(*query.To)
	}
	if from.After(to) {
		return TeamRosters{}, fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}

	minDays := s.cfg.MinDays
	if query.MinDays != nil {
		if *query.MinDays < 0 {
			return TeamRosters{}, fmt.Errorf("%w: min_days must not be negative", ErrInvalidInput)
		}
		minDays = *query.MinDays
	}

	team, err := s.resolveTeam(ctx, teamID)
	if err != nil {
		return TeamRosters{}, err
	}

	players, err := s.repo.GetPlayers(ctx, team.ID, from, to)
	if err != nil {
		return TeamRosters{}, fmt.Errorf("get team players: %w", err)
	}
	if len(players) == 0 {
		return TeamRosters{}, fmt.Errorf("%w: no rosters for team=%s", ErrNotFound, team.ID)
	}

	return TeamRosters{
		Team:    team,
		From:    from,
		To:      to,
		Rosters: filterShortRosters(roster.CreateRosters(players), minDays),
	}, nil
}

// resolveTeam accepts both the stored id and its URL slug form.
func (s *RosterService) resolveTeam(ctx context.Context, teamID string) (roster.Team, error) {
	for _, candidate := range idCandidates(teamID) {
		team, exists, err := s.repo.GetTeam(ctx, candidate)
		if err != nil {
			return roster.Team{}, fmt.Errorf("get team: %w", err)
		}
		if exists {
			return team, nil
		}
	}
	return roster.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
}

func filterShortRosters(items []roster.Roster, minDays int) []roster.Roster {
	out := make([]roster.Roster, 0, len(items))
	for _, item := range items {
		if !item.IsInvalidBucket() && item.ActivePeriod.Days() < minDays {
			continue
		}
		out = append(out, item)
	}
	return out
}

func idCandidates(id string) []string {
	out := []string{id}
	if alt := roster.Unslugify(id); alt != id {
		out = append(out, alt)
	}
	if alt := roster.Slugify(id); alt != id {
		out = append(out, alt)
	}
	return out
}
