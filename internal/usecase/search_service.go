package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/roster-wayback/internal/domain/roster"
	"go.opentelemetry.io/otel/attribute"
)

const (
	EntityKindTeam   = "team"
	EntityKindPlayer = "player"
)

// EntityRef points at a team or player page, as typed into the search box.
type EntityRef struct {
	Kind string
	ID   string
}

func (r EntityRef) String() string {
	return r.Kind + ":" + r.ID
}

type SearchService struct {
	repo roster.Repository
}

func NewSearchService(repo roster.Repository) *SearchService {
	return &SearchService{repo: repo}
}

// ListEntities returns every searchable item, teams first, each group sorted.
func (s *SearchService) ListEntities(ctx context.Context) ([]EntityRef, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SearchService.ListEntities")
	defer span.End()

	teamIDs, err := s.repo.ListTeamIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list team ids: %w", err)
	}
	playerIDs, err := s.repo.ListPlayerIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list player ids: %w", err)
	}

	out := make([]EntityRef, 0, len(teamIDs)+len(playerIDs))
	out = appendEntities(out, EntityKindTeam, teamIDs)
	out = appendEntities(out, EntityKindPlayer, playerIDs)
	return out, nil
}

// Resolve parses a search query and checks that the entity exists. The
// returned id is the stored one even when the query used the slug form.
func (s *SearchService) Resolve(ctx context.Context, query string) (EntityRef, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SearchService.Resolve",
		attribute.String("search.query", query))
	defer span.End()

	ref, err := ParseEntityRef(query)
	if err != nil {
		return EntityRef{}, err
	}

	for _, candidate := range idCandidates(ref.ID) {
		switch ref.Kind {
		case EntityKindTeam:
			_, exists, err := s.repo.GetTeam(ctx, candidate)
			if err != nil {
				return EntityRef{}, fmt.Errorf("get team: %w", err)
			}
			if exists {
				return EntityRef{Kind: ref.Kind, ID: candidate}, nil
			}
		case EntityKindPlayer:
			items, err := s.repo.GetPlayer(ctx, candidate)
			if err != nil {
				return EntityRef{}, fmt.Errorf("get player: %w", err)
			}
			if len(items) > 0 {
				return EntityRef{Kind: ref.Kind, ID: candidate}, nil
			}
		}
	}
	return EntityRef{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
}

// ParseEntityRef parses "team:<id>" or "player:<id>".
func ParseEntityRef(query string) (EntityRef, error) {
	kind, id, ok := strings.Cut(strings.TrimSpace(query), ":")
	if !ok {
		return EntityRef{}, fmt.Errorf("%w: query must look like team:<id> or player:<id>", ErrInvalidInput)
	}
	kind = strings.ToLower(strings.TrimSpace(kind))
	id = strings.TrimSpace(id)
	if id == "" {
		return EntityRef{}, fmt.Errorf("%w: entity id is required", ErrInvalidInput)
	}
	switch kind {
	case EntityKindTeam, EntityKindPlayer:
		return EntityRef{Kind: kind, ID: id}, nil
	default:
		return EntityRef{}, fmt.Errorf("%w: unknown entity kind %q", ErrInvalidInput, kind)
	}
}

func appendEntities(out []EntityRef, kind string, ids []string) []EntityRef {
	sorted := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	for _, id := range sorted {
		out = append(out, EntityRef{Kind: kind, ID: id})
	}
	return out
}
