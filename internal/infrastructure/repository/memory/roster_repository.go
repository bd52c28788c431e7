package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/roster-wayback/internal/domain/roster"
)

type rosterSnapshot struct {
	updatedAt *time.Time
	teams     map[string]roster.Team
	byTeam    map[string][]roster.Player
	byPlayer  map[string][]roster.Player
	players   []roster.Player
}

// RosterRepository keeps the whole dataset in memory. ReplaceDataset swaps
// the snapshot atomically; readers never observe a partial dataset.
type RosterRepository struct {
	mu   sync.RWMutex
	data *rosterSnapshot
}

func NewRosterRepository(dataset roster.Dataset) *RosterRepository {
	return &RosterRepository{data: newRosterSnapshot(dataset)}
}

func newRosterSnapshot(dataset roster.Dataset) *rosterSnapshot {
	out := &rosterSnapshot{
		teams:    make(map[string]roster.Team, len(dataset.Teams)),
		byTeam:   make(map[string][]roster.Player, len(dataset.Teams)),
		byPlayer: make(map[string][]roster.Player),
		players:  make([]roster.Player, 0, len(dataset.Players)),
	}
	if dataset.UpdatedAt != nil {
		v := *dataset.UpdatedAt
		out.updatedAt = &v
	}

	for _, item := range dataset.Teams {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			continue
		}
		if _, exists := out.teams[id]; exists {
			continue
		}
		item.ID = id
		out.teams[id] = item
	}
	for _, item := range dataset.Players {
		if item.TeamID == "" || item.PlayerID == "" {
			continue
		}
		if _, exists := out.teams[item.TeamID]; !exists {
			out.teams[item.TeamID] = roster.Team{ID: item.TeamID, Name: roster.Unslugify(item.TeamID)}
		}
		out.players = append(out.players, item)
		out.byTeam[item.TeamID] = append(out.byTeam[item.TeamID], item)
		out.byPlayer[item.PlayerID] = append(out.byPlayer[item.PlayerID], item)
	}

	return out
}

func (r *RosterRepository) snapshot() *rosterSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data
}

func (r *RosterRepository) GetPlayers(_ context.Context, teamID string, from, to time.Time) ([]roster.Player, error) {
	data := r.snapshot()

	items := data.byTeam[teamID]
	out := make([]roster.Player, 0, len(items))
	for _, item := range items {
		if intersectsWindow(item, from, to) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *RosterRepository) GetPlayer(_ context.Context, playerID string) ([]roster.Player, error) {
	data := r.snapshot()

	items := data.byPlayer[playerID]
	return append(make([]roster.Player, 0, len(items)), items...), nil
}

func (r *RosterRepository) GetTeam(_ context.Context, teamID string) (roster.Team, bool, error) {
	data := r.snapshot()

	item, exists := data.teams[teamID]
	return item, exists, nil
}

func (r *RosterRepository) ListTeamIDs(_ context.Context) ([]string, error) {
	data := r.snapshot()

	out := make([]string, 0, len(data.teams))
	for id := range data.teams {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func (r *RosterRepository) ListPlayerIDs(_ context.Context) ([]string, error) {
	data := r.snapshot()

	out := make([]string, 0, len(data.byPlayer))
	for id := range data.byPlayer {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func (r *RosterRepository) Version(_ context.Context) (time.Time, bool, error) {
	data := r.snapshot()

	if data.updatedAt == nil {
		return time.Time{}, false, nil
	}
	return *data.updatedAt, true, nil
}

func (r *RosterRepository) ReplaceDataset(_ context.Context, dataset roster.Dataset) error {
	next := newRosterSnapshot(dataset)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = next
	return nil
}

// intersectsWindow keeps records without a join date so the invalid bucket
// stays visible for every window.
func intersectsWindow(p roster.Player, from, to time.Time) bool {
	if p.JoinDate == nil {
		return true
	}
	if p.JoinDate.After(to) {
		return false
	}
	if p.LeaveDate != nil && p.LeaveDate.Before(from) {
		return false
	}
	if p.InactiveDate != nil && p.InactiveDate.Before(from) {
		return false
	}
	return true
}
