package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/roster-wayback/internal/domain/daterange"
	"github.com/riskibarqy/roster-wayback/internal/domain/roster"
	"github.com/riskibarqy/roster-wayback/internal/domain/statistics"
)

// StatisticsRepository computes statistics over the current snapshot of a
// RosterRepository. Open tenures end today.
type StatisticsRepository struct {
	source *RosterRepository
	now    func() time.Time
}

func NewStatisticsRepository(source *RosterRepository) *StatisticsRepository {
	return &StatisticsRepository{source: source, now: time.Now}
}

type span struct {
	start time.Time
	end   time.Time
}

func (r *StatisticsRepository) today() time.Time {
	return daterange.Day(r.now())
}

func (r *StatisticsRepository) PlayersWithMostDaysInCurrentTeam(_ context.Context, limit int) ([]statistics.PlayerTeamDays, error) {
	data := r.source.snapshot()
	today := r.today()

	type key struct{ player, team string }
	spans := make(map[key][]span)
	for _, p := range data.players {
		if !hasCleanJoin(p) || p.InactiveDate != nil || p.LeaveDate != nil {
			continue
		}
		k := key{player: p.PlayerID, team: p.TeamID}
		spans[k] = append(spans[k], span{start: daterange.Day(*p.JoinDate), end: today})
	}

	out := make([]statistics.PlayerTeamDays, 0, len(spans))
	for k, items := range spans {
		out = append(out, statistics.PlayerTeamDays{PlayerID: k.player, TeamID: k.team, Days: mergedDays(items)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Days != out[j].Days {
			return out[i].Days > out[j].Days
		}
		if out[i].PlayerID != out[j].PlayerID {
			return out[i].PlayerID < out[j].PlayerID
		}
		return out[i].TeamID < out[j].TeamID
	})
	return truncate(out, limit), nil
}

func (r *StatisticsRepository) PlayersWithMostTeams(_ context.Context, limit int) ([]statistics.PlayerCount, error) {
	data := r.source.snapshot()

	teams := make(map[string]map[string]struct{})
	for _, p := range data.players {
		if p.JoinDate == nil {
			continue
		}
		addDistinct(teams, p.PlayerID, p.TeamID)
	}
	return sortedPlayerCounts(teams, limit), nil
}

func (r *StatisticsRepository) ActivePlayersByCountry(_ context.Context, limit int) ([]statistics.CountryCount, error) {
	data := r.source.snapshot()

	players := make(map[string]map[string]struct{})
	for _, p := range data.players {
		if !hasCleanJoin(p) || p.LeaveDate != nil {
			continue
		}
		addDistinct(players, p.FlagName, p.PlayerID)
	}

	out := make([]statistics.CountryCount, 0, len(players))
	for flag, set := range players {
		out = append(out, statistics.CountryCount{FlagName: flag, Count: len(set)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].FlagName < out[j].FlagName
	})
	return truncate(out, limit), nil
}

func (r *StatisticsRepository) TeamsWithMostPlayers(_ context.Context, limit int) ([]statistics.TeamCount, error) {
	data := r.source.snapshot()

	players := make(map[string]map[string]struct{})
	for _, p := range data.players {
		if p.JoinDate == nil {
			continue
		}
		addDistinct(players, p.TeamID, p.PlayerID)
	}

	out := make([]statistics.TeamCount, 0, len(players))
	for teamID, set := range players {
		out = append(out, statistics.TeamCount{TeamID: teamID, Count: len(set)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].TeamID < out[j].TeamID
	})
	return truncate(out, limit), nil
}

func (r *StatisticsRepository) PlayersWithMostTeammates(_ context.Context, limit int) ([]statistics.PlayerCount, error) {
	data := r.source.snapshot()
	today := r.today()

	teammates := make(map[string]map[string]struct{})
	forEachCleanPair(data, func(a, b roster.Player) {
		overlap := overlapOf(a, b, today)
		if !overlap.start.Before(overlap.end) {
			return
		}
		addDistinct(teammates, a.PlayerID, b.PlayerID)
		addDistinct(teammates, b.PlayerID, a.PlayerID)
	})
	return sortedPlayerCounts(teammates, limit), nil
}

func (r *StatisticsRepository) TeammatePairsWithMostTime(_ context.Context, limit int) ([]statistics.PairDays, error) {
	data := r.source.snapshot()
	today := r.today()

	type pair struct{ first, second string }
	spans := make(map[pair][]span)
	forEachCleanPair(data, func(a, b roster.Player) {
		overlap := overlapOf(a, b, today)
		if overlap.start.After(overlap.end) {
			return
		}
		k := pair{first: a.PlayerID, second: b.PlayerID}
		if k.second < k.first {
			k.first, k.second = k.second, k.first
		}
		spans[k] = append(spans[k], overlap)
	})

	out := make([]statistics.PairDays, 0, len(spans))
	for k, items := range spans {
		out = append(out, statistics.PairDays{Player1: k.first, Player2: k.second, Days: mergedDays(items)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Days != out[j].Days {
			return out[i].Days > out[j].Days
		}
		if out[i].Player1 != out[j].Player1 {
			return out[i].Player1 < out[j].Player1
		}
		return out[i].Player2 < out[j].Player2
	})
	return truncate(out, limit), nil
}

// forEachCleanPair visits every unordered pair of clean records of different
// players on the same team.
func forEachCleanPair(data *rosterSnapshot, fn func(a, b roster.Player)) {
	for _, items := range data.byTeam {
		clean := make([]roster.Player, 0, len(items))
		for _, p := range items {
			if hasCleanJoin(p) {
				clean = append(clean, p)
			}
		}
		for i := 0; i < len(clean); i++ {
			for j := i + 1; j < len(clean); j++ {
				if clean[i].PlayerID == clean[j].PlayerID {
					continue
				}
				fn(clean[i], clean[j])
			}
		}
	}
}

func overlapOf(a, b roster.Player, today time.Time) span {
	start := daterange.Day(*a.JoinDate)
	if other := daterange.Day(*b.JoinDate); other.After(start) {
		start = other
	}
	end := today
	for _, d := range []*time.Time{a.InactiveDate, b.InactiveDate, a.LeaveDate, b.LeaveDate} {
		if d != nil && daterange.Day(*d).Before(end) {
			end = daterange.Day(*d)
		}
	}
	return span{start: start, end: end}
}

// mergedDays is the length in days of the union of spans.
func mergedDays(items []span) int {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].start.Equal(items[j].start) {
			return items[i].start.Before(items[j].start)
		}
		return items[i].end.Before(items[j].end)
	})

	total := 0
	var covered time.Time
	for i, item := range items {
		from := item.start
		if i > 0 && covered.After(from) {
			from = covered
		}
		if item.end.After(from) {
			total += daterange.DateRange{Start: from, End: item.end}.Days()
		}
		if i == 0 || item.end.After(covered) {
			covered = item.end
		}
	}
	return total
}

func hasCleanJoin(p roster.Player) bool {
	return p.JoinDate != nil &&
		strings.TrimSpace(p.JoinDateRaw) == "" &&
		strings.TrimSpace(p.InactiveDateRaw) == "" &&
		strings.TrimSpace(p.LeaveDateRaw) == ""
}

func addDistinct(sets map[string]map[string]struct{}, key, value string) {
	set, ok := sets[key]
	if !ok {
		set = make(map[string]struct{})
		sets[key] = set
	}
	set[value] = struct{}{}
}

func sortedPlayerCounts(sets map[string]map[string]struct{}, limit int) []statistics.PlayerCount {
	out := make([]statistics.PlayerCount, 0, len(sets))
	for playerID, set := range sets {
		out = append(out, statistics.PlayerCount{PlayerID: playerID, Count: len(set)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return truncate(out, limit)
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
