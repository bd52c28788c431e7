package roster

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/roster-wayback/internal/domain/daterange"
)

type eventKind int

const (
	eventStart eventKind = iota
	eventEnd
)

type event struct {
	kind   eventKind
	player Player
	key    string
}

// sweepState is either noOpenPeriod (open == false) or openPeriod{start, members}.
type sweepState struct {
	open    bool
	start   time.Time
	members map[string]Player
}

// CreateRosters rebuilds the roster timeline of a team from its tenure records.
//
// Records failing HasValidDates are collected into a single roster with a Never
// period, emitted first. The remaining rosters are ordered by period start,
// never overlap, and never repeat the same membership back to back.
func CreateRosters(players []Player) []Roster {
	out := make([]Roster, 0)

	valid := make([]Player, 0, len(players))
	invalid := make([]Player, 0)
	for _, p := range players {
		if !p.HasValidDates() {
			invalid = append(invalid, p)
			continue
		}
		valid = append(valid, p)
	}
	if len(invalid) > 0 {
		out = append(out, Roster{
			Players:      sortPlayers(invalid),
			ActivePeriod: daterange.Never(),
		})
	}

	eventsByDate := make(map[time.Time][]event)
	seen := make(map[string]struct{}, len(valid))
	for _, p := range valid {
		key := p.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		period := p.ActivePeriod()
		eventsByDate[period.Start] = append(eventsByDate[period.Start], event{kind: eventStart, player: p, key: key})
		eventsByDate[period.End] = append(eventsByDate[period.End], event{kind: eventEnd, player: p, key: key})
	}

	dates := make([]time.Time, 0, len(eventsByDate))
	for d := range eventsByDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	active := make(map[string]Player)
	state := sweepState{}
	for _, date := range dates {
		applyEvents(active, eventsByDate[date])

		if state.open && sameMembers(state.members, active) {
			continue
		}
		if state.open {
			out = appendPeriod(out, state, date)
		}
		state = openAt(date, active)
	}

	if state.open && len(state.members) > 0 && len(active) > 0 {
		end := daterange.MinDate
		for _, p := range state.members {
			if e := p.ActivePeriod().End; e.After(end) {
				end = e
			}
		}
		out = appendPeriod(out, state, end)
	}

	return out
}

// applyEvents applies one date's joins before its departures, so a same-day
// join and leave of one record cancels out.
func applyEvents(active map[string]Player, events []event) {
	for _, e := range events {
		if e.kind == eventStart {
			active[e.key] = e.player
		}
	}
	for _, e := range events {
		if e.kind == eventEnd {
			delete(active, e.key)
		}
	}
}

func openAt(date time.Time, active map[string]Player) sweepState {
	if len(active) == 0 {
		return sweepState{}
	}
	members := make(map[string]Player, len(active))
	for k, p := range active {
		members[k] = p
	}
	return sweepState{open: true, start: date, members: members}
}

func appendPeriod(out []Roster, state sweepState, end time.Time) []Roster {
	if !state.open {
		panic("roster: closing a period that was never opened")
	}
	if len(state.members) == 0 || !state.start.Before(end) {
		return out
	}

	players := make([]Player, 0, len(state.members))
	for _, p := range state.members {
		players = append(players, p)
	}
	return append(out, Roster{
		Players:      sortPlayers(players),
		ActivePeriod: daterange.DateRange{Start: state.start, End: end},
	})
}

func sameMembers(a, b map[string]Player) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func sortPlayers(players []Player) []Player {
	slices.SortStableFunc(players, func(a, b Player) int {
		if c := strings.Compare(strings.ToLower(a.Nickname), strings.ToLower(b.Nickname)); c != 0 {
			return c
		}
		if c := strings.Compare(a.PlayerID, b.PlayerID); c != 0 {
			return c
		}
		return strings.Compare(a.Key(), b.Key())
	})
	return players
}
