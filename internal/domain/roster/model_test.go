package roster

import (
	"testing"
	"time"

	"github.com/riskibarqy/roster-wayback/internal/domain/daterange"
)

func TestPlayer_HasValidDates(t *testing.T) {
	tests := []struct {
		name   string
		player Player
		want   bool
	}{
		{
			name:   "open tenure",
			player: Player{JoinDate: day(2020, time.January, 1)},
			want:   true,
		},
		{
			name:   "missing join date",
			player: Player{LeaveDate: day(2020, time.January, 1)},
			want:   false,
		},
		{
			name:   "unparsed leave date",
			player: Player{JoinDate: day(2014, time.January, 1), LeaveDateRaw: "2015-??-??"},
			want:   false,
		},
		{
			name:   "unparsed inactive date",
			player: Player{JoinDate: day(2014, time.January, 1), InactiveDateRaw: "soon"},
			want:   false,
		},
		{
			name:   "approximated leave date",
			player: Player{JoinDate: day(2014, time.January, 1), LeaveDate: day(2015, time.December, 31), LeaveDateRaw: "2015-??-??"},
			want:   true,
		},
		{
			name:   "join after leave",
			player: Player{JoinDate: day(2020, time.January, 2), LeaveDate: day(2020, time.January, 1)},
			want:   false,
		},
		{
			name:   "join after inactive",
			player: Player{JoinDate: day(2020, time.January, 2), InactiveDate: day(2020, time.January, 1)},
			want:   false,
		},
		{
			name:   "both inactive and leave",
			player: Player{JoinDate: day(2019, time.January, 1), InactiveDate: day(2019, time.May, 1), LeaveDate: day(2019, time.June, 1)},
			want:   true,
		},
		{
			name:   "same day join and leave",
			player: Player{JoinDate: day(2019, time.January, 1), LeaveDate: day(2019, time.January, 1)},
			want:   true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.player.HasValidDates(); got != tc.want {
				t.Fatalf("HasValidDates() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPlayer_HasCleanDates(t *testing.T) {
	p := Player{JoinDate: day(2014, time.January, 1), LeaveDate: day(2015, time.December, 31)}
	if !p.HasCleanDates() {
		t.Fatalf("expected clean dates")
	}
	p.LeaveDateRaw = "2015-??-??"
	if p.HasCleanDates() {
		t.Fatalf("approximated dates must not be clean")
	}
}

func TestPlayer_ActivePeriod(t *testing.T) {
	p := Player{
		JoinDate:     day(2019, time.January, 1),
		InactiveDate: day(2019, time.May, 1),
		LeaveDate:    day(2019, time.June, 1),
	}
	got := p.ActivePeriod()
	if !got.End.Equal(daterange.Date(2019, time.May, 1)) {
		t.Fatalf("expected inactive date to end the period, got %s", got.End)
	}

	p.InactiveDate = nil
	if got := p.ActivePeriod(); !got.End.Equal(daterange.Date(2019, time.June, 1)) {
		t.Fatalf("expected leave date to end the period, got %s", got.End)
	}

	p.LeaveDate = nil
	if got := p.ActivePeriod(); !got.IsOngoing() {
		t.Fatalf("expected ongoing period, got %s", got.End)
	}
}

func TestPlayer_KeyDistinguishesValues(t *testing.T) {
	a := Player{PlayerID: "s1mple", TeamID: "Natus_Vincere", JoinDate: day(2016, time.August, 4)}
	b := a
	if a.Key() != b.Key() {
		t.Fatalf("equal records must share a key")
	}

	b.GameVersion = "CS:GO"
	if a.Key() == b.Key() {
		t.Fatalf("records with different game versions must differ")
	}

	c := Player{PlayerID: "a|b", Nickname: "c"}
	d := Player{PlayerID: "a", Nickname: "b|c"}
	if c.Key() == d.Key() {
		t.Fatalf("separator characters must not collide")
	}
}
