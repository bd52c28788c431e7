package roster

import (
	"testing"
	"time"
)

func strPtr(v string) *string { return &v }

func TestRecord_Player(t *testing.T) {
	rec := Record{
		TeamUniqueName: "Natus_Vincere",
		TeamName:       "Natus Vincere",
		PlayerUniqueID: "S1mple",
		PlayerID:       "s1mple",
		GameVersion:    strPtr("CS:GO"),
		FlagName:       strPtr("Ukraine"),
		JoinDate:       strPtr("2016-08-04"),
		LeaveDate:      strPtr("2023-12-31"),
		LeaveDateRaw:   strPtr("2023-??-??"),
	}

	p := rec.Player()
	if p.PlayerID != "S1mple" || p.Nickname != "s1mple" || p.TeamID != "Natus_Vincere" {
		t.Fatalf("unexpected identity: %+v", p)
	}
	if p.GameVersion != "CS:GO" || p.FlagName != "Ukraine" {
		t.Fatalf("unexpected display fields: %+v", p)
	}
	if p.JoinDate == nil || p.JoinDate.Format(time.DateOnly) != "2016-08-04" {
		t.Fatalf("unexpected join date: %v", p.JoinDate)
	}
	if p.LeaveDate == nil || p.LeaveDateRaw != "2023-??-??" {
		t.Fatalf("unexpected leave date: %v %q", p.LeaveDate, p.LeaveDateRaw)
	}
	if !p.HasValidDates() {
		t.Fatalf("expected valid dates")
	}
}

func TestRecord_PlayerKeepsBrokenISOAsRaw(t *testing.T) {
	rec := Record{
		TeamUniqueName: "fnatic",
		PlayerID:       "olofmeister",
		JoinDate:       strPtr("2014-01-01"),
		LeaveDate:      strPtr("not-a-date"),
	}

	p := rec.Player()
	if p.PlayerID != "olofmeister" {
		t.Fatalf("expected nickname fallback for player id, got %q", p.PlayerID)
	}
	if p.LeaveDate != nil || p.LeaveDateRaw != "not-a-date" {
		t.Fatalf("unexpected leave date: %v %q", p.LeaveDate, p.LeaveDateRaw)
	}
	if p.HasValidDates() {
		t.Fatalf("broken leave date must invalidate the record")
	}
}

func TestNewRecord_RoundTripsPlayer(t *testing.T) {
	team := Team{ID: "Astralis", Name: "Astralis", LiquipediaURL: "https://liquipedia.net/counterstrike/Astralis"}
	p := Player{
		PlayerID:    "Dev1ce",
		TeamID:      "Astralis",
		Nickname:    "dev1ce",
		IsCaptain:   false,
		Position:    "Rifler",
		JoinDate:    day(2016, time.January, 1),
		JoinDateRaw: "2016-??-??",
	}

	rec := NewRecord(team, p)
	if rec.HasInvalidDates {
		t.Fatalf("approximated join date is still usable")
	}
	if rec.Position == nil || *rec.Position != "Rifler" {
		t.Fatalf("unexpected position: %v", rec.Position)
	}
	if got := rec.Player(); got.Key() != p.Key() {
		t.Fatalf("record does not round trip: %+v", got)
	}
}

func TestDatasetFromRecords_GroupsTeams(t *testing.T) {
	records := []Record{
		{TeamUniqueName: "G2_Esports", TeamName: "G2 Esports", PlayerID: "NiKo"},
		{TeamUniqueName: "G2_Esports", TeamName: "G2", PlayerID: "m0NESY"},
		{TeamUniqueName: "FaZe_Clan", TeamName: "FaZe Clan", PlayerID: "rain"},
	}

	ds := DatasetFromRecords(records, nil)
	if len(ds.Teams) != 2 || len(ds.Players) != 3 {
		t.Fatalf("unexpected dataset: %d teams, %d players", len(ds.Teams), len(ds.Players))
	}
	if ds.Teams[0].Name != "G2 Esports" {
		t.Fatalf("first row must win team display fields, got %q", ds.Teams[0].Name)
	}
}
