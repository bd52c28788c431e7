package postgres

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/roster-wayback/internal/domain/daterange"
	"github.com/riskibarqy/roster-wayback/internal/domain/roster"
	qb "github.com/riskibarqy/roster-wayback/internal/platform/querybuilder"
)

func TestIsNotFound(t *testing.T) {
	t.Run("matches wrapped no rows", func(t *testing.T) {
		if !isNotFound(fmt.Errorf("select team: %w", sql.ErrNoRows)) {
			t.Fatalf("expected true for wrapped sql.ErrNoRows")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isNotFound(fakeErr("pq: relation teams does not exist")) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestNullableString(t *testing.T) {
	if got := nullableString("  "); got != nil {
		t.Fatalf("expected nil for blank string, got %q", *got)
	}
	if got := nullableString(" CS:GO "); got == nil || *got != "CS:GO" {
		t.Fatalf("unexpected value: %v", got)
	}
	if stringValue(nil) != "" {
		t.Fatalf("expected empty string for nil")
	}
}

func TestNullableDateDropsClock(t *testing.T) {
	v := time.Date(2020, time.March, 4, 18, 30, 0, 0, time.FixedZone("x", 3600))
	got := nullableDate(&v)
	if got == nil || !got.Equal(daterange.Date(2020, time.March, 4)) {
		t.Fatalf("unexpected date: %v", got)
	}
	if nullableDate(nil) != nil {
		t.Fatalf("expected nil")
	}
}

func TestRosterPlayerColumnsSkipSerialID(t *testing.T) {
	want := []string{
		"player_unique_id", "team_id", "game_version", "player_id", "name",
		"liquipedia_url", "is_captain", "position", "flag_name", "flag_url",
		"join_date", "inactive_date", "leave_date",
		"join_date_raw", "inactive_date_raw", "leave_date_raw",
	}
	if !reflect.DeepEqual(rosterPlayerColumns, want) {
		t.Fatalf("copy columns drifted from table:\nwant: %v\ngot:  %v", want, rosterPlayerColumns)
	}

	values, err := qb.Values(rosterPlayerTableModel{PlayerUniqueID: "device"})
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	if len(values) != len(want) || values[0] != "device" {
		t.Fatalf("unexpected values: %+v", values)
	}
}

func TestRowsFromDataset(t *testing.T) {
	join := daterange.Date(2016, time.January, 19)
	leave := daterange.Date(2020, time.April, 30)
	dataset := roster.Dataset{
		Teams: []roster.Team{
			{ID: "Astralis", Name: "Astralis", LiquipediaURL: "https://liquipedia.net/counterstrike/Astralis"},
			{ID: "Astralis", Name: "duplicate"},
		},
		Players: []roster.Player{
			{PlayerID: "device", TeamID: "Astralis", Nickname: "device", JoinDate: &join, LeaveDate: &leave, LeaveDateRaw: "2020-04-??"},
			{PlayerID: "rain", TeamID: "FaZe_Clan", Nickname: "rain", IsCaptain: true},
			{PlayerID: "", TeamID: "Astralis"},
		},
	}

	teams, players := rowsFromDataset(dataset)
	if len(teams) != 2 || teams[1].UniqueName != "FaZe_Clan" || teams[1].Name != "FaZe Clan" {
		t.Fatalf("unexpected teams: %+v", teams)
	}
	if len(players) != 2 {
		t.Fatalf("expected records without player id to be skipped, got %d", len(players))
	}
	if players[1].GameVersion != nil || players[1].JoinDate != nil {
		t.Fatalf("empty values must be stored as NULL: %+v", players[1])
	}

	back := playersFromRows(players)
	if !reflect.DeepEqual(back[0], dataset.Players[0]) {
		t.Fatalf("round trip mismatch:\nwant: %+v\ngot:  %+v", dataset.Players[0], back[0])
	}
	if !back[1].IsCaptain || back[1].Nickname != "rain" {
		t.Fatalf("unexpected player: %+v", back[1])
	}
}

func TestStatisticsQueriesShareCleanPredicate(t *testing.T) {
	for name, query := range map[string]string{
		"most days":      mostDaysInCurrentTeamQuery,
		"by country":     activeByCountryQuery,
		"most teammates": mostTeammatesQuery,
		"pairs":          pairsWithMostTimeQuery,
	} {
		if !strings.Contains(query, "leave_date_raw IS NULL") {
			t.Fatalf("%s query must only use clean records", name)
		}
		if !strings.HasSuffix(query, "LIMIT NULLIF($1::INT, 0)") {
			t.Fatalf("%s query must take the limit as $1", name)
		}
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
