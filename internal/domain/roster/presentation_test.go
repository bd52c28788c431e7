package roster

import "testing"

func TestNormalizeGameVersion(t *testing.T) {
	tests := map[string]string{
		"":                       UnknownGameVersion,
		"  ":                     UnknownGameVersion,
		"Counter-Strike: Source": "CS:S",
		"CS":                     "CS1.6",
		"cs":                     "CS1.6",
		"CS2":                    UnknownGameVersion,
		"CS:GO":                  UnknownGameVersion,
		"CS1.6":                  "CS1.6",
		"CS:CZ":                  "CS:CZ",
	}
	for in, want := range tests {
		if got := NormalizeGameVersion(in); got != want {
			t.Fatalf("NormalizeGameVersion(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRoster_GameVersion(t *testing.T) {
	start := day(2010, 1, 1)
	r := Roster{Players: []Player{
		{Nickname: "a", GameVersion: "Source", JoinDate: start},
		{Nickname: "b", GameVersion: "CS", JoinDate: start},
	}}
	r.ActivePeriod = r.Players[0].ActivePeriod()
	if got := r.GameVersion(); got != "CS1.6" {
		t.Fatalf("expected CS1.6 to win by priority, got %q", got)
	}

	r.Players = append(r.Players, Player{Nickname: "c", JoinDate: start})
	if got := r.GameVersion(); got != UnknownGameVersion {
		t.Fatalf("expected unknown version to win, got %q", got)
	}

	if got := (Roster{}).GameVersion(); got != UnknownGameVersion {
		t.Fatalf("expected unknown version for an empty roster, got %q", got)
	}
}

func TestPlayer_DisplayPosition(t *testing.T) {
	tests := []struct {
		player Player
		want   string
	}{
		{Player{}, PositionPlayer},
		{Player{IsCaptain: true}, PositionCaptain},
		{Player{Position: "Head Coach"}, PositionCoach},
		{Player{IsCaptain: true, Position: "Coach"}, "Captain, Coach"},
	}
	for _, tc := range tests {
		if got := tc.player.DisplayPosition(); got != tc.want {
			t.Fatalf("DisplayPosition() = %q, want %q", got, tc.want)
		}
	}
}

func TestSlugify(t *testing.T) {
	if got := Slugify("Natus Vincere"); got != "Natus_Vincere" {
		t.Fatalf("unexpected slug: %q", got)
	}
	if got := Unslugify("Natus_Vincere"); got != "Natus Vincere" {
		t.Fatalf("unexpected id: %q", got)
	}
}
