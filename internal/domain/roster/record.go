package roster

import (
	"time"
)

// Record is one scraped roster row as written to the JSON-lines dataset.
type Record struct {
	TeamUniqueName  string  `json:"team_unique_name"`
	TeamName        string  `json:"team_name"`
	TeamURL         string  `json:"team_url"`
	PlayerUniqueID  string  `json:"player_unique_id"`
	GameVersion     *string `json:"game_version"`
	PlayerID        string  `json:"player_id"`
	FullName        *string `json:"full_name"`
	PlayerURL       *string `json:"player_url"`
	IsCaptain       bool    `json:"is_captain"`
	Position        *string `json:"position"`
	FlagName        *string `json:"flag_name"`
	FlagURL         *string `json:"flag_url"`
	HasInvalidDates bool    `json:"has_invalid_dates"`
	JoinDate        *string `json:"join_date,omitempty"`
	InactiveDate    *string `json:"inactive_date,omitempty"`
	LeaveDate       *string `json:"leave_date,omitempty"`
	JoinDateRaw     *string `json:"join_date_raw,omitempty"`
	InactiveDateRaw *string `json:"inactive_date_raw,omitempty"`
	LeaveDateRaw    *string `json:"leave_date_raw,omitempty"`
}

// Team returns the team the row was scraped from.
func (r Record) Team() Team {
	return Team{
		ID:            r.TeamUniqueName,
		Name:          r.TeamName,
		LiquipediaURL: r.TeamURL,
	}
}

// Player converts the row into a tenure record. A stored ISO date that no
// longer parses is kept as raw text so the record lands in the invalid bucket
// instead of silently becoming an open tenure.
func (r Record) Player() Player {
	p := Player{
		PlayerID:      r.PlayerUniqueID,
		TeamID:        r.TeamUniqueName,
		GameVersion:   deref(r.GameVersion),
		Nickname:      r.PlayerID,
		Name:          deref(r.FullName),
		LiquipediaURL: deref(r.PlayerURL),
		IsCaptain:     r.IsCaptain,
		Position:      deref(r.Position),
		FlagName:      deref(r.FlagName),
		FlagURL:       deref(r.FlagURL),
	}
	if p.PlayerID == "" {
		p.PlayerID = r.PlayerID
	}

	p.JoinDate, p.JoinDateRaw = recordDate(r.JoinDate, r.JoinDateRaw)
	p.InactiveDate, p.InactiveDateRaw = recordDate(r.InactiveDate, r.InactiveDateRaw)
	p.LeaveDate, p.LeaveDateRaw = recordDate(r.LeaveDate, r.LeaveDateRaw)

	return p
}

// NewRecord builds a dataset row from a team and one of its tenure records.
func NewRecord(team Team, p Player) Record {
	rec := Record{
		TeamUniqueName:  team.ID,
		TeamName:        team.Name,
		TeamURL:         team.LiquipediaURL,
		PlayerUniqueID:  p.PlayerID,
		GameVersion:     ref(p.GameVersion),
		PlayerID:        p.Nickname,
		FullName:        ref(p.Name),
		PlayerURL:       ref(p.LiquipediaURL),
		IsCaptain:       p.IsCaptain,
		Position:        ref(p.Position),
		FlagName:        ref(p.FlagName),
		FlagURL:         ref(p.FlagURL),
		JoinDate:        formatRecordDate(p.JoinDate),
		InactiveDate:    formatRecordDate(p.InactiveDate),
		LeaveDate:       formatRecordDate(p.LeaveDate),
		JoinDateRaw:     ref(p.JoinDateRaw),
		InactiveDateRaw: ref(p.InactiveDateRaw),
		LeaveDateRaw:    ref(p.LeaveDateRaw),
	}
	rec.HasInvalidDates = p.JoinDate == nil || p.JoinDateRaw != "" || p.InactiveDateRaw != "" || p.LeaveDateRaw != ""
	return rec
}

// DatasetFromRecords groups rows into a dataset. The first row of a team wins
// for the team's display fields.
func DatasetFromRecords(records []Record, updatedAt *time.Time) Dataset {
	out := Dataset{
		Teams:     make([]Team, 0),
		Players:   make([]Player, 0, len(records)),
		UpdatedAt: updatedAt,
	}
	seenTeams := make(map[string]struct{})
	for _, rec := range records {
		if _, ok := seenTeams[rec.TeamUniqueName]; !ok {
			seenTeams[rec.TeamUniqueName] = struct{}{}
			out.Teams = append(out.Teams, rec.Team())
		}
		out.Players = append(out.Players, rec.Player())
	}
	return out
}

func recordDate(value, raw *string) (*time.Time, string) {
	rawText := deref(raw)
	text := deref(value)
	if text == "" {
		return nil, rawText
	}
	d, err := time.Parse(time.DateOnly, text)
	if err != nil {
		if rawText == "" {
			rawText = text
		}
		return nil, rawText
	}
	return &d, rawText
}

func formatRecordDate(v *time.Time) *string {
	if v == nil {
		return nil
	}
	s := v.Format(time.DateOnly)
	return &s
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func ref(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
