package roster

import (
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/roster-wayback/internal/domain/daterange"
)

// Player is a single tenure record of one player on one team.
type Player struct {
	PlayerID      string
	TeamID        string
	GameVersion   string
	Nickname      string
	Name          string
	LiquipediaURL string
	IsCaptain     bool
	Position      string
	FlagName      string
	FlagURL       string

	JoinDate     *time.Time
	InactiveDate *time.Time
	LeaveDate    *time.Time

	// Raw values are kept only when the parsed date is approximate or missing.
	JoinDateRaw     string
	InactiveDateRaw string
	LeaveDateRaw    string
}

// ActivePeriod spans from the join date to the inactive date, the leave date, or present.
func (p Player) ActivePeriod() daterange.DateRange {
	end := p.InactiveDate
	if end == nil {
		end = p.LeaveDate
	}
	return daterange.New(p.JoinDate, end)
}

// HasValidDates reports whether the record can take part in roster reconstruction.
func (p Player) HasValidDates() bool {
	if p.JoinDate == nil {
		return false
	}
	if p.InactiveDate == nil && p.InactiveDateRaw != "" {
		return false
	}
	if p.LeaveDate == nil && p.LeaveDateRaw != "" {
		return false
	}

	join := daterange.Day(*p.JoinDate)
	if p.InactiveDate != nil && join.After(daterange.Day(*p.InactiveDate)) {
		return false
	}
	if p.LeaveDate != nil && join.After(daterange.Day(*p.LeaveDate)) {
		return false
	}

	return true
}

// HasCleanDates is true for valid records that carry no raw date annotations.
func (p Player) HasCleanDates() bool {
	return p.HasValidDates() && p.JoinDateRaw == "" && p.InactiveDateRaw == "" && p.LeaveDateRaw == ""
}

// Key identifies a record by value across all of its fields.
func (p Player) Key() string {
	var b strings.Builder
	for _, part := range []string{
		p.PlayerID,
		p.TeamID,
		p.GameVersion,
		p.Nickname,
		p.Name,
		p.LiquipediaURL,
		strconv.FormatBool(p.IsCaptain),
		p.Position,
		p.FlagName,
		p.FlagURL,
		formatOptionalDate(p.JoinDate),
		formatOptionalDate(p.InactiveDate),
		formatOptionalDate(p.LeaveDate),
		p.JoinDateRaw,
		p.InactiveDateRaw,
		p.LeaveDateRaw,
	} {
		b.WriteString(strconv.Quote(part))
		b.WriteByte('|')
	}
	return b.String()
}

// Roster is the exact membership of a team during a maximal unchanged period.
type Roster struct {
	Players      []Player
	ActivePeriod daterange.DateRange
}

// IsInvalidBucket reports whether the roster holds records with unusable dates.
func (r Roster) IsInvalidBucket() bool {
	return r.ActivePeriod.IsNever()
}

// Team is a club page scraped from the wiki.
type Team struct {
	ID            string
	Name          string
	LiquipediaURL string
}

// Dataset is one full scrape result. It replaces the previous dataset wholesale.
type Dataset struct {
	Teams     []Team
	Players   []Player
	UpdatedAt *time.Time
}

func formatOptionalDate(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format(time.DateOnly)
}
