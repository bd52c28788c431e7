package postgres

import (
	"time"
)

type rosterTeamTableModel struct {
	UniqueName    string `db:"unique_name"`
	Name          string `db:"name"`
	LiquipediaURL string `db:"liquipedia_url"`
}

// rosterPlayerTableModel has no id column; the serial key is never read and
// COPY needs the exact inserted column list.
type rosterPlayerTableModel struct {
	PlayerUniqueID  string     `db:"player_unique_id"`
	TeamID          string     `db:"team_id"`
	GameVersion     *string    `db:"game_version"`
	PlayerID        string     `db:"player_id"`
	Name            *string    `db:"name"`
	LiquipediaURL   *string    `db:"liquipedia_url"`
	IsCaptain       bool       `db:"is_captain"`
	Position        *string    `db:"position"`
	FlagName        *string    `db:"flag_name"`
	FlagURL         *string    `db:"flag_url"`
	JoinDate        *time.Time `db:"join_date"`
	InactiveDate    *time.Time `db:"inactive_date"`
	LeaveDate       *time.Time `db:"leave_date"`
	JoinDateRaw     *string    `db:"join_date_raw"`
	InactiveDateRaw *string    `db:"inactive_date_raw"`
	LeaveDateRaw    *string    `db:"leave_date_raw"`
}

type datasetMetaTableModel struct {
	ID                 int        `db:"id"`
	RostersUpdatedDate *time.Time `db:"rosters_updated_date"`
	ReplacedAt         time.Time  `db:"replaced_at"`
}
