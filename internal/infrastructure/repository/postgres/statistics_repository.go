package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/roster-wayback/internal/domain/statistics"
)

// Clean records have a join date and no raw date annotations.
const cleanRecordPredicate = `join_date IS NOT NULL
    AND join_date_raw IS NULL
    AND inactive_date_raw IS NULL
    AND leave_date_raw IS NULL`

// cleanTenures ends every clean tenure at its inactive date, its leave date or
// today, whichever comes first.
const cleanTenuresCTE = `clean AS (
    SELECT player_unique_id, team_id, join_date,
        LEAST(CURRENT_DATE, inactive_date, leave_date) AS end_date
    FROM roster_players
    WHERE ` + cleanRecordPredicate + `
)`

// Overlapping spans of one group are counted once: each span only adds the
// days past the furthest end seen so far.
const mostDaysInCurrentTeamQuery = `WITH spans AS (
    SELECT player_unique_id, team_id, join_date, CURRENT_DATE AS end_date
    FROM roster_players
    WHERE ` + cleanRecordPredicate + `
        AND inactive_date IS NULL
        AND leave_date IS NULL
), ordered AS (
    SELECT player_unique_id, team_id, join_date, end_date,
        MAX(end_date) OVER (
            PARTITION BY player_unique_id, team_id
            ORDER BY join_date, end_date
            ROWS BETWEEN UNBOUNDED PRECEDING AND 1 PRECEDING
        ) AS covered_until
    FROM spans
)
SELECT player_unique_id AS player_id, team_id,
    SUM(GREATEST(0, end_date - GREATEST(join_date, COALESCE(covered_until, join_date))))::BIGINT AS days
FROM ordered
GROUP BY player_unique_id, team_id
ORDER BY days DESC, player_id COLLATE "C", team_id COLLATE "C"
LIMIT NULLIF($1::INT, 0)`

const mostTeamsQuery = `SELECT player_unique_id AS player_id, COUNT(DISTINCT team_id) AS count
FROM roster_players
WHERE join_date IS NOT NULL
GROUP BY player_unique_id
ORDER BY count DESC, player_id COLLATE "C"
LIMIT NULLIF($1::INT, 0)`

const activeByCountryQuery = `SELECT COALESCE(flag_name, '') AS flag_name, COUNT(DISTINCT player_unique_id) AS count
FROM roster_players
WHERE ` + cleanRecordPredicate + `
    AND leave_date IS NULL
GROUP BY COALESCE(flag_name, '')
ORDER BY count DESC, flag_name COLLATE "C"
LIMIT NULLIF($1::INT, 0)`

const teamsWithMostPlayersQuery = `SELECT team_id, COUNT(DISTINCT player_unique_id) AS count
FROM roster_players
WHERE join_date IS NOT NULL
GROUP BY team_id
ORDER BY count DESC, team_id COLLATE "C"
LIMIT NULLIF($1::INT, 0)`

const mostTeammatesQuery = `WITH ` + cleanTenuresCTE + `
SELECT a.player_unique_id AS player_id, COUNT(DISTINCT b.player_unique_id) AS count
FROM clean a
JOIN clean b ON a.team_id = b.team_id AND a.player_unique_id <> b.player_unique_id
WHERE GREATEST(a.join_date, b.join_date) < LEAST(a.end_date, b.end_date)
GROUP BY a.player_unique_id
ORDER BY count DESC, player_id COLLATE "C"
LIMIT NULLIF($1::INT, 0)`

const pairsWithMostTimeQuery = `WITH ` + cleanTenuresCTE + `, overlaps AS (
    SELECT a.player_unique_id AS player1, b.player_unique_id AS player2,
        GREATEST(a.join_date, b.join_date) AS start_date,
        LEAST(a.end_date, b.end_date) AS end_date
    FROM clean a
    JOIN clean b ON a.team_id = b.team_id
        AND a.player_unique_id COLLATE "C" < b.player_unique_id COLLATE "C"
    WHERE GREATEST(a.join_date, b.join_date) <= LEAST(a.end_date, b.end_date)
), ordered AS (
    SELECT player1, player2, start_date, end_date,
        MAX(end_date) OVER (
            PARTITION BY player1, player2
            ORDER BY start_date, end_date
            ROWS BETWEEN UNBOUNDED PRECEDING AND 1 PRECEDING
        ) AS covered_until
    FROM overlaps
)
SELECT player1, player2,
    SUM(GREATEST(0, end_date - GREATEST(start_date, COALESCE(covered_until, start_date))))::BIGINT AS days
FROM ordered
GROUP BY player1, player2
ORDER BY days DESC, player1 COLLATE "C", player2 COLLATE "C"
LIMIT NULLIF($1::INT, 0)`

type playerTeamDaysRow struct {
	PlayerID string `db:"player_id"`
	TeamID   string `db:"team_id"`
	Days     int    `db:"days"`
}

type playerCountRow struct {
	PlayerID string `db:"player_id"`
	Count    int    `db:"count"`
}

type countryCountRow struct {
	FlagName string `db:"flag_name"`
	Count    int    `db:"count"`
}

type teamCountRow struct {
	TeamID string `db:"team_id"`
	Count  int    `db:"count"`
}

type pairDaysRow struct {
	Player1 string `db:"player1"`
	Player2 string `db:"player2"`
	Days    int    `db:"days"`
}

type StatisticsRepository struct {
	db *sqlx.DB
}

func NewStatisticsRepository(db *sqlx.DB) *StatisticsRepository {
	return &StatisticsRepository{db: db}
}

func (r *StatisticsRepository) PlayersWithMostDaysInCurrentTeam(ctx context.Context, limit int) ([]statistics.PlayerTeamDays, error) {
	var rows []playerTeamDaysRow
	if err := r.db.SelectContext(ctx, &rows, mostDaysInCurrentTeamQuery, limit); err != nil {
		return nil, fmt.Errorf("select players with most days in current team: %w", err)
	}

	out := make([]statistics.PlayerTeamDays, 0, len(rows))
	for _, row := range rows {
		out = append(out, statistics.PlayerTeamDays{PlayerID: row.PlayerID, TeamID: row.TeamID, Days: row.Days})
	}
	return out, nil
}

func (r *StatisticsRepository) PlayersWithMostTeams(ctx context.Context, limit int) ([]statistics.PlayerCount, error) {
	return r.selectPlayerCounts(ctx, "players with most teams", mostTeamsQuery, limit)
}

func (r *StatisticsRepository) ActivePlayersByCountry(ctx context.Context, limit int) ([]statistics.CountryCount, error) {
	var rows []countryCountRow
	if err := r.db.SelectContext(ctx, &rows, activeByCountryQuery, limit); err != nil {
		return nil, fmt.Errorf("select active players by country: %w", err)
	}

	out := make([]statistics.CountryCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, statistics.CountryCount{FlagName: row.FlagName, Count: row.Count})
	}
	return out, nil
}

func (r *StatisticsRepository) TeamsWithMostPlayers(ctx context.Context, limit int) ([]statistics.TeamCount, error) {
	var rows []teamCountRow
	if err := r.db.SelectContext(ctx, &rows, teamsWithMostPlayersQuery, limit); err != nil {
		return nil, fmt.Errorf("select teams with most players: %w", err)
	}

	out := make([]statistics.TeamCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, statistics.TeamCount{TeamID: row.TeamID, Count: row.Count})
	}
	return out, nil
}

func (r *StatisticsRepository) PlayersWithMostTeammates(ctx context.Context, limit int) ([]statistics.PlayerCount, error) {
	return r.selectPlayerCounts(ctx, "players with most teammates", mostTeammatesQuery, limit)
}

func (r *StatisticsRepository) TeammatePairsWithMostTime(ctx context.Context, limit int) ([]statistics.PairDays, error) {
	var rows []pairDaysRow
	if err := r.db.SelectContext(ctx, &rows, pairsWithMostTimeQuery, limit); err != nil {
		return nil, fmt.Errorf("select teammate pairs with most time: %w", err)
	}

	out := make([]statistics.PairDays, 0, len(rows))
	for _, row := range rows {
		out = append(out, statistics.PairDays{Player1: row.Player1, Player2: row.Player2, Days: row.Days})
	}
	return out, nil
}

func (r *StatisticsRepository) selectPlayerCounts(ctx context.Context, name, query string, limit int) ([]statistics.PlayerCount, error) {
	var rows []playerCountRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("select %s: %w", name, err)
	}

	out := make([]statistics.PlayerCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, statistics.PlayerCount{PlayerID: row.PlayerID, Count: row.Count})
	}
	return out, nil
}
