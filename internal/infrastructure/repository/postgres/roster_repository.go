package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/roster-wayback/internal/domain/roster"
	qb "github.com/riskibarqy/roster-wayback/internal/platform/querybuilder"
)

const teamInsertBatchSize = 500

var rosterPlayerColumns = qb.MustColumns(rosterPlayerTableModel{})

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// GetPlayers keeps records without a join date so the invalid bucket is
// visible for every window.
func (r *RosterRepository) GetPlayers(ctx context.Context, teamID string, from, to time.Time) ([]roster.Player, error) {
	query, args, err := qb.Select(rosterPlayerColumns...).From("roster_players").
		Where(
			qb.Eq("team_id", teamID),
			qb.Or(
				qb.IsNull("join_date"),
				qb.And(
					qb.Lte("join_date", to),
					qb.Or(qb.IsNull("leave_date"), qb.Gte("leave_date", from)),
					qb.Or(qb.IsNull("inactive_date"), qb.Gte("inactive_date", from)),
				),
			),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select roster players by team query: %w", err)
	}

	var rows []rosterPlayerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select roster players by team=%s: %w", teamID, err)
	}

	return playersFromRows(rows), nil
}

func (r *RosterRepository) GetPlayer(ctx context.Context, playerID string) ([]roster.Player, error) {
	query, args, err := qb.Select(rosterPlayerColumns...).From("roster_players").
		Where(qb.Eq("player_unique_id", playerID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select roster player query: %w", err)
	}

	var rows []rosterPlayerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select roster player=%s: %w", playerID, err)
	}

	return playersFromRows(rows), nil
}

func (r *RosterRepository) GetTeam(ctx context.Context, teamID string) (roster.Team, bool, error) {
	query, args, err := qb.Select("unique_name", "name", "liquipedia_url").From("teams").
		Where(qb.Eq("unique_name", teamID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return roster.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row rosterTeamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Team{}, false, nil
		}
		return roster.Team{}, false, fmt.Errorf("select team=%s: %w", teamID, err)
	}

	return roster.Team{
		ID:            row.UniqueName,
		Name:          row.Name,
		LiquipediaURL: row.LiquipediaURL,
	}, true, nil
}

func (r *RosterRepository) ListTeamIDs(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("unique_name").From("teams").OrderBy("unique_name").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team ids query: %w", err)
	}

	var out []string
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list team ids: %w", err)
	}
	return out, nil
}

func (r *RosterRepository) ListPlayerIDs(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("player_unique_id").Distinct().From("roster_players").
		OrderBy("player_unique_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player ids query: %w", err)
	}

	var out []string
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list player ids: %w", err)
	}
	return out, nil
}

func (r *RosterRepository) Version(ctx context.Context) (time.Time, bool, error) {
	query, args, err := qb.Select("rosters_updated_date").From("dataset_meta").
		Where(qb.Eq("id", 1)).
		ToSQL()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("build select dataset version query: %w", err)
	}

	var updated *time.Time
	if err := r.db.GetContext(ctx, &updated, query, args...); err != nil {
		if isNotFound(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("select dataset version: %w", err)
	}
	if updated == nil {
		return time.Time{}, false, nil
	}
	return *nullableDate(updated), true, nil
}

// ReplaceDataset swaps the whole dataset in one transaction. Players are
// loaded with COPY.
func (r *RosterRepository) ReplaceDataset(ctx context.Context, dataset roster.Dataset) error {
	teams, players := rowsFromDataset(dataset)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace dataset: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"roster_players", "teams"} {
		query, args, err := qb.DeleteFrom(table).ToSQL()
		if err != nil {
			return fmt.Errorf("build delete %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}

	for start := 0; start < len(teams); start += teamInsertBatchSize {
		end := min(start+teamInsertBatchSize, len(teams))
		builder := qb.InsertInto("teams").
			Columns("unique_name", "name", "liquipedia_url").
			Suffix("ON CONFLICT (unique_name) DO NOTHING")
		for _, team := range teams[start:end] {
			builder.Values(team.UniqueName, team.Name, team.LiquipediaURL)
		}
		query, args, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert teams query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert teams batch=%d: %w", start/teamInsertBatchSize, err)
		}
	}

	if len(players) > 0 {
		stmt, err := tx.PreparexContext(ctx, pq.CopyIn("roster_players", rosterPlayerColumns...))
		if err != nil {
			return fmt.Errorf("prepare copy roster players: %w", err)
		}
		for _, row := range players {
			values, err := qb.Values(row)
			if err != nil {
				_ = stmt.Close()
				return fmt.Errorf("map roster player row: %w", err)
			}
			if _, err := stmt.ExecContext(ctx, values...); err != nil {
				_ = stmt.Close()
				return fmt.Errorf("copy roster player=%s team=%s: %w", row.PlayerUniqueID, row.TeamID, err)
			}
		}
		if _, err := stmt.ExecContext(ctx); err != nil {
			_ = stmt.Close()
			return fmt.Errorf("flush copy roster players: %w", err)
		}
		if err := stmt.Close(); err != nil {
			return fmt.Errorf("close copy roster players: %w", err)
		}
	}

	meta := datasetMetaTableModel{
		ID:                 1,
		RostersUpdatedDate: nullableDate(dataset.UpdatedAt),
		ReplacedAt:         time.Now().UTC(),
	}
	query, args, err := qb.InsertModel("dataset_meta", meta, `ON CONFLICT (id) DO UPDATE SET
    rosters_updated_date = EXCLUDED.rosters_updated_date,
    replaced_at = EXCLUDED.replaced_at`)
	if err != nil {
		return fmt.Errorf("build upsert dataset meta query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert dataset meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace dataset tx: %w", err)
	}
	return nil
}

// rowsFromDataset maps the dataset to table rows. Teams referenced only by
// players are added so the foreign key holds.
func rowsFromDataset(dataset roster.Dataset) ([]rosterTeamTableModel, []rosterPlayerTableModel) {
	teams := make([]rosterTeamTableModel, 0, len(dataset.Teams))
	seen := make(map[string]struct{}, len(dataset.Teams))
	addTeam := func(team roster.Team) {
		if team.ID == "" {
			return
		}
		if _, ok := seen[team.ID]; ok {
			return
		}
		seen[team.ID] = struct{}{}
		name := team.Name
		if name == "" {
			name = roster.Unslugify(team.ID)
		}
		teams = append(teams, rosterTeamTableModel{
			UniqueName:    team.ID,
			Name:          name,
			LiquipediaURL: team.LiquipediaURL,
		})
	}
	for _, team := range dataset.Teams {
		addTeam(team)
	}

	players := make([]rosterPlayerTableModel, 0, len(dataset.Players))
	for _, p := range dataset.Players {
		if p.TeamID == "" || p.PlayerID == "" {
			continue
		}
		addTeam(roster.Team{ID: p.TeamID})
		players = append(players, rosterPlayerTableModel{
			PlayerUniqueID:  p.PlayerID,
			TeamID:          p.TeamID,
			GameVersion:     nullableString(p.GameVersion),
			PlayerID:        p.Nickname,
			Name:            nullableString(p.Name),
			LiquipediaURL:   nullableString(p.LiquipediaURL),
			IsCaptain:       p.IsCaptain,
			Position:        nullableString(p.Position),
			FlagName:        nullableString(p.FlagName),
			FlagURL:         nullableString(p.FlagURL),
			JoinDate:        nullableDate(p.JoinDate),
			InactiveDate:    nullableDate(p.InactiveDate),
			LeaveDate:       nullableDate(p.LeaveDate),
			JoinDateRaw:     nullableString(p.JoinDateRaw),
			InactiveDateRaw: nullableString(p.InactiveDateRaw),
			LeaveDateRaw:    nullableString(p.LeaveDateRaw),
		})
	}

	return teams, players
}

func playersFromRows(rows []rosterPlayerTableModel) []roster.Player {
	out := make([]roster.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, roster.Player{
			PlayerID:        row.PlayerUniqueID,
			TeamID:          row.TeamID,
			GameVersion:     stringValue(row.GameVersion),
			Nickname:        row.PlayerID,
			Name:            stringValue(row.Name),
			LiquipediaURL:   stringValue(row.LiquipediaURL),
			IsCaptain:       row.IsCaptain,
			Position:        stringValue(row.Position),
			FlagName:        stringValue(row.FlagName),
			FlagURL:         stringValue(row.FlagURL),
			JoinDate:        nullableDate(row.JoinDate),
			InactiveDate:    nullableDate(row.InactiveDate),
			LeaveDate:       nullableDate(row.LeaveDate),
			JoinDateRaw:     stringValue(row.JoinDateRaw),
			InactiveDateRaw: stringValue(row.InactiveDateRaw),
			LeaveDateRaw:    stringValue(row.LeaveDateRaw),
		})
	}
	return out
}
