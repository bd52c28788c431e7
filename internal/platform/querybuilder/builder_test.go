package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("player_unique_id", "team_id").
		From("roster_players").
		Where(Eq("team_id", "Astralis"), IsNull("join_date")).
		OrderBy("id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT player_unique_id, team_id FROM roster_players WHERE team_id = $1 AND join_date IS NULL ORDER BY id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "Astralis" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_DistinctWithExpr(t *testing.T) {
	from := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	query, args, err := Select("player_unique_id").
		Distinct().
		From("roster_players").
		Where(
			Eq("team_id", "Astralis"),
			Expr("(join_date IS NULL OR COALESCE(leave_date, ?) >= ?)", from, from),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT DISTINCT player_unique_id FROM roster_players WHERE team_id = $1 AND (join_date IS NULL OR COALESCE(leave_date, $2) >= $3)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_NestedWindow(t *testing.T) {
	from := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2020, time.December, 31, 0, 0, 0, 0, time.UTC)
	query, args, err := Select("player_unique_id").
		From("roster_players").
		Where(
			Eq("team_id", "Astralis"),
			Or(
				IsNull("join_date"),
				And(
					Lte("join_date", to),
					Or(IsNull("leave_date"), Gte("leave_date", from)),
				),
			),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT player_unique_id FROM roster_players WHERE team_id = $1 AND " +
		"(join_date IS NULL OR (join_date <= $2 AND (leave_date IS NULL OR leave_date >= $3)))"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[1] != to || args[2] != from {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestGroupCondition_SingleAndEmpty(t *testing.T) {
	query, _, err := Select("1").From("teams").Where(Or(Eq("unique_name", "x"))).ToSQL()
	if err != nil || query != "SELECT 1 FROM teams WHERE unique_name = $1" {
		t.Fatalf("single term should not be wrapped: %q %v", query, err)
	}
	query, _, err = Select("1").From("teams").Where(And()).ToSQL()
	if err != nil || query != "SELECT 1 FROM teams WHERE 1=1" {
		t.Fatalf("unexpected empty group: %q %v", query, err)
	}
}

func TestSelectBuilder_RequiresTable(t *testing.T) {
	if _, _, err := Select("1").ToSQL(); err == nil {
		t.Fatalf("expected error without table")
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("teams").
		Columns("unique_name", "name").
		Values("Astralis", "Astralis").
		Values("FaZe_Clan", "FaZe Clan").
		Suffix("ON CONFLICT (unique_name) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO teams (unique_name, name) VALUES ($1, $2), ($3, $4) ON CONFLICT (unique_name) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[2] != "FaZe_Clan" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("teams").Columns("unique_name", "name").Values("Astralis").ToSQL()
	if err == nil {
		t.Fatalf("expected row width error")
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("roster_players").ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM roster_players" || len(args) != 0 {
		t.Fatalf("unexpected delete: %s %+v", query, args)
	}

	query, args, err = DeleteFrom("teams").Where(In("unique_name", []any{"a", "b"})).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	wantQuery := "DELETE FROM teams WHERE unique_name IN ($1, $2)"
	if query != wantQuery || len(args) != 2 {
		t.Fatalf("unexpected delete:\nwant: %s\ngot:  %s", wantQuery, query)
	}
}

func TestInsertModel(t *testing.T) {
	type metaRow struct {
		ID      int        `db:"id"`
		Updated *time.Time `db:"rosters_updated_date"`
		skipped string
		Ignored string `db:"-"`
	}

	query, args, err := InsertModel("dataset_meta", metaRow{ID: 1}, "ON CONFLICT (id) DO UPDATE SET rosters_updated_date = EXCLUDED.rosters_updated_date")
	if err != nil {
		t.Fatalf("build insert model: %v", err)
	}

	wantQuery := "INSERT INTO dataset_meta (id, rosters_updated_date) VALUES ($1, $2) ON CONFLICT (id) DO UPDATE SET rosters_updated_date = EXCLUDED.rosters_updated_date"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != 1 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, err := Columns("not a struct"); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
	var nilRow *metaRow
	if _, err := Values(nilRow); err == nil {
		t.Fatalf("expected error for nil model")
	}
}
