package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("leagues").
		Where(Eq("active", true), Eq("source_platform", "demo")).
		OrderBy("id").
		Limit(10).
		Offset(20).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM leagues WHERE active = $1 AND source_platform = $2 ORDER BY id LIMIT 10 OFFSET 20"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != true || args[1] != "demo" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_RangeAndAnyOf(t *testing.T) {
	from := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 10, 31, 0, 0, 0, 0, time.UTC)

	query, args, err := Select("*").
		From("games").
		Where(
			AnyOf(Eq("home_team_id", int64(4)), Eq("away_team_id", int64(4))),
			Gte("game_date", from),
			Lte("game_date", to),
		).
		OrderBy("game_date DESC", "id DESC").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM games WHERE (home_team_id = $1 OR away_team_id = $2) AND game_date >= $3 AND game_date <= $4 ORDER BY game_date DESC, id DESC"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestBuilders_RejectIncompleteQueries(t *testing.T) {
	if _, _, err := Update("games").Set("status", "final").ToSQL(); err == nil {
		t.Fatalf("expected error for update without where clause")
	}
	if _, _, err := InsertInto("teams").Columns("league_id", "name").Values(int64(1)).ToSQL(); err == nil {
		t.Fatalf("expected error for value count mismatch")
	}
	if _, _, err := Select("*").ToSQL(); err == nil {
		t.Fatalf("expected error for missing table")
	}

	query, args, err := Select("*").From("games").Where(AnyOf()).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT * FROM games WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected empty AnyOf rendering: %s %+v", query, args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("teams").
		Columns("league_id", "name").
		Values(int64(1), "FC Example").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO teams (league_id, name) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[1] != "FC Example" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("games").
		Set("status", "final").
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", int64(9))).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE games SET status = $1, updated_at = NOW() WHERE id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "final" || args[1] != int64(9) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		PlayerID int64  `db:"player_id"`
		Season   string `db:"season"`
		Goals    int    `db:"goals"`
		internal string
	}

	query, args, err := InsertModel("player_statistics", row{PlayerID: 3, Season: "2024", Goals: 11}, "ON CONFLICT (player_id, season) DO NOTHING")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO player_statistics (player_id, season, goals) VALUES ($1, $2, $3) ON CONFLICT (player_id, season) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpsertModel(t *testing.T) {
	type row struct {
		TeamID int64  `db:"team_id"`
		Season string `db:"season"`
		Goals  int    `db:"goals_for"`
	}

	query, args, err := UpsertModel("team_statistics", row{TeamID: 2, Season: "2024", Goals: 40}, "team_id", "season")
	if err != nil {
		t.Fatalf("build upsert model query: %v", err)
	}

	wantQuery := "INSERT INTO team_statistics (team_id, season, goals_for) VALUES ($1, $2, $3) " +
		"ON CONFLICT (team_id, season) DO UPDATE SET goals_for = EXCLUDED.goals_for, updated_at = NOW() " +
		"RETURNING (xmax = 0) AS created"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[2] != 40 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := UpsertModel("team_statistics", row{}); err == nil {
		t.Fatalf("expected error without conflict columns")
	}
}
