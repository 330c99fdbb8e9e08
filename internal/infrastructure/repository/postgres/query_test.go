package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/league-stats/internal/domain/game"
	"github.com/riskibarqy/league-stats/internal/domain/league"
	"github.com/riskibarqy/league-stats/internal/domain/playerstats"
	qb "github.com/riskibarqy/league-stats/internal/platform/querybuilder"
)

func TestListLeaguesQuery(t *testing.T) {
	active := true
	query, args, err := listLeaguesQuery(league.ListFilter{Active: &active, Skip: 20, Limit: 10})
	if err != nil {
		t.Fatalf("build query: %v", err)
	}

	want := "SELECT * FROM leagues WHERE active = $1 ORDER BY id LIMIT 10 OFFSET 20"
	if query != want {
		t.Fatalf("unexpected query:\n got=%s\nwant=%s", query, want)
	}
	if len(args) != 1 || args[0] != true {
		t.Fatalf("unexpected args: %#v", args)
	}

	query, args, err = listLeaguesQuery(league.ListFilter{})
	if err != nil {
		t.Fatalf("build unbounded query: %v", err)
	}
	if query != "SELECT * FROM leagues ORDER BY id" || len(args) != 0 {
		t.Fatalf("unexpected unbounded query: %s %#v", query, args)
	}
}

func TestListGamesByLeagueQuery(t *testing.T) {
	from := time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.October, 31, 0, 0, 0, 0, time.UTC)

	query, args, err := listGamesByLeagueQuery(7, game.ListFilter{DateFrom: from, DateTo: to})
	if err != nil {
		t.Fatalf("build query: %v", err)
	}

	want := "SELECT * FROM games WHERE league_id = $1 AND game_date >= $2 AND game_date <= $3 ORDER BY game_date DESC, id DESC"
	if query != want {
		t.Fatalf("unexpected query:\n got=%s\nwant=%s", query, want)
	}
	if len(args) != 3 || args[0] != int64(7) {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestListStandingsQuery(t *testing.T) {
	query, args, err := listStandingsQuery(3, "")
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	if !strings.HasSuffix(query, "ORDER BY season DESC, rank, id") || len(args) != 1 {
		t.Fatalf("unexpected all-season query: %s %#v", query, args)
	}

	query, args, err = listStandingsQuery(3, "2024")
	if err != nil {
		t.Fatalf("build season query: %v", err)
	}
	if !strings.Contains(query, "season = $2") || len(args) != 2 || args[1] != "2024" {
		t.Fatalf("unexpected season query: %s %#v", query, args)
	}
}

func TestUpdateLeagueQuery(t *testing.T) {
	query, args, err := updateLeagueQuery(league.League{ID: 9, Name: "Metro", Active: true})
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	if !strings.HasPrefix(query, "UPDATE leagues SET name = $1") || !strings.HasSuffix(query, "WHERE id = $7 RETURNING *") {
		t.Fatalf("unexpected update query: %s", query)
	}
	if !strings.Contains(query, "updated_at = NOW()") {
		t.Fatalf("expected updated_at refresh: %s", query)
	}
	if len(args) != 7 || args[6] != int64(9) {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestPlayerStatsUpsertQuery(t *testing.T) {
	query, args, err := qb.UpsertModel("player_statistics", newPlayerStatsInsertModel(playerstats.Statistics{PlayerID: 4, Season: "2024", Goals: 5}), "player_id", "season")
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	if !strings.HasPrefix(query, "INSERT INTO player_statistics (player_id, season, games_played") {
		t.Fatalf("unexpected insert: %s", query)
	}
	if !strings.Contains(query, "ON CONFLICT (player_id, season) DO UPDATE SET games_played = EXCLUDED.games_played") || !strings.HasSuffix(query, "RETURNING (xmax = 0) AS created") {
		t.Fatalf("unexpected upsert suffix: %s", query)
	}
	if strings.Contains(query, "season = EXCLUDED.season") {
		t.Fatalf("conflict columns must not be overwritten: %s", query)
	}
	if len(args) != 10 {
		t.Fatalf("expected 10 args, got %d", len(args))
	}
}

func TestLockKey(t *testing.T) {
	if got := lockKey("metro-league"); got != "league:metro-league" {
		t.Fatalf("unexpected lock key: %s", got)
	}
}
