package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/league-stats/internal/domain/game"
	"github.com/riskibarqy/league-stats/internal/domain/league"
	"github.com/riskibarqy/league-stats/internal/domain/player"
	"github.com/riskibarqy/league-stats/internal/domain/playerstats"
	"github.com/riskibarqy/league-stats/internal/domain/team"
	"github.com/riskibarqy/league-stats/internal/usecase"
)

func TestStore_WithinTxCommits(t *testing.T) {
	t.Parallel()

	store := NewStore()
	ctx := context.Background()

	err := store.WithinTx(ctx, func(ctx context.Context, tx usecase.ReconcileTx) error {
		l, err := tx.CreateLeague(ctx, league.League{Name: "Metro", Slug: "metro", Active: true})
		if err != nil {
			return err
		}
		_, err = tx.CreateTeam(ctx, team.Team{LeagueID: l.ID, Name: "Oilers", Slug: "oilers"})
		return err
	})
	if err != nil {
		t.Fatalf("within tx: %v", err)
	}

	leagues, err := NewLeagueRepository(store).List(ctx, league.ListFilter{})
	if err != nil {
		t.Fatalf("list leagues: %v", err)
	}
	if len(leagues) != 1 || leagues[0].ID != 1 || leagues[0].CreatedAt.IsZero() {
		t.Fatalf("unexpected leagues: %+v", leagues)
	}
	teams, _ := NewTeamRepository(store).ListByLeague(ctx, leagues[0].ID)
	if len(teams) != 1 || teams[0].Slug != "oilers" {
		t.Fatalf("unexpected teams: %+v", teams)
	}
}

func TestStore_WithinTxRollsBackOnError(t *testing.T) {
	t.Parallel()

	store := NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.WithinTx(ctx, func(ctx context.Context, tx usecase.ReconcileTx) error {
		if _, err := tx.CreateLeague(ctx, league.League{Name: "Metro", Slug: "metro"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	leagues, _ := NewLeagueRepository(store).List(ctx, league.ListFilter{})
	if len(leagues) != 0 {
		t.Fatalf("expected rollback, got %+v", leagues)
	}

	// ids are part of the snapshot
	created := store.SeedLeague(league.League{Name: "Metro", Slug: "metro"})
	if created.ID != 1 {
		t.Fatalf("expected id sequence to roll back, got %d", created.ID)
	}
}

func TestStore_WithinTxRollsBackOnPanic(t *testing.T) {
	t.Parallel()

	store := NewStore()
	ctx := context.Background()

	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic to propagate")
			}
		}()
		_ = store.WithinTx(ctx, func(ctx context.Context, tx usecase.ReconcileTx) error {
			_, _ = tx.CreateLeague(ctx, league.League{Name: "Metro", Slug: "metro"})
			panic("adapter exploded")
		})
	}()

	leagues, _ := NewLeagueRepository(store).List(ctx, league.ListFilter{})
	if len(leagues) != 0 {
		t.Fatalf("expected rollback after panic, got %+v", leagues)
	}
}

func TestStore_UniqueConstraints(t *testing.T) {
	t.Parallel()

	store := NewStore()
	ctx := context.Background()
	l := store.SeedLeague(league.League{Name: "Metro", Slug: "metro"})
	store.SeedTeam(team.Team{LeagueID: l.ID, Name: "Oilers", Slug: "oilers"})

	err := store.WithinTx(ctx, func(ctx context.Context, tx usecase.ReconcileTx) error {
		_, err := tx.CreateTeam(ctx, team.Team{LeagueID: l.ID, Name: "OILERS", Slug: "oilers"})
		return err
	})
	if !errors.Is(err, usecase.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestStore_UpsertPlayerStatistics(t *testing.T) {
	t.Parallel()

	store := NewStore()
	ctx := context.Background()
	l := store.SeedLeague(league.League{Name: "Metro", Slug: "metro"})
	tm := store.SeedTeam(team.Team{LeagueID: l.ID, Name: "Oilers", Slug: "oilers"})
	var firstCreated, secondCreated bool
	err := store.WithinTx(ctx, func(ctx context.Context, tx usecase.ReconcileTx) error {
		pl, err := tx.CreatePlayer(ctx, player.Player{TeamID: tm.ID, FirstName: "Ana", LastName: "Kovac", SourcePlayerID: "P17"})
		if err != nil {
			return err
		}
		firstCreated, err = tx.UpsertPlayerStatistics(ctx, playerstats.Statistics{PlayerID: pl.ID, Season: "2024", Goals: 3})
		if err != nil {
			return err
		}
		secondCreated, err = tx.UpsertPlayerStatistics(ctx, playerstats.Statistics{PlayerID: pl.ID, Season: "2024", Goals: 5})
		return err
	})
	if err != nil {
		t.Fatalf("within tx: %v", err)
	}
	if !firstCreated || secondCreated {
		t.Fatalf("unexpected created flags: first=%v second=%v", firstCreated, secondCreated)
	}

	players, _ := NewPlayerRepository(store).ListByTeam(ctx, tm.ID)
	stats, _ := NewPlayerStatsRepository(store).ListByPlayer(ctx, players[0].ID, "2024")
	if len(stats) != 1 || stats[0].Goals != 5 {
		t.Fatalf("expected one overwritten row, got %+v", stats)
	}
}

func TestGameRepository_NewestFirstWithDateFilter(t *testing.T) {
	t.Parallel()

	store := NewStore()
	ctx := context.Background()
	l := store.SeedLeague(league.League{Name: "Metro", Slug: "metro"})
	home := store.SeedTeam(team.Team{LeagueID: l.ID, Name: "A", Slug: "a"})
	away := store.SeedTeam(team.Team{LeagueID: l.ID, Name: "B", Slug: "b"})

	day := func(d int) time.Time { return time.Date(2024, time.October, d, 0, 0, 0, 0, time.UTC) }
	for i, d := range []int{1, 15, 30} {
		store.SeedGame(game.Game{LeagueID: l.ID, HomeTeamID: home.ID, AwayTeamID: away.ID, SourceGameID: string(rune('A' + i)), GameDate: day(d)})
	}

	repo := NewGameRepository(store)
	all, _ := repo.ListByLeague(ctx, l.ID, game.ListFilter{})
	if len(all) != 3 || !all[0].GameDate.Equal(day(30)) || !all[2].GameDate.Equal(day(1)) {
		t.Fatalf("expected newest first, got %+v", all)
	}

	bounded, _ := repo.ListByLeague(ctx, l.ID, game.ListFilter{DateFrom: day(15), DateTo: day(30)})
	if len(bounded) != 2 {
		t.Fatalf("expected inclusive bounds to keep 2 games, got %d", len(bounded))
	}

	byTeam, _ := repo.ListByTeam(ctx, away.ID)
	if len(byTeam) != 3 {
		t.Fatalf("expected away team in 3 games, got %d", len(byTeam))
	}
}

func TestLeagueRepository_ListFilter(t *testing.T) {
	t.Parallel()

	store := NewStore()
	ctx := context.Background()
	store.SeedLeague(league.League{Name: "A", Slug: "a", Active: true})
	store.SeedLeague(league.League{Name: "B", Slug: "b", Active: false})
	store.SeedLeague(league.League{Name: "C", Slug: "c", Active: true})

	repo := NewLeagueRepository(store)
	active := true
	got, _ := repo.List(ctx, league.ListFilter{Active: &active})
	if len(got) != 2 || got[0].Slug != "a" || got[1].Slug != "c" {
		t.Fatalf("unexpected active leagues: %+v", got)
	}

	paged, _ := repo.List(ctx, league.ListFilter{Skip: 1, Limit: 1})
	if len(paged) != 1 || paged[0].Slug != "b" {
		t.Fatalf("unexpected page: %+v", paged)
	}

	beyond, _ := repo.List(ctx, league.ListFilter{Skip: 10})
	if len(beyond) != 0 {
		t.Fatalf("expected empty page, got %+v", beyond)
	}
}

func TestSeedDemo(t *testing.T) {
	t.Parallel()

	store := NewStore()
	SeedDemo(store)

	ctx := context.Background()
	leagues, _ := NewLeagueRepository(store).List(ctx, league.ListFilter{})
	if len(leagues) != 1 || !leagues[0].HasSource() {
		t.Fatalf("unexpected demo leagues: %+v", leagues)
	}
	standings, _ := NewStandingRepository(store).ListByLeague(ctx, leagues[0].ID, "")
	if len(standings) != 2 || standings[0].Rank != 1 {
		t.Fatalf("unexpected demo standings: %+v", standings)
	}
}
