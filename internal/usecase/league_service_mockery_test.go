package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/league-stats/internal/domain/game"
	"github.com/riskibarqy/league-stats/internal/domain/league"
	"github.com/riskibarqy/league-stats/internal/domain/standing"
	"github.com/riskibarqy/league-stats/internal/domain/team"
	gamemock "github.com/riskibarqy/league-stats/internal/mocks/domain/game"
	leaguemock "github.com/riskibarqy/league-stats/internal/mocks/domain/league"
	standingmock "github.com/riskibarqy/league-stats/internal/mocks/domain/standing"
	teammock "github.com/riskibarqy/league-stats/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
)

type leagueServiceMocks struct {
	leagues   *leaguemock.Repository
	teams     *teammock.Repository
	standings *standingmock.Repository
	games     *gamemock.Repository
}

func newLeagueServiceWithMocks(t *testing.T) (*LeagueService, leagueServiceMocks) {
	t.Helper()

	m := leagueServiceMocks{
		leagues:   leaguemock.NewRepository(t),
		teams:     teammock.NewRepository(t),
		standings: standingmock.NewRepository(t),
		games:     gamemock.NewRepository(t),
	}
	return NewLeagueService(m.leagues, m.teams, m.standings, m.games), m
}

func TestLeagueService_ListTeams_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), "trace_id", "trace-456")
	service, m := newLeagueServiceWithMocks(t)
	leagueID := int64(3)
	expectedTeams := []team.Team{
		{ID: 10, LeagueID: leagueID, Name: "Harbor Wolves", Slug: "harbor-wolves"},
		{ID: 11, LeagueID: leagueID, Name: "Ridge Falcons", Slug: "ridge-falcons"},
	}

	m.leagues.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), leagueID).
		Return(league.League{ID: leagueID}, true, nil).
		Once()
	m.teams.
		On("ListByLeague", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), leagueID).
		Return(expectedTeams, nil).
		Once()

	got, err := service.ListTeams(ctx, leagueID)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(got) != len(expectedTeams) {
		t.Fatalf("unexpected team count: got=%d want=%d", len(got), len(expectedTeams))
	}
	if got[0].ID != expectedTeams[0].ID {
		t.Fatalf("unexpected team id: got=%d want=%d", got[0].ID, expectedTeams[0].ID)
	}
}

func TestLeagueService_ListStandings_LeagueNotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, m := newLeagueServiceWithMocks(t)

	m.leagues.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), int64(999)).
		Return(league.League{}, false, nil).
		Once()

	_, err := service.ListStandings(ctx, 999, "2024")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLeagueService_ListStandings_TrimsSeasonUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, m := newLeagueServiceWithMocks(t)
	rows := []standing.Standing{{ID: 1, LeagueID: 3, TeamID: 10, Season: "2024", Rank: 1}}

	m.leagues.On("GetByID", mock.Anything, int64(3)).Return(league.League{ID: 3}, true, nil).Once()
	m.standings.On("ListByLeague", mock.Anything, int64(3), "2024").Return(rows, nil).Once()

	got, err := service.ListStandings(ctx, 3, " 2024 ")
	if err != nil {
		t.Fatalf("list standings: %v", err)
	}
	if len(got) != 1 || got[0].Rank != 1 {
		t.Fatalf("unexpected standings: %+v", got)
	}
}

func TestLeagueService_ListGames_DateRangeUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, m := newLeagueServiceWithMocks(t)
	filter := game.ListFilter{
		DateFrom: time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2024, time.October, 31, 0, 0, 0, 0, time.UTC),
	}

	m.leagues.On("GetByID", mock.Anything, int64(3)).Return(league.League{ID: 3}, true, nil).Once()
	m.games.On("ListByLeague", mock.Anything, int64(3), filter).Return([]game.Game{{ID: 5}}, nil).Once()

	got, err := service.ListGames(ctx, 3, filter)
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected games: %+v", got)
	}

	reversed := game.ListFilter{DateFrom: filter.DateTo, DateTo: filter.DateFrom}
	if _, err := service.ListGames(ctx, 3, reversed); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for reversed range, got %v", err)
	}
}

func TestLeagueService_ListLeagues_PaginationUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, m := newLeagueServiceWithMocks(t)

	m.leagues.
		On("List", mock.Anything, league.ListFilter{Skip: 5, Limit: DefaultListLimit}).
		Return([]league.League{{ID: 6}}, nil).
		Once()

	got, err := service.ListLeagues(ctx, league.ListFilter{Skip: 5})
	if err != nil {
		t.Fatalf("list leagues: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected leagues: %+v", got)
	}

	for _, filter := range []league.ListFilter{{Skip: -1}, {Limit: -1}, {Limit: MaxListLimit + 1}} {
		if _, err := service.ListLeagues(ctx, filter); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", filter, err)
		}
	}
}

func TestLeagueService_GetLeague_RepositoryErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, m := newLeagueServiceWithMocks(t)
	dbErr := errors.New("connection reset")

	m.leagues.On("GetByID", mock.Anything, int64(1)).Return(league.League{}, false, dbErr).Once()

	_, err := service.GetLeague(ctx, 1)
	if !errors.Is(err, dbErr) || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}
