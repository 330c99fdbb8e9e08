package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/league-stats/internal/domain/game"
	"github.com/riskibarqy/league-stats/internal/domain/player"
	"github.com/riskibarqy/league-stats/internal/domain/playerstats"
	"github.com/riskibarqy/league-stats/internal/domain/team"
	"github.com/riskibarqy/league-stats/internal/domain/teamstats"
	gamemock "github.com/riskibarqy/league-stats/internal/mocks/domain/game"
	playermock "github.com/riskibarqy/league-stats/internal/mocks/domain/player"
	playerstatsmock "github.com/riskibarqy/league-stats/internal/mocks/domain/playerstats"
	teammock "github.com/riskibarqy/league-stats/internal/mocks/domain/team"
	teamstatsmock "github.com/riskibarqy/league-stats/internal/mocks/domain/teamstats"
	"github.com/stretchr/testify/mock"
)

func TestTeamService_ListGamesUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	teamRepo := teammock.NewRepository(t)
	gameRepo := gamemock.NewRepository(t)
	service := NewTeamService(teamRepo, playermock.NewRepository(t), gameRepo, teamstatsmock.NewRepository(t))

	teamRepo.On("GetByID", mock.Anything, int64(10)).Return(team.Team{ID: 10}, true, nil).Once()
	gameRepo.On("ListByTeam", mock.Anything, int64(10)).Return([]game.Game{{ID: 2}, {ID: 1}}, nil).Once()

	got, err := service.ListGames(ctx, 10)
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 {
		t.Fatalf("unexpected games: %+v", got)
	}
}

func TestTeamService_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(teamRepo, playermock.NewRepository(t), gamemock.NewRepository(t), teamstatsmock.NewRepository(t))

	teamRepo.On("GetByID", mock.Anything, int64(404)).Return(team.Team{}, false, nil).Twice()

	if _, err := service.GetTeam(ctx, 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.ListPlayers(ctx, 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.ListStats(ctx, -1, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTeamService_ListStatsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	teamRepo := teammock.NewRepository(t)
	statsRepo := teamstatsmock.NewRepository(t)
	service := NewTeamService(teamRepo, playermock.NewRepository(t), gamemock.NewRepository(t), statsRepo)

	teamRepo.On("GetByID", mock.Anything, int64(10)).Return(team.Team{ID: 10}, true, nil).Once()
	statsRepo.On("ListByTeam", mock.Anything, int64(10), "").Return([]teamstats.Statistics{{TeamID: 10, Season: "2024"}}, nil).Once()

	got, err := service.ListStats(ctx, 10, "")
	if err != nil {
		t.Fatalf("list stats: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected stats: %+v", got)
	}
}

func TestPlayerService_UsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	playerRepo := playermock.NewRepository(t)
	statsRepo := playerstatsmock.NewRepository(t)
	service := NewPlayerService(playerRepo, statsRepo)

	playerRepo.On("GetByID", mock.Anything, int64(7)).Return(player.Player{ID: 7, FullName: "Ana Kovac"}, true, nil).Twice()
	playerRepo.On("GetByID", mock.Anything, int64(8)).Return(player.Player{}, false, nil).Once()
	statsRepo.On("ListByPlayer", mock.Anything, int64(7), "2024").Return([]playerstats.Statistics{{PlayerID: 7, Season: "2024", Goals: 11}}, nil).Once()

	got, err := service.GetPlayer(ctx, 7)
	if err != nil || got.FullName != "Ana Kovac" {
		t.Fatalf("unexpected player: %+v err=%v", got, err)
	}

	stats, err := service.ListStats(ctx, 7, "2024")
	if err != nil || len(stats) != 1 || stats[0].Goals != 11 {
		t.Fatalf("unexpected stats: %+v err=%v", stats, err)
	}

	if _, err := service.GetPlayer(ctx, 8); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
