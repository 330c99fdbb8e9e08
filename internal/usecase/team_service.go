package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/league-stats/internal/domain/game"
	"github.com/riskibarqy/league-stats/internal/domain/player"
	"github.com/riskibarqy/league-stats/internal/domain/team"
	"github.com/riskibarqy/league-stats/internal/domain/teamstats"
)

type TeamService struct {
	teamRepo      team.Repository
	playerRepo    player.Repository
	gameRepo      game.Repository
	teamStatsRepo teamstats.Repository
}

func NewTeamService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	gameRepo game.Repository,
	teamStatsRepo teamstats.Repository,
) *TeamService {
	return &TeamService{
		teamRepo:      teamRepo,
		playerRepo:    playerRepo,
		gameRepo:      gameRepo,
		teamStatsRepo: teamStatsRepo,
	}
}

func (s *TeamService) GetTeam(ctx context.Context, teamID int64) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeam")
	defer span.End()

	return s.requireTeam(ctx, teamID)
}

func (s *TeamService) ListPlayers(ctx context.Context, teamID int64) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListPlayers")
	defer span.End()

	if _, err := s.requireTeam(ctx, teamID); err != nil {
		return nil, err
	}

	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list players by team: %w", err)
	}

	return players, nil
}

// ListGames returns home and away games of the team, newest first.
func (s *TeamService) ListGames(ctx context.Context, teamID int64) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListGames")
	defer span.End()

	if _, err := s.requireTeam(ctx, teamID); err != nil {
		return nil, err
	}

	games, err := s.gameRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list games by team: %w", err)
	}

	return games, nil
}

func (s *TeamService) ListStats(ctx context.Context, teamID int64, season string) ([]teamstats.Statistics, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListStats")
	defer span.End()

	if _, err := s.requireTeam(ctx, teamID); err != nil {
		return nil, err
	}

	stats, err := s.teamStatsRepo.ListByTeam(ctx, teamID, strings.TrimSpace(season))
	if err != nil {
		return nil, fmt.Errorf("list team statistics: %w", err)
	}

	return stats, nil
}

func (s *TeamService) requireTeam(ctx context.Context, teamID int64) (team.Team, error) {
	if teamID <= 0 {
		return team.Team{}, fmt.Errorf("%w: team id must be positive", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team not found", ErrNotFound)
	}

	return item, nil
}
