package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/league-stats/internal/domain/player"
	"github.com/riskibarqy/league-stats/internal/domain/playerstats"
)

type PlayerService struct {
	playerRepo      player.Repository
	playerStatsRepo playerstats.Repository
}

func NewPlayerService(playerRepo player.Repository, playerStatsRepo playerstats.Repository) *PlayerService {
	return &PlayerService{
		playerRepo:      playerRepo,
		playerStatsRepo: playerStatsRepo,
	}
}

func (s *PlayerService) GetPlayer(ctx context.Context, playerID int64) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	return s.requirePlayer(ctx, playerID)
}

func (s *PlayerService) ListStats(ctx context.Context, playerID int64, season string) ([]playerstats.Statistics, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListStats")
	defer span.End()

	if _, err := s.requirePlayer(ctx, playerID); err != nil {
		return nil, err
	}

	stats, err := s.playerStatsRepo.ListByPlayer(ctx, playerID, strings.TrimSpace(season))
	if err != nil {
		return nil, fmt.Errorf("list player statistics: %w", err)
	}

	return stats, nil
}

func (s *PlayerService) requirePlayer(ctx context.Context, playerID int64) (player.Player, error) {
	if playerID <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id must be positive", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player not found", ErrNotFound)
	}

	return item, nil
}
