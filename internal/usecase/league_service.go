package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/league-stats/internal/domain/game"
	"github.com/riskibarqy/league-stats/internal/domain/league"
	"github.com/riskibarqy/league-stats/internal/domain/standing"
	"github.com/riskibarqy/league-stats/internal/domain/team"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 100
)

type LeagueService struct {
	leagueRepo   league.Repository
	teamRepo     team.Repository
	standingRepo standing.Repository
	gameRepo     game.Repository
}

func NewLeagueService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	standingRepo standing.Repository,
	gameRepo game.Repository,
) *LeagueService {
	return &LeagueService{
		leagueRepo:   leagueRepo,
		teamRepo:     teamRepo,
		standingRepo: standingRepo,
		gameRepo:     gameRepo,
	}
}

func (s *LeagueService) ListLeagues(ctx context.Context, filter league.ListFilter) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListLeagues")
	defer span.End()

	if filter.Skip < 0 {
		return nil, fmt.Errorf("%w: skip must be >= 0", ErrInvalidInput)
	}
	if filter.Limit == 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit < 1 || filter.Limit > MaxListLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, MaxListLimit)
	}

	leagues, err := s.leagueRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	return leagues, nil
}

func (s *LeagueService) GetLeague(ctx context.Context, leagueID int64) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetLeague")
	defer span.End()

	return s.requireLeague(ctx, leagueID)
}

func (s *LeagueService) ListTeams(ctx context.Context, leagueID int64) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListTeams")
	defer span.End()

	if _, err := s.requireLeague(ctx, leagueID); err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list teams by league: %w", err)
	}

	return teams, nil
}

// ListStandings returns standings ordered by rank. An empty season returns every season.
func (s *LeagueService) ListStandings(ctx context.Context, leagueID int64, season string) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListStandings")
	defer span.End()

	if _, err := s.requireLeague(ctx, leagueID); err != nil {
		return nil, err
	}

	items, err := s.standingRepo.ListByLeague(ctx, leagueID, strings.TrimSpace(season))
	if err != nil {
		return nil, fmt.Errorf("list standings by league: %w", err)
	}

	return items, nil
}

// ListGames returns games newest first within the optional inclusive date range.
func (s *LeagueService) ListGames(ctx context.Context, leagueID int64, filter game.ListFilter) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListGames")
	defer span.End()

	if !filter.DateFrom.IsZero() && !filter.DateTo.IsZero() && filter.DateFrom.After(filter.DateTo) {
		return nil, fmt.Errorf("%w: date_from must not be after date_to", ErrInvalidInput)
	}
	if _, err := s.requireLeague(ctx, leagueID); err != nil {
		return nil, err
	}

	items, err := s.gameRepo.ListByLeague(ctx, leagueID, filter)
	if err != nil {
		return nil, fmt.Errorf("list games by league: %w", err)
	}

	return items, nil
}

func (s *LeagueService) requireLeague(ctx context.Context, leagueID int64) (league.League, error) {
	if leagueID <= 0 {
		return league.League{}, fmt.Errorf("%w: league id must be positive", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league not found", ErrNotFound)
	}

	return item, nil
}
