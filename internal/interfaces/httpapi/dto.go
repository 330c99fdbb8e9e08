package httpapi

import (
	"context"
	"strings"

	"github.com/riskibarqy/league-stats/internal/domain/game"
	"github.com/riskibarqy/league-stats/internal/domain/league"
	"github.com/riskibarqy/league-stats/internal/domain/player"
	"github.com/riskibarqy/league-stats/internal/domain/playerstats"
	"github.com/riskibarqy/league-stats/internal/domain/standing"
	"github.com/riskibarqy/league-stats/internal/domain/team"
	"github.com/riskibarqy/league-stats/internal/domain/teamstats"
)

type listLeaguesQuery struct {
	Skip  int `validate:"gte=0"`
	Limit int `validate:"gte=1,lte=100"`
}

type leagueDTO struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Slug           string  `json:"slug"`
	Description    *string `json:"description"`
	LogoURL        *string `json:"logo_url"`
	SourcePlatform *string `json:"source_platform"`
	Active         bool    `json:"active"`
}

type teamDTO struct {
	ID           int64   `json:"id"`
	LeagueID     int64   `json:"league_id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Abbreviation *string `json:"abbreviation"`
	LogoURL      *string `json:"logo_url"`
}

type playerDTO struct {
	ID           int64   `json:"id"`
	TeamID       int64   `json:"team_id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	FullName     string  `json:"full_name"`
	JerseyNumber *int    `json:"jersey_number"`
	Position     *string `json:"position"`
	PhotoURL     *string `json:"photo_url"`
}

type gameDTO struct {
	ID         int64   `json:"id"`
	LeagueID   int64   `json:"league_id"`
	HomeTeamID int64   `json:"home_team_id"`
	AwayTeamID int64   `json:"away_team_id"`
	GameDate   string  `json:"game_date"`
	GameTime   *string `json:"game_time"`
	Status     string  `json:"status"`
	HomeScore  *int    `json:"home_score"`
	AwayScore  *int    `json:"away_score"`
	Venue      *string `json:"venue"`
}

type standingDTO struct {
	ID             int64  `json:"id"`
	LeagueID       int64  `json:"league_id"`
	TeamID         int64  `json:"team_id"`
	Season         string `json:"season"`
	Rank           int    `json:"rank"`
	Wins           int    `json:"wins"`
	Losses         int    `json:"losses"`
	Ties           int    `json:"ties"`
	Points         int    `json:"points"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	GamesPlayed    int    `json:"games_played"`
}

type playerStatsDTO struct {
	ID             int64  `json:"id"`
	PlayerID       int64  `json:"player_id"`
	Season         string `json:"season"`
	GamesPlayed    int    `json:"games_played"`
	Goals          int    `json:"goals"`
	Assists        int    `json:"assists"`
	Points         int    `json:"points"`
	Shots          int    `json:"shots"`
	ShotsOnGoal    int    `json:"shots_on_goal"`
	PenaltyMinutes int    `json:"penalty_minutes"`
	PlusMinus      int    `json:"plus_minus"`
}

type teamStatsDTO struct {
	ID             int64   `json:"id"`
	TeamID         int64   `json:"team_id"`
	Season         string  `json:"season"`
	GamesPlayed    int     `json:"games_played"`
	GoalsFor       int     `json:"goals_for"`
	GoalsAgainst   int     `json:"goals_against"`
	GoalDifference int     `json:"goal_difference"`
	ShotsPerGame   float64 `json:"shots_per_game"`
	GoalsPerGame   float64 `json:"goals_per_game"`
	PowerPlayPct   float64 `json:"power_play_pct"`
	PenaltyKillPct float64 `json:"penalty_kill_pct"`
}

type queuedDTO struct {
	Status   string `json:"status"`
	Kind     string `json:"kind"`
	LeagueID int64  `json:"league_id,omitempty"`
}

// optional maps an empty column to JSON null.
func optional(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

func leagueToDTO(ctx context.Context, v league.League) leagueDTO {
	ctx, span := startSpan(ctx, "httpapi.leagueToDTO")
	defer span.End()

	return leagueDTO{
		ID:             v.ID,
		Name:           v.Name,
		Slug:           v.Slug,
		Description:    optional(v.Description),
		LogoURL:        optional(v.LogoURL),
		SourcePlatform: optional(v.SourcePlatform),
		Active:         v.Active,
	}
}

func teamToDTO(ctx context.Context, v team.Team) teamDTO {
	ctx, span := startSpan(ctx, "httpapi.teamToDTO")
	defer span.End()

	return teamDTO{
		ID:           v.ID,
		LeagueID:     v.LeagueID,
		Name:         v.Name,
		Slug:         v.Slug,
		Abbreviation: optional(v.Abbreviation),
		LogoURL:      optional(v.LogoURL),
	}
}

func playerToDTO(ctx context.Context, v player.Player) playerDTO {
	ctx, span := startSpan(ctx, "httpapi.playerToDTO")
	defer span.End()

	return playerDTO{
		ID:           v.ID,
		TeamID:       v.TeamID,
		FirstName:    v.FirstName,
		LastName:     v.LastName,
		FullName:     v.FullName,
		JerseyNumber: v.JerseyNumber,
		Position:     optional(v.Position),
		PhotoURL:     optional(v.PhotoURL),
	}
}

func gameToDTO(ctx context.Context, v game.Game) gameDTO {
	ctx, span := startSpan(ctx, "httpapi.gameToDTO")
	defer span.End()

	return gameDTO{
		ID:         v.ID,
		LeagueID:   v.LeagueID,
		HomeTeamID: v.HomeTeamID,
		AwayTeamID: v.AwayTeamID,
		GameDate:   v.GameDate.Format(dateLayout),
		GameTime:   optional(v.GameTime),
		Status:     v.Status,
		HomeScore:  v.HomeScore,
		AwayScore:  v.AwayScore,
		Venue:      optional(v.Venue),
	}
}

func standingToDTO(ctx context.Context, v standing.Standing) standingDTO {
	ctx, span := startSpan(ctx, "httpapi.standingToDTO")
	defer span.End()

	return standingDTO{
		ID:             v.ID,
		LeagueID:       v.LeagueID,
		TeamID:         v.TeamID,
		Season:         v.Season,
		Rank:           v.Rank,
		Wins:           v.Wins,
		Losses:         v.Losses,
		Ties:           v.Ties,
		Points:         v.Points,
		GoalsFor:       v.GoalsFor,
		GoalsAgainst:   v.GoalsAgainst,
		GoalDifference: v.GoalDifference,
		GamesPlayed:    v.GamesPlayed,
	}
}

func playerStatsToDTO(ctx context.Context, v playerstats.Statistics) playerStatsDTO {
	ctx, span := startSpan(ctx, "httpapi.playerStatsToDTO")
	defer span.End()

	return playerStatsDTO{
		ID:             v.ID,
		PlayerID:       v.PlayerID,
		Season:         v.Season,
		GamesPlayed:    v.GamesPlayed,
		Goals:          v.Goals,
		Assists:        v.Assists,
		Points:         v.Points,
		Shots:          v.Shots,
		ShotsOnGoal:    v.ShotsOnGoal,
		PenaltyMinutes: v.PenaltyMinutes,
		PlusMinus:      v.PlusMinus,
	}
}

func teamStatsToDTO(ctx context.Context, v teamstats.Statistics) teamStatsDTO {
	ctx, span := startSpan(ctx, "httpapi.teamStatsToDTO")
	defer span.End()

	return teamStatsDTO{
		ID:             v.ID,
		TeamID:         v.TeamID,
		Season:         v.Season,
		GamesPlayed:    v.GamesPlayed,
		GoalsFor:       v.GoalsFor,
		GoalsAgainst:   v.GoalsAgainst,
		GoalDifference: v.GoalDifference,
		ShotsPerGame:   v.ShotsPerGame,
		GoalsPerGame:   v.GoalsPerGame,
		PowerPlayPct:   v.PowerPlayPct,
		PenaltyKillPct: v.PenaltyKillPct,
	}
}

// mapSlice always returns a non-nil slice so empty collections encode as [].
func mapSlice[T, D any](ctx context.Context, items []T, fn func(context.Context, T) D) []D {
	out := make([]D, 0, len(items))
	for _, item := range items {
		out = append(out, fn(ctx, item))
	}
	return out
}
