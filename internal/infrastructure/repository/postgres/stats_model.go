package postgres

import (
	"time"

	"github.com/riskibarqy/league-stats/internal/domain/playerstats"
	"github.com/riskibarqy/league-stats/internal/domain/teamstats"
)

type playerStatsTableModel struct {
	ID             int64     `db:"id"`
	PlayerID       int64     `db:"player_id"`
	Season         string    `db:"season"`
	GamesPlayed    int       `db:"games_played"`
	Goals          int       `db:"goals"`
	Assists        int       `db:"assists"`
	Points         int       `db:"points"`
	Shots          int       `db:"shots"`
	ShotsOnGoal    int       `db:"shots_on_goal"`
	PenaltyMinutes int       `db:"penalty_minutes"`
	PlusMinus      int       `db:"plus_minus"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type playerStatsInsertModel struct {
	PlayerID       int64  `db:"player_id"`
	Season         string `db:"season"`
	GamesPlayed    int    `db:"games_played"`
	Goals          int    `db:"goals"`
	Assists        int    `db:"assists"`
	Points         int    `db:"points"`
	Shots          int    `db:"shots"`
	ShotsOnGoal    int    `db:"shots_on_goal"`
	PenaltyMinutes int    `db:"penalty_minutes"`
	PlusMinus      int    `db:"plus_minus"`
}

func (m playerStatsTableModel) toDomain() playerstats.Statistics {
	return playerstats.Statistics{
		ID:             m.ID,
		PlayerID:       m.PlayerID,
		Season:         m.Season,
		GamesPlayed:    m.GamesPlayed,
		Goals:          m.Goals,
		Assists:        m.Assists,
		Points:         m.Points,
		Shots:          m.Shots,
		ShotsOnGoal:    m.ShotsOnGoal,
		PenaltyMinutes: m.PenaltyMinutes,
		PlusMinus:      m.PlusMinus,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func newPlayerStatsInsertModel(item playerstats.Statistics) playerStatsInsertModel {
	return playerStatsInsertModel{
		PlayerID:       item.PlayerID,
		Season:         item.Season,
		GamesPlayed:    item.GamesPlayed,
		Goals:          item.Goals,
		Assists:        item.Assists,
		Points:         item.Points,
		Shots:          item.Shots,
		ShotsOnGoal:    item.ShotsOnGoal,
		PenaltyMinutes: item.PenaltyMinutes,
		PlusMinus:      item.PlusMinus,
	}
}

type teamStatsTableModel struct {
	ID             int64     `db:"id"`
	TeamID         int64     `db:"team_id"`
	Season         string    `db:"season"`
	GamesPlayed    int       `db:"games_played"`
	GoalsFor       int       `db:"goals_for"`
	GoalsAgainst   int       `db:"goals_against"`
	GoalDifference int       `db:"goal_difference"`
	ShotsPerGame   float64   `db:"shots_per_game"`
	GoalsPerGame   float64   `db:"goals_per_game"`
	PowerPlayPct   float64   `db:"power_play_percentage"`
	PenaltyKillPct float64   `db:"penalty_kill_percentage"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type teamStatsInsertModel struct {
	TeamID         int64   `db:"team_id"`
	Season         string  `db:"season"`
	GamesPlayed    int     `db:"games_played"`
	GoalsFor       int     `db:"goals_for"`
	GoalsAgainst   int     `db:"goals_against"`
	GoalDifference int     `db:"goal_difference"`
	ShotsPerGame   float64 `db:"shots_per_game"`
	GoalsPerGame   float64 `db:"goals_per_game"`
	PowerPlayPct   float64 `db:"power_play_percentage"`
	PenaltyKillPct float64 `db:"penalty_kill_percentage"`
}

func (m teamStatsTableModel) toDomain() teamstats.Statistics {
	return teamstats.Statistics{
		ID:             m.ID,
		TeamID:         m.TeamID,
		Season:         m.Season,
		GamesPlayed:    m.GamesPlayed,
		GoalsFor:       m.GoalsFor,
		GoalsAgainst:   m.GoalsAgainst,
		GoalDifference: m.GoalDifference,
		ShotsPerGame:   m.ShotsPerGame,
		GoalsPerGame:   m.GoalsPerGame,
		PowerPlayPct:   m.PowerPlayPct,
		PenaltyKillPct: m.PenaltyKillPct,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func newTeamStatsInsertModel(item teamstats.Statistics) teamStatsInsertModel {
	return teamStatsInsertModel{
		TeamID:         item.TeamID,
		Season:         item.Season,
		GamesPlayed:    item.GamesPlayed,
		GoalsFor:       item.GoalsFor,
		GoalsAgainst:   item.GoalsAgainst,
		GoalDifference: item.GoalDifference,
		ShotsPerGame:   item.ShotsPerGame,
		GoalsPerGame:   item.GoalsPerGame,
		PowerPlayPct:   item.PowerPlayPct,
		PenaltyKillPct: item.PenaltyKillPct,
	}
}
