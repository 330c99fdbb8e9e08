package postgres

import (
	"time"

	"github.com/riskibarqy/league-stats/internal/domain/standing"
)

type standingTableModel struct {
	ID             int64     `db:"id"`
	LeagueID       int64     `db:"league_id"`
	TeamID         int64     `db:"team_id"`
	Season         string    `db:"season"`
	Rank           int       `db:"rank"`
	Wins           int       `db:"wins"`
	Losses         int       `db:"losses"`
	Ties           int       `db:"ties"`
	Points         int       `db:"points"`
	GoalsFor       int       `db:"goals_for"`
	GoalsAgainst   int       `db:"goals_against"`
	GoalDifference int       `db:"goal_difference"`
	WinPercentage  float64   `db:"win_percentage"`
	GamesPlayed    int       `db:"games_played"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type standingInsertModel struct {
	LeagueID       int64   `db:"league_id"`
	TeamID         int64   `db:"team_id"`
	Season         string  `db:"season"`
	Rank           int     `db:"rank"`
	Wins           int     `db:"wins"`
	Losses         int     `db:"losses"`
	Ties           int     `db:"ties"`
	Points         int     `db:"points"`
	GoalsFor       int     `db:"goals_for"`
	GoalsAgainst   int     `db:"goals_against"`
	GoalDifference int     `db:"goal_difference"`
	WinPercentage  float64 `db:"win_percentage"`
	GamesPlayed    int     `db:"games_played"`
}

func (m standingTableModel) toDomain() standing.Standing {
	return standing.Standing{
		ID:             m.ID,
		LeagueID:       m.LeagueID,
		TeamID:         m.TeamID,
		Season:         m.Season,
		Rank:           m.Rank,
		Wins:           m.Wins,
		Losses:         m.Losses,
		Ties:           m.Ties,
		Points:         m.Points,
		GoalsFor:       m.GoalsFor,
		GoalsAgainst:   m.GoalsAgainst,
		GoalDifference: m.GoalDifference,
		WinPercentage:  m.WinPercentage,
		GamesPlayed:    m.GamesPlayed,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func newStandingInsertModel(item standing.Standing) standingInsertModel {
	return standingInsertModel{
		LeagueID:       item.LeagueID,
		TeamID:         item.TeamID,
		Season:         item.Season,
		Rank:           item.Rank,
		Wins:           item.Wins,
		Losses:         item.Losses,
		Ties:           item.Ties,
		Points:         item.Points,
		GoalsFor:       item.GoalsFor,
		GoalsAgainst:   item.GoalsAgainst,
		GoalDifference: item.GoalDifference,
		WinPercentage:  item.WinPercentage,
		GamesPlayed:    item.GamesPlayed,
	}
}
