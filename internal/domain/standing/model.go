package standing

import "time"

// Standing is one team's table row for a season.
type Standing struct {
	ID             int64
	LeagueID       int64
	TeamID         int64
	Season         string
	Rank           int
	Wins           int
	Losses         int
	Ties           int
	Points         int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	WinPercentage  float64
	GamesPlayed    int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
