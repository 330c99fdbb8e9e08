package teamstats

import "time"

// Statistics are a team's season totals and rates.
type Statistics struct {
	ID             int64
	TeamID         int64
	Season         string
	GamesPlayed    int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	ShotsPerGame   float64
	GoalsPerGame   float64
	PowerPlayPct   float64
	PenaltyKillPct float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
