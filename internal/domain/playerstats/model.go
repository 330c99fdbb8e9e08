package playerstats

import "time"

// Statistics are a player's season totals as published by the source.
type Statistics struct {
	ID             int64
	PlayerID       int64
	Season         string
	GamesPlayed    int
	Goals          int
	Assists        int
	Points         int
	Shots          int
	ShotsOnGoal    int
	PenaltyMinutes int
	PlusMinus      int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
