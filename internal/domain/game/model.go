package game

import (
	"fmt"
	"strings"
	"time"
)

const (
	StatusScheduled = "scheduled"
	StatusLive      = "live"
	StatusFinal     = "final"
	StatusPostponed = "postponed"
	StatusCancelled = "cancelled"
)

// Game is one scheduled or played match, keyed by the source's game id.
type Game struct {
	ID           int64
	LeagueID     int64
	HomeTeamID   int64
	AwayTeamID   int64
	SourceGameID string
	GameDate     time.Time
	GameTime     string
	Status       string
	HomeScore    *int
	AwayScore    *int
	Venue        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeStatus lower-cases a source status. Empty means scheduled.
func NormalizeStatus(value string) string {
	status := strings.ToLower(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func (g Game) Involves(teamID int64) bool {
	return g.HomeTeamID == teamID || g.AwayTeamID == teamID
}

func (g Game) Validate() error {
	if g.LeagueID <= 0 {
		return fmt.Errorf("game league id is required")
	}
	if g.HomeTeamID <= 0 || g.AwayTeamID <= 0 {
		return fmt.Errorf("game home and away teams are required")
	}
	if g.HomeTeamID == g.AwayTeamID {
		return fmt.Errorf("game home and away teams must differ")
	}
	if g.GameDate.IsZero() {
		return fmt.Errorf("game date is required")
	}

	return nil
}
