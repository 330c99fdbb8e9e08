package game

import (
	"context"
	"time"
)

// ListFilter bounds game_date inclusively. Zero values are open bounds.
type ListFilter struct {
	DateFrom time.Time
	DateTo   time.Time
}

func (f ListFilter) Matches(g Game) bool {
	if !f.DateFrom.IsZero() && g.GameDate.Before(f.DateFrom) {
		return false
	}
	if !f.DateTo.IsZero() && g.GameDate.After(f.DateTo) {
		return false
	}
	return true
}

// Repository lists games newest first.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID int64, filter ListFilter) ([]Game, error)
	ListByTeam(ctx context.Context, teamID int64) ([]Game, error)
}
