package team

import "context"

// Repository describes team read needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, teamID int64) (Team, bool, error)
	ListByLeague(ctx context.Context, leagueID int64) ([]Team, error)
}
