package player

import "context"

// Repository describes player read needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, playerID int64) (Player, bool, error)
	ListByTeam(ctx context.Context, teamID int64) ([]Player, error)
}
