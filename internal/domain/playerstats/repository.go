package playerstats

import "context"

type Repository interface {
	ListByPlayer(ctx context.Context, playerID int64, season string) ([]Statistics, error)
}
