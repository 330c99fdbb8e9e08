package league

import "context"

type ListFilter struct {
	Active *bool
	Skip   int
	Limit  int
}

// Repository describes league read needs from use cases.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]League, error)
	GetByID(ctx context.Context, leagueID int64) (League, bool, error)
}
