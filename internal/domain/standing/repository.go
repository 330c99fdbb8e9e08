package standing

import "context"

// Repository lists standings ordered by rank. An empty season means every season.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID int64, season string) ([]Standing, error)
}
