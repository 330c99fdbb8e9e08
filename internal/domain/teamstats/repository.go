package teamstats

import "context"

type Repository interface {
	ListByTeam(ctx context.Context, teamID int64, season string) ([]Statistics, error)
}
