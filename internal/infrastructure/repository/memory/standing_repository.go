package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/riskibarqy/league-stats/internal/domain/standing"
)

type StandingRepository struct {
	store *Store
}

func NewStandingRepository(store *Store) *StandingRepository {
	return &StandingRepository{store: store}
}

func (r *StandingRepository) ListByLeague(_ context.Context, leagueID int64, season string) ([]standing.Standing, error) {
	out := make([]standing.Standing, 0)
	r.store.read(func(data *tables) {
		for _, item := range data.standings {
			if item.LeagueID != leagueID {
				continue
			}
			if season != "" && item.Season != season {
				continue
			}
			out = append(out, item)
		}
	})
	slices.SortFunc(out, func(a, b standing.Standing) int {
		if c := cmp.Compare(b.Season, a.Season); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Rank, b.Rank); c != 0 {
			return c
		}
		return compareID(a.ID, b.ID)
	})

	return out, nil
}
