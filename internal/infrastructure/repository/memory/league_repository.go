package memory

import (
	"context"
	"slices"

	"github.com/riskibarqy/league-stats/internal/domain/league"
)

type LeagueRepository struct {
	store *Store
}

func NewLeagueRepository(store *Store) *LeagueRepository {
	return &LeagueRepository{store: store}
}

func (r *LeagueRepository) List(_ context.Context, filter league.ListFilter) ([]league.League, error) {
	out := make([]league.League, 0)
	r.store.read(func(data *tables) {
		for _, item := range data.leagues {
			if filter.Active != nil && item.Active != *filter.Active {
				continue
			}
			out = append(out, item)
		}
	})
	slices.SortFunc(out, func(a, b league.League) int { return compareID(a.ID, b.ID) })

	return page(out, filter.Skip, filter.Limit), nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID int64) (league.League, bool, error) {
	var (
		item league.League
		ok   bool
	)
	r.store.read(func(data *tables) {
		item, ok = data.leagues[leagueID]
	})
	if !ok {
		return league.League{}, false, nil
	}

	return item, true, nil
}

// page applies skip and limit. A non-positive limit means no limit.
func page[T any](items []T, skip, limit int) []T {
	if skip > 0 {
		if skip >= len(items) {
			return items[:0]
		}
		items = items[skip:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
