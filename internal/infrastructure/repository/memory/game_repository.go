package memory

import (
	"context"
	"slices"

	"github.com/riskibarqy/league-stats/internal/domain/game"
)

type GameRepository struct {
	store *Store
}

func NewGameRepository(store *Store) *GameRepository {
	return &GameRepository{store: store}
}

func (r *GameRepository) ListByLeague(_ context.Context, leagueID int64, filter game.ListFilter) ([]game.Game, error) {
	out := make([]game.Game, 0)
	r.store.read(func(data *tables) {
		for _, item := range data.games {
			if item.LeagueID == leagueID && filter.Matches(item) {
				out = append(out, item)
			}
		}
	})
	sortNewestFirst(out)

	return out, nil
}

func (r *GameRepository) ListByTeam(_ context.Context, teamID int64) ([]game.Game, error) {
	out := make([]game.Game, 0)
	r.store.read(func(data *tables) {
		for _, item := range data.games {
			if item.Involves(teamID) {
				out = append(out, item)
			}
		}
	})
	sortNewestFirst(out)

	return out, nil
}

func sortNewestFirst(items []game.Game) {
	slices.SortFunc(items, func(a, b game.Game) int {
		if c := b.GameDate.Compare(a.GameDate); c != 0 {
			return c
		}
		return compareID(b.ID, a.ID)
	})
}
