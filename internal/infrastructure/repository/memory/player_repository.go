package memory

import (
	"context"

	"github.com/riskibarqy/league-stats/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

func NewPlayerRepository(store *Store) *PlayerRepository {
	return &PlayerRepository{store: store}
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID int64) (player.Player, bool, error) {
	var (
		item player.Player
		ok   bool
	)
	r.store.read(func(data *tables) {
		item, ok = data.players[playerID]
	})
	if !ok {
		return player.Player{}, false, nil
	}

	return item, true, nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID int64) ([]player.Player, error) {
	var out []player.Player
	r.store.read(func(data *tables) {
		out = playersOfTeam(data, teamID)
	})

	return out, nil
}
