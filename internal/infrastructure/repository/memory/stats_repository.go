package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/riskibarqy/league-stats/internal/domain/playerstats"
	"github.com/riskibarqy/league-stats/internal/domain/teamstats"
)

type PlayerStatsRepository struct {
	store *Store
}

func NewPlayerStatsRepository(store *Store) *PlayerStatsRepository {
	return &PlayerStatsRepository{store: store}
}

func (r *PlayerStatsRepository) ListByPlayer(_ context.Context, playerID int64, season string) ([]playerstats.Statistics, error) {
	out := make([]playerstats.Statistics, 0)
	r.store.read(func(data *tables) {
		for _, item := range data.playerStats {
			if item.PlayerID == playerID && (season == "" || item.Season == season) {
				out = append(out, item)
			}
		}
	})
	slices.SortFunc(out, func(a, b playerstats.Statistics) int { return cmp.Compare(b.Season, a.Season) })

	return out, nil
}

type TeamStatsRepository struct {
	store *Store
}

func NewTeamStatsRepository(store *Store) *TeamStatsRepository {
	return &TeamStatsRepository{store: store}
}

func (r *TeamStatsRepository) ListByTeam(_ context.Context, teamID int64, season string) ([]teamstats.Statistics, error) {
	out := make([]teamstats.Statistics, 0)
	r.store.read(func(data *tables) {
		for _, item := range data.teamStats {
			if item.TeamID == teamID && (season == "" || item.Season == season) {
				out = append(out, item)
			}
		}
	})
	slices.SortFunc(out, func(a, b teamstats.Statistics) int { return cmp.Compare(b.Season, a.Season) })

	return out, nil
}
