package memory

import (
	"context"

	"github.com/riskibarqy/league-stats/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{store: store}
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	var (
		item team.Team
		ok   bool
	)
	r.store.read(func(data *tables) {
		item, ok = data.teams[teamID]
	})
	if !ok {
		return team.Team{}, false, nil
	}

	return item, true, nil
}

func (r *TeamRepository) ListByLeague(_ context.Context, leagueID int64) ([]team.Team, error) {
	var out []team.Team
	r.store.read(func(data *tables) {
		out = teamsOfLeague(data, leagueID)
	})

	return out, nil
}
