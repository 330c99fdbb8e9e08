package memory

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/riskibarqy/league-stats/internal/domain/game"
	"github.com/riskibarqy/league-stats/internal/domain/league"
	"github.com/riskibarqy/league-stats/internal/domain/player"
	"github.com/riskibarqy/league-stats/internal/domain/playerstats"
	"github.com/riskibarqy/league-stats/internal/domain/standing"
	"github.com/riskibarqy/league-stats/internal/domain/team"
	"github.com/riskibarqy/league-stats/internal/domain/teamstats"
	"github.com/riskibarqy/league-stats/internal/usecase"
)

// txView is the ReconcileTx of one WithinTx call. The store lock is held for
// its whole lifetime, so it mutates the tables directly.
type txView struct {
	data *tables
	now  func() time.Time
}

func (tx *txView) LockLeague(_ context.Context, _ string) error {
	return nil
}

func (tx *txView) GetLeagueBySlug(_ context.Context, slug string) (league.League, bool, error) {
	for _, item := range tx.data.leagues {
		if item.Slug == slug {
			return item, true, nil
		}
	}
	return league.League{}, false, nil
}

func (tx *txView) CreateLeague(ctx context.Context, item league.League) (league.League, error) {
	if _, exists, _ := tx.GetLeagueBySlug(ctx, item.Slug); exists {
		return league.League{}, fmt.Errorf("%w: league slug=%s", usecase.ErrConflict, item.Slug)
	}
	item.ID = tx.data.nextID("leagues")
	item.CreatedAt, item.UpdatedAt = tx.stamp()
	tx.data.leagues[item.ID] = item
	return item, nil
}

func (tx *txView) UpdateLeague(_ context.Context, item league.League) (league.League, error) {
	current, ok := tx.data.leagues[item.ID]
	if !ok {
		return league.League{}, fmt.Errorf("%w: league id=%d", usecase.ErrNotFound, item.ID)
	}
	item.CreatedAt = current.CreatedAt
	_, item.UpdatedAt = tx.stamp()
	tx.data.leagues[item.ID] = item
	return item, nil
}

func (tx *txView) GetTeamBySlug(_ context.Context, leagueID int64, slug string) (team.Team, bool, error) {
	for _, item := range tx.data.teams {
		if item.LeagueID == leagueID && item.Slug == slug {
			return item, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (tx *txView) CreateTeam(ctx context.Context, item team.Team) (team.Team, error) {
	if _, ok := tx.data.leagues[item.LeagueID]; !ok {
		return team.Team{}, fmt.Errorf("%w: league id=%d", usecase.ErrNotFound, item.LeagueID)
	}
	if _, exists, _ := tx.GetTeamBySlug(ctx, item.LeagueID, item.Slug); exists {
		return team.Team{}, fmt.Errorf("%w: team league=%d slug=%s", usecase.ErrConflict, item.LeagueID, item.Slug)
	}
	item.ID = tx.data.nextID("teams")
	item.CreatedAt, item.UpdatedAt = tx.stamp()
	tx.data.teams[item.ID] = item
	return item, nil
}

func (tx *txView) UpdateTeam(_ context.Context, item team.Team) (team.Team, error) {
	current, ok := tx.data.teams[item.ID]
	if !ok {
		return team.Team{}, fmt.Errorf("%w: team id=%d", usecase.ErrNotFound, item.ID)
	}
	item.CreatedAt = current.CreatedAt
	_, item.UpdatedAt = tx.stamp()
	tx.data.teams[item.ID] = item
	return item, nil
}

func (tx *txView) ListTeamsByLeague(_ context.Context, leagueID int64) ([]team.Team, error) {
	return teamsOfLeague(tx.data, leagueID), nil
}

func (tx *txView) GetStanding(_ context.Context, leagueID, teamID int64, season string) (standing.Standing, bool, error) {
	for _, item := range tx.data.standings {
		if item.LeagueID == leagueID && item.TeamID == teamID && item.Season == season {
			return item, true, nil
		}
	}
	return standing.Standing{}, false, nil
}

func (tx *txView) CreateStanding(ctx context.Context, item standing.Standing) (standing.Standing, error) {
	if _, ok := tx.data.teams[item.TeamID]; !ok {
		return standing.Standing{}, fmt.Errorf("%w: team id=%d", usecase.ErrNotFound, item.TeamID)
	}
	if _, exists, _ := tx.GetStanding(ctx, item.LeagueID, item.TeamID, item.Season); exists {
		return standing.Standing{}, fmt.Errorf("%w: standing team=%d season=%s", usecase.ErrConflict, item.TeamID, item.Season)
	}
	item.ID = tx.data.nextID("standings")
	item.CreatedAt, item.UpdatedAt = tx.stamp()
	tx.data.standings[item.ID] = item
	return item, nil
}

func (tx *txView) UpdateStanding(_ context.Context, item standing.Standing) (standing.Standing, error) {
	current, ok := tx.data.standings[item.ID]
	if !ok {
		return standing.Standing{}, fmt.Errorf("%w: standing id=%d", usecase.ErrNotFound, item.ID)
	}
	item.CreatedAt = current.CreatedAt
	_, item.UpdatedAt = tx.stamp()
	tx.data.standings[item.ID] = item
	return item, nil
}

func (tx *txView) GetGameBySourceID(_ context.Context, leagueID int64, sourceGameID string) (game.Game, bool, error) {
	for _, item := range tx.data.games {
		if item.LeagueID == leagueID && item.SourceGameID == sourceGameID {
			return item, true, nil
		}
	}
	return game.Game{}, false, nil
}

func (tx *txView) CreateGame(ctx context.Context, item game.Game) (game.Game, error) {
	home, homeOK := tx.data.teams[item.HomeTeamID]
	away, awayOK := tx.data.teams[item.AwayTeamID]
	if !homeOK || !awayOK || home.LeagueID != item.LeagueID || away.LeagueID != item.LeagueID {
		return game.Game{}, fmt.Errorf("%w: game teams must belong to league=%d", usecase.ErrConflict, item.LeagueID)
	}
	if _, exists, _ := tx.GetGameBySourceID(ctx, item.LeagueID, item.SourceGameID); exists {
		return game.Game{}, fmt.Errorf("%w: game league=%d source=%s", usecase.ErrConflict, item.LeagueID, item.SourceGameID)
	}
	item.ID = tx.data.nextID("games")
	item.CreatedAt, item.UpdatedAt = tx.stamp()
	tx.data.games[item.ID] = item
	return item, nil
}

func (tx *txView) UpdateGame(_ context.Context, item game.Game) (game.Game, error) {
	current, ok := tx.data.games[item.ID]
	if !ok {
		return game.Game{}, fmt.Errorf("%w: game id=%d", usecase.ErrNotFound, item.ID)
	}
	item.CreatedAt = current.CreatedAt
	_, item.UpdatedAt = tx.stamp()
	tx.data.games[item.ID] = item
	return item, nil
}

func (tx *txView) GetPlayerBySourceID(_ context.Context, teamID int64, sourcePlayerID string) (player.Player, bool, error) {
	for _, item := range tx.data.players {
		if item.TeamID == teamID && item.SourcePlayerID == sourcePlayerID {
			return item, true, nil
		}
	}
	return player.Player{}, false, nil
}

func (tx *txView) CreatePlayer(ctx context.Context, item player.Player) (player.Player, error) {
	if _, ok := tx.data.teams[item.TeamID]; !ok {
		return player.Player{}, fmt.Errorf("%w: team id=%d", usecase.ErrNotFound, item.TeamID)
	}
	if _, exists, _ := tx.GetPlayerBySourceID(ctx, item.TeamID, item.SourcePlayerID); exists {
		return player.Player{}, fmt.Errorf("%w: player team=%d source=%s", usecase.ErrConflict, item.TeamID, item.SourcePlayerID)
	}
	item.ID = tx.data.nextID("players")
	item.CreatedAt, item.UpdatedAt = tx.stamp()
	tx.data.players[item.ID] = item
	return item, nil
}

func (tx *txView) ListPlayersByTeam(_ context.Context, teamID int64) ([]player.Player, error) {
	return playersOfTeam(tx.data, teamID), nil
}

func (tx *txView) UpsertPlayerStatistics(_ context.Context, item playerstats.Statistics) (bool, error) {
	if _, ok := tx.data.players[item.PlayerID]; !ok {
		return false, fmt.Errorf("%w: player id=%d", usecase.ErrNotFound, item.PlayerID)
	}
	created, updated := tx.stamp()
	for id, current := range tx.data.playerStats {
		if current.PlayerID == item.PlayerID && current.Season == item.Season {
			item.ID = id
			item.CreatedAt = current.CreatedAt
			item.UpdatedAt = updated
			tx.data.playerStats[id] = item
			return false, nil
		}
	}
	item.ID = tx.data.nextID("player_statistics")
	item.CreatedAt, item.UpdatedAt = created, updated
	tx.data.playerStats[item.ID] = item
	return true, nil
}

func (tx *txView) UpsertTeamStatistics(_ context.Context, item teamstats.Statistics) (bool, error) {
	if _, ok := tx.data.teams[item.TeamID]; !ok {
		return false, fmt.Errorf("%w: team id=%d", usecase.ErrNotFound, item.TeamID)
	}
	created, updated := tx.stamp()
	for id, current := range tx.data.teamStats {
		if current.TeamID == item.TeamID && current.Season == item.Season {
			item.ID = id
			item.CreatedAt = current.CreatedAt
			item.UpdatedAt = updated
			tx.data.teamStats[id] = item
			return false, nil
		}
	}
	item.ID = tx.data.nextID("team_statistics")
	item.CreatedAt, item.UpdatedAt = created, updated
	tx.data.teamStats[item.ID] = item
	return true, nil
}

func (tx *txView) stamp() (time.Time, time.Time) {
	now := tx.now().UTC()
	return now, now
}

func teamsOfLeague(data *tables, leagueID int64) []team.Team {
	out := make([]team.Team, 0)
	for _, item := range data.teams {
		if item.LeagueID == leagueID {
			out = append(out, item)
		}
	}
	slices.SortFunc(out, func(a, b team.Team) int { return compareID(a.ID, b.ID) })
	return out
}

func playersOfTeam(data *tables, teamID int64) []player.Player {
	out := make([]player.Player, 0)
	for _, item := range data.players {
		if item.TeamID == teamID {
			out = append(out, item)
		}
	}
	slices.SortFunc(out, func(a, b player.Player) int { return compareID(a.ID, b.ID) })
	return out
}

func compareID(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
