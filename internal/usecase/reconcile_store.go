package usecase

import (
	"context"

	"github.com/riskibarqy/league-stats/internal/domain/game"
	"github.com/riskibarqy/league-stats/internal/domain/league"
	"github.com/riskibarqy/league-stats/internal/domain/player"
	"github.com/riskibarqy/league-stats/internal/domain/playerstats"
	"github.com/riskibarqy/league-stats/internal/domain/standing"
	"github.com/riskibarqy/league-stats/internal/domain/team"
	"github.com/riskibarqy/league-stats/internal/domain/teamstats"
)

// ReconcileStore runs fn inside one transaction. The transaction commits only
// when fn returns nil and rolls back on error or panic; a panic is re-raised
// after rollback.
type ReconcileStore interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx ReconcileTx) error) error
}

// ReconcileTx is the write surface of one reconcile cycle. Rows written
// through it are visible to later calls on the same tx. Update methods
// persist every mutable column of the given entity.
type ReconcileTx interface {
	// LockLeague serializes cycles for one league slug until the tx ends.
	LockLeague(ctx context.Context, slug string) error

	GetLeagueBySlug(ctx context.Context, slug string) (league.League, bool, error)
	CreateLeague(ctx context.Context, item league.League) (league.League, error)
	UpdateLeague(ctx context.Context, item league.League) (league.League, error)

	GetTeamBySlug(ctx context.Context, leagueID int64, slug string) (team.Team, bool, error)
	CreateTeam(ctx context.Context, item team.Team) (team.Team, error)
	UpdateTeam(ctx context.Context, item team.Team) (team.Team, error)
	// ListTeamsByLeague returns teams in id order.
	ListTeamsByLeague(ctx context.Context, leagueID int64) ([]team.Team, error)

	GetStanding(ctx context.Context, leagueID, teamID int64, season string) (standing.Standing, bool, error)
	CreateStanding(ctx context.Context, item standing.Standing) (standing.Standing, error)
	UpdateStanding(ctx context.Context, item standing.Standing) (standing.Standing, error)

	GetGameBySourceID(ctx context.Context, leagueID int64, sourceGameID string) (game.Game, bool, error)
	CreateGame(ctx context.Context, item game.Game) (game.Game, error)
	UpdateGame(ctx context.Context, item game.Game) (game.Game, error)

	GetPlayerBySourceID(ctx context.Context, teamID int64, sourcePlayerID string) (player.Player, bool, error)
	CreatePlayer(ctx context.Context, item player.Player) (player.Player, error)
	// ListPlayersByTeam returns players in id order.
	ListPlayersByTeam(ctx context.Context, teamID int64) ([]player.Player, error)

	// Upserts overwrite every statistic column and report whether a row was created.
	UpsertPlayerStatistics(ctx context.Context, item playerstats.Statistics) (bool, error)
	UpsertTeamStatistics(ctx context.Context, item teamstats.Statistics) (bool, error)
}
