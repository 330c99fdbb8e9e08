package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-stats/internal/domain/game"
	"github.com/riskibarqy/league-stats/internal/domain/league"
	"github.com/riskibarqy/league-stats/internal/domain/player"
	"github.com/riskibarqy/league-stats/internal/domain/playerstats"
	"github.com/riskibarqy/league-stats/internal/domain/standing"
	"github.com/riskibarqy/league-stats/internal/domain/team"
	"github.com/riskibarqy/league-stats/internal/domain/teamstats"
	qb "github.com/riskibarqy/league-stats/internal/platform/querybuilder"
	"github.com/riskibarqy/league-stats/internal/usecase"
)

// Store runs reconcile cycles inside database transactions.
type Store struct {
	db *sqlx.DB
}

var _ usecase.ReconcileStore = (*Store)(nil)

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx usecase.ReconcileTx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reconcile tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, &txView{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reconcile tx: %w", err)
	}
	return nil
}

type txView struct {
	tx *sqlx.Tx
}

// LockLeague takes a transaction scoped advisory lock keyed by league slug.
func (t *txView) LockLeague(ctx context.Context, slug string) error {
	if _, err := t.tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", lockKey(slug)); err != nil {
		return fmt.Errorf("advisory lock league %q: %w", slug, err)
	}
	return nil
}

func (t *txView) GetLeagueBySlug(ctx context.Context, slug string) (league.League, bool, error) {
	return getLeague(ctx, t.tx, qb.Eq("slug", slug))
}

func (t *txView) CreateLeague(ctx context.Context, item league.League) (league.League, error) {
	return insertLeague(ctx, t.tx, item)
}

func (t *txView) UpdateLeague(ctx context.Context, item league.League) (league.League, error) {
	return updateLeague(ctx, t.tx, item)
}

func (t *txView) GetTeamBySlug(ctx context.Context, leagueID int64, slug string) (team.Team, bool, error) {
	return getTeam(ctx, t.tx, qb.Eq("league_id", leagueID), qb.Eq("slug", slug))
}

func (t *txView) CreateTeam(ctx context.Context, item team.Team) (team.Team, error) {
	return insertTeam(ctx, t.tx, item)
}

func (t *txView) UpdateTeam(ctx context.Context, item team.Team) (team.Team, error) {
	return updateTeam(ctx, t.tx, item)
}

func (t *txView) ListTeamsByLeague(ctx context.Context, leagueID int64) ([]team.Team, error) {
	return listTeamsByLeague(ctx, t.tx, leagueID)
}

func (t *txView) GetStanding(ctx context.Context, leagueID, teamID int64, season string) (standing.Standing, bool, error) {
	return getStanding(ctx, t.tx, leagueID, teamID, season)
}

func (t *txView) CreateStanding(ctx context.Context, item standing.Standing) (standing.Standing, error) {
	return insertStanding(ctx, t.tx, item)
}

func (t *txView) UpdateStanding(ctx context.Context, item standing.Standing) (standing.Standing, error) {
	return updateStanding(ctx, t.tx, item)
}

func (t *txView) GetGameBySourceID(ctx context.Context, leagueID int64, sourceGameID string) (game.Game, bool, error) {
	return getGame(ctx, t.tx, qb.Eq("league_id", leagueID), qb.Eq("source_game_id", sourceGameID))
}

func (t *txView) CreateGame(ctx context.Context, item game.Game) (game.Game, error) {
	return insertGame(ctx, t.tx, item)
}

func (t *txView) UpdateGame(ctx context.Context, item game.Game) (game.Game, error) {
	return updateGame(ctx, t.tx, item)
}

func (t *txView) GetPlayerBySourceID(ctx context.Context, teamID int64, sourcePlayerID string) (player.Player, bool, error) {
	return getPlayer(ctx, t.tx, qb.Eq("team_id", teamID), qb.Eq("source_player_id", sourcePlayerID))
}

func (t *txView) CreatePlayer(ctx context.Context, item player.Player) (player.Player, error) {
	return insertPlayer(ctx, t.tx, item)
}

func (t *txView) ListPlayersByTeam(ctx context.Context, teamID int64) ([]player.Player, error) {
	return listPlayersByTeam(ctx, t.tx, teamID)
}

func (t *txView) UpsertPlayerStatistics(ctx context.Context, item playerstats.Statistics) (bool, error) {
	return upsertPlayerStatistics(ctx, t.tx, item)
}

func (t *txView) UpsertTeamStatistics(ctx context.Context, item teamstats.Statistics) (bool, error) {
	return upsertTeamStatistics(ctx, t.tx, item)
}
