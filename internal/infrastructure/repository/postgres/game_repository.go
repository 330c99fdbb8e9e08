package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-stats/internal/domain/game"
	qb "github.com/riskibarqy/league-stats/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func listGamesByLeagueQuery(leagueID int64, filter game.ListFilter) (string, []any, error) {
	conds := []qb.Condition{qb.Eq("league_id", leagueID)}
	if !filter.DateFrom.IsZero() {
		conds = append(conds, qb.Gte("game_date", filter.DateFrom))
	}
	if !filter.DateTo.IsZero() {
		conds = append(conds, qb.Lte("game_date", filter.DateTo))
	}
	return qb.Select("*").From("games").
		Where(conds...).
		OrderBy("game_date DESC", "id DESC").
		ToSQL()
}

func (r *GameRepository) ListByLeague(ctx context.Context, leagueID int64, filter game.ListFilter) ([]game.Game, error) {
	query, args, err := listGamesByLeagueQuery(leagueID, filter)
	if err != nil {
		return nil, fmt.Errorf("build list games by league query: %w", err)
	}
	return r.selectGames(ctx, query, args)
}

func (r *GameRepository) ListByTeam(ctx context.Context, teamID int64) ([]game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(qb.AnyOf(qb.Eq("home_team_id", teamID), qb.Eq("away_team_id", teamID))).
		OrderBy("game_date DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list games by team query: %w", err)
	}
	return r.selectGames(ctx, query, args)
}

func (r *GameRepository) selectGames(ctx context.Context, query string, args []any) ([]game.Game, error) {
	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func getGame(ctx context.Context, q sqlx.QueryerContext, conds ...qb.Condition) (game.Game, bool, error) {
	query, args, err := qb.Select("*").From("games").Where(conds...).ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build get game query: %w", err)
	}

	var row gameTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game: %w", err)
	}

	return row.toDomain(), true, nil
}

func insertGame(ctx context.Context, q sqlx.QueryerContext, item game.Game) (game.Game, error) {
	query, args, err := qb.InsertModel("games", newGameInsertModel(item), "RETURNING *")
	if err != nil {
		return game.Game{}, fmt.Errorf("build insert game query: %w", err)
	}

	var row gameTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		return game.Game{}, mapWriteError("insert game", err)
	}
	return row.toDomain(), nil
}

func updateGame(ctx context.Context, q sqlx.QueryerContext, item game.Game) (game.Game, error) {
	query, args, err := qb.Update("games").
		Set("status", item.Status).
		Set("home_score", item.HomeScore).
		Set("away_score", item.AwayScore).
		Set("game_time", item.GameTime).
		Set("venue", item.Venue).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		Suffix("RETURNING *").
		ToSQL()
	if err != nil {
		return game.Game{}, fmt.Errorf("build update game query: %w", err)
	}

	var row gameTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		return game.Game{}, mapWriteError("update game", err)
	}
	return row.toDomain(), nil
}
