package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-stats/internal/domain/player"
	qb "github.com/riskibarqy/league-stats/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID int64) (player.Player, bool, error) {
	return getPlayer(ctx, r.db, qb.Eq("id", playerID))
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID int64) ([]player.Player, error) {
	return listPlayersByTeam(ctx, r.db, teamID)
}

func getPlayer(ctx context.Context, q sqlx.QueryerContext, conds ...qb.Condition) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").Where(conds...).ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}

	return row.toDomain(), true, nil
}

func listPlayersByTeam(ctx context.Context, q sqlx.QueryerContext, teamID int64) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players by team query: %w", err)
	}

	var rows []playerTableModel
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by team: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func insertPlayer(ctx context.Context, q sqlx.QueryerContext, item player.Player) (player.Player, error) {
	query, args, err := qb.InsertModel("players", newPlayerInsertModel(item), "RETURNING *")
	if err != nil {
		return player.Player{}, fmt.Errorf("build insert player query: %w", err)
	}

	var row playerTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		return player.Player{}, mapWriteError("insert player", err)
	}
	return row.toDomain(), nil
}
