package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-stats/internal/domain/playerstats"
	"github.com/riskibarqy/league-stats/internal/domain/teamstats"
	qb "github.com/riskibarqy/league-stats/internal/platform/querybuilder"
)

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

func (r *PlayerStatsRepository) ListByPlayer(ctx context.Context, playerID int64, season string) ([]playerstats.Statistics, error) {
	query, args, err := seasonalQuery("player_statistics", "player_id", playerID, season)
	if err != nil {
		return nil, fmt.Errorf("build list player statistics query: %w", err)
	}

	var rows []playerStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player statistics: %w", err)
	}

	out := make([]playerstats.Statistics, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

type TeamStatsRepository struct {
	db *sqlx.DB
}

func NewTeamStatsRepository(db *sqlx.DB) *TeamStatsRepository {
	return &TeamStatsRepository{db: db}
}

func (r *TeamStatsRepository) ListByTeam(ctx context.Context, teamID int64, season string) ([]teamstats.Statistics, error) {
	query, args, err := seasonalQuery("team_statistics", "team_id", teamID, season)
	if err != nil {
		return nil, fmt.Errorf("build list team statistics query: %w", err)
	}

	var rows []teamStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team statistics: %w", err)
	}

	out := make([]teamstats.Statistics, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func seasonalQuery(table, ownerColumn string, ownerID int64, season string) (string, []any, error) {
	conds := []qb.Condition{qb.Eq(ownerColumn, ownerID)}
	if season != "" {
		conds = append(conds, qb.Eq("season", season))
	}
	return qb.Select("*").From(table).
		Where(conds...).
		OrderBy("season DESC").
		ToSQL()
}

func upsertPlayerStatistics(ctx context.Context, q sqlx.QueryerContext, item playerstats.Statistics) (bool, error) {
	query, args, err := qb.UpsertModel("player_statistics", newPlayerStatsInsertModel(item), "player_id", "season")
	if err != nil {
		return false, fmt.Errorf("build upsert player statistics query: %w", err)
	}

	var created bool
	if err := sqlx.GetContext(ctx, q, &created, query, args...); err != nil {
		return false, mapWriteError("upsert player statistics", err)
	}
	return created, nil
}

func upsertTeamStatistics(ctx context.Context, q sqlx.QueryerContext, item teamstats.Statistics) (bool, error) {
	query, args, err := qb.UpsertModel("team_statistics", newTeamStatsInsertModel(item), "team_id", "season")
	if err != nil {
		return false, fmt.Errorf("build upsert team statistics query: %w", err)
	}

	var created bool
	if err := sqlx.GetContext(ctx, q, &created, query, args...); err != nil {
		return false, mapWriteError("upsert team statistics", err)
	}
	return created, nil
}
