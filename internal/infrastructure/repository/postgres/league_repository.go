package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-stats/internal/domain/league"
	qb "github.com/riskibarqy/league-stats/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func listLeaguesQuery(filter league.ListFilter) (string, []any, error) {
	conds := make([]qb.Condition, 0, 1)
	if filter.Active != nil {
		conds = append(conds, qb.Eq("active", *filter.Active))
	}
	return qb.Select("*").From("leagues").
		Where(conds...).
		OrderBy("id").
		Limit(filter.Limit).
		Offset(filter.Skip).
		ToSQL()
}

func (r *LeagueRepository) List(ctx context.Context, filter league.ListFilter) ([]league.League, error) {
	query, args, err := listLeaguesQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID int64) (league.League, bool, error) {
	return getLeague(ctx, r.db, qb.Eq("id", leagueID))
}

func getLeague(ctx context.Context, q sqlx.QueryerContext, conds ...qb.Condition) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").Where(conds...).ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league query: %w", err)
	}

	var row leagueTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league: %w", err)
	}

	return row.toDomain(), true, nil
}

func insertLeague(ctx context.Context, q sqlx.QueryerContext, item league.League) (league.League, error) {
	query, args, err := qb.InsertModel("leagues", newLeagueInsertModel(item), "RETURNING *")
	if err != nil {
		return league.League{}, fmt.Errorf("build insert league query: %w", err)
	}

	var row leagueTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		return league.League{}, mapWriteError("insert league", err)
	}
	return row.toDomain(), nil
}

func updateLeagueQuery(item league.League) (string, []any, error) {
	return qb.Update("leagues").
		Set("name", item.Name).
		Set("description", item.Description).
		Set("source_url", item.SourceURL).
		Set("source_platform", item.SourcePlatform).
		Set("logo_url", item.LogoURL).
		Set("active", item.Active).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		Suffix("RETURNING *").
		ToSQL()
}

func updateLeague(ctx context.Context, q sqlx.QueryerContext, item league.League) (league.League, error) {
	query, args, err := updateLeagueQuery(item)
	if err != nil {
		return league.League{}, fmt.Errorf("build update league query: %w", err)
	}

	var row leagueTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		return league.League{}, mapWriteError("update league", err)
	}
	return row.toDomain(), nil
}
