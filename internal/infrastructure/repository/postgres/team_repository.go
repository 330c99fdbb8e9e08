package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-stats/internal/domain/team"
	qb "github.com/riskibarqy/league-stats/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	return getTeam(ctx, r.db, qb.Eq("id", teamID))
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID int64) ([]team.Team, error) {
	return listTeamsByLeague(ctx, r.db, leagueID)
}

func getTeam(ctx context.Context, q sqlx.QueryerContext, conds ...qb.Condition) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").Where(conds...).ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}

	return row.toDomain(), true, nil
}

func listTeamsByLeague(ctx context.Context, q sqlx.QueryerContext, leagueID int64) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams by league query: %w", err)
	}

	var rows []teamTableModel
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by league: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func insertTeam(ctx context.Context, q sqlx.QueryerContext, item team.Team) (team.Team, error) {
	query, args, err := qb.InsertModel("teams", newTeamInsertModel(item), "RETURNING *")
	if err != nil {
		return team.Team{}, fmt.Errorf("build insert team query: %w", err)
	}

	var row teamTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		return team.Team{}, mapWriteError("insert team", err)
	}
	return row.toDomain(), nil
}

func updateTeam(ctx context.Context, q sqlx.QueryerContext, item team.Team) (team.Team, error) {
	query, args, err := qb.Update("teams").
		Set("name", item.Name).
		Set("abbreviation", item.Abbreviation).
		Set("source_team_id", item.SourceTeamID).
		Set("logo_url", item.LogoURL).
		Set("active", item.Active).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		Suffix("RETURNING *").
		ToSQL()
	if err != nil {
		return team.Team{}, fmt.Errorf("build update team query: %w", err)
	}

	var row teamTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		return team.Team{}, mapWriteError("update team", err)
	}
	return row.toDomain(), nil
}
