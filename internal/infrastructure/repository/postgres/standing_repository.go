package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-stats/internal/domain/standing"
	qb "github.com/riskibarqy/league-stats/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func listStandingsQuery(leagueID int64, season string) (string, []any, error) {
	conds := []qb.Condition{qb.Eq("league_id", leagueID)}
	if season != "" {
		conds = append(conds, qb.Eq("season", season))
	}
	return qb.Select("*").From("standings").
		Where(conds...).
		OrderBy("season DESC", "rank", "id").
		ToSQL()
}

func (r *StandingRepository) ListByLeague(ctx context.Context, leagueID int64, season string) ([]standing.Standing, error) {
	query, args, err := listStandingsQuery(leagueID, season)
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select standings: %w", err)
	}

	out := make([]standing.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func getStanding(ctx context.Context, q sqlx.QueryerContext, leagueID, teamID int64, season string) (standing.Standing, bool, error) {
	query, args, err := qb.Select("*").From("standings").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("team_id", teamID),
			qb.Eq("season", season),
		).
		ToSQL()
	if err != nil {
		return standing.Standing{}, false, fmt.Errorf("build get standing query: %w", err)
	}

	var row standingTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return standing.Standing{}, false, nil
		}
		return standing.Standing{}, false, fmt.Errorf("get standing: %w", err)
	}
	return row.toDomain(), true, nil
}

func insertStanding(ctx context.Context, q sqlx.QueryerContext, item standing.Standing) (standing.Standing, error) {
	query, args, err := qb.InsertModel("standings", newStandingInsertModel(item), "RETURNING *")
	if err != nil {
		return standing.Standing{}, fmt.Errorf("build insert standing query: %w", err)
	}

	var row standingTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		return standing.Standing{}, mapWriteError("insert standing", err)
	}
	return row.toDomain(), nil
}

func updateStanding(ctx context.Context, q sqlx.QueryerContext, item standing.Standing) (standing.Standing, error) {
	query, args, err := qb.Update("standings").
		Set("rank", item.Rank).
		Set("wins", item.Wins).
		Set("losses", item.Losses).
		Set("ties", item.Ties).
		Set("points", item.Points).
		Set("goals_for", item.GoalsFor).
		Set("goals_against", item.GoalsAgainst).
		Set("goal_difference", item.GoalDifference).
		Set("win_percentage", item.WinPercentage).
		Set("games_played", item.GamesPlayed).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		Suffix("RETURNING *").
		ToSQL()
	if err != nil {
		return standing.Standing{}, fmt.Errorf("build update standing query: %w", err)
	}

	var row standingTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		return standing.Standing{}, mapWriteError("update standing", err)
	}
	return row.toDomain(), nil
}
