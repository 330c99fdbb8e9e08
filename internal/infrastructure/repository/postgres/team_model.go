package postgres

import (
	"time"

	"github.com/riskibarqy/league-stats/internal/domain/team"
)

type teamTableModel struct {
	ID           int64     `db:"id"`
	LeagueID     int64     `db:"league_id"`
	Name         string    `db:"name"`
	Slug         string    `db:"slug"`
	Abbreviation string    `db:"abbreviation"`
	SourceTeamID string    `db:"source_team_id"`
	LogoURL      string    `db:"logo_url"`
	Active       bool      `db:"active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type teamInsertModel struct {
	LeagueID     int64  `db:"league_id"`
	Name         string `db:"name"`
	Slug         string `db:"slug"`
	Abbreviation string `db:"abbreviation"`
	SourceTeamID string `db:"source_team_id"`
	LogoURL      string `db:"logo_url"`
	Active       bool   `db:"active"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:           m.ID,
		LeagueID:     m.LeagueID,
		Name:         m.Name,
		Slug:         m.Slug,
		Abbreviation: m.Abbreviation,
		SourceTeamID: m.SourceTeamID,
		LogoURL:      m.LogoURL,
		Active:       m.Active,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func newTeamInsertModel(item team.Team) teamInsertModel {
	return teamInsertModel{
		LeagueID:     item.LeagueID,
		Name:         item.Name,
		Slug:         item.Slug,
		Abbreviation: item.Abbreviation,
		SourceTeamID: item.SourceTeamID,
		LogoURL:      item.LogoURL,
		Active:       item.Active,
	}
}
