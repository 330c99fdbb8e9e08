package postgres

import (
	"time"

	"github.com/riskibarqy/league-stats/internal/domain/league"
)

type leagueTableModel struct {
	ID             int64     `db:"id"`
	Name           string    `db:"name"`
	Slug           string    `db:"slug"`
	Description    string    `db:"description"`
	SourceURL      string    `db:"source_url"`
	SourcePlatform string    `db:"source_platform"`
	LogoURL        string    `db:"logo_url"`
	Active         bool      `db:"active"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type leagueInsertModel struct {
	Name           string `db:"name"`
	Slug           string `db:"slug"`
	Description    string `db:"description"`
	SourceURL      string `db:"source_url"`
	SourcePlatform string `db:"source_platform"`
	LogoURL        string `db:"logo_url"`
	Active         bool   `db:"active"`
}

func (m leagueTableModel) toDomain() league.League {
	return league.League{
		ID:             m.ID,
		Name:           m.Name,
		Slug:           m.Slug,
		Description:    m.Description,
		SourceURL:      m.SourceURL,
		SourcePlatform: m.SourcePlatform,
		LogoURL:        m.LogoURL,
		Active:         m.Active,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func newLeagueInsertModel(item league.League) leagueInsertModel {
	return leagueInsertModel{
		Name:           item.Name,
		Slug:           item.Slug,
		Description:    item.Description,
		SourceURL:      item.SourceURL,
		SourcePlatform: item.SourcePlatform,
		LogoURL:        item.LogoURL,
		Active:         item.Active,
	}
}
