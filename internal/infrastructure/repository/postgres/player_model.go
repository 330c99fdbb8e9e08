package postgres

import (
	"time"

	"github.com/riskibarqy/league-stats/internal/domain/player"
)

type playerTableModel struct {
	ID             int64      `db:"id"`
	TeamID         int64      `db:"team_id"`
	FirstName      string     `db:"first_name"`
	LastName       string     `db:"last_name"`
	FullName       string     `db:"full_name"`
	JerseyNumber   *int       `db:"jersey_number"`
	Position       string     `db:"position"`
	PhotoURL       string     `db:"photo_url"`
	SourcePlayerID string     `db:"source_player_id"`
	DateOfBirth    *time.Time `db:"date_of_birth"`
	Height         string     `db:"height"`
	Weight         *int       `db:"weight"`
	Active         bool       `db:"active"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

type playerInsertModel struct {
	TeamID         int64      `db:"team_id"`
	FirstName      string     `db:"first_name"`
	LastName       string     `db:"last_name"`
	FullName       string     `db:"full_name"`
	JerseyNumber   *int       `db:"jersey_number"`
	Position       string     `db:"position"`
	PhotoURL       string     `db:"photo_url"`
	SourcePlayerID string     `db:"source_player_id"`
	DateOfBirth    *time.Time `db:"date_of_birth"`
	Height         string     `db:"height"`
	Weight         *int       `db:"weight"`
	Active         bool       `db:"active"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:             m.ID,
		TeamID:         m.TeamID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		FullName:       m.FullName,
		JerseyNumber:   m.JerseyNumber,
		Position:       m.Position,
		PhotoURL:       m.PhotoURL,
		SourcePlayerID: m.SourcePlayerID,
		DateOfBirth:    m.DateOfBirth,
		Height:         m.Height,
		Weight:         m.Weight,
		Active:         m.Active,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func newPlayerInsertModel(item player.Player) playerInsertModel {
	return playerInsertModel{
		TeamID:         item.TeamID,
		FirstName:      item.FirstName,
		LastName:       item.LastName,
		FullName:       item.FullName,
		JerseyNumber:   item.JerseyNumber,
		Position:       item.Position,
		PhotoURL:       item.PhotoURL,
		SourcePlayerID: item.SourcePlayerID,
		DateOfBirth:    nullableDate(item.DateOfBirth),
		Height:         item.Height,
		Weight:         item.Weight,
		Active:         item.Active,
	}
}
