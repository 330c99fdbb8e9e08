package postgres

import (
	"time"

	"github.com/riskibarqy/league-stats/internal/domain/game"
)

type gameTableModel struct {
	ID           int64     `db:"id"`
	LeagueID     int64     `db:"league_id"`
	HomeTeamID   int64     `db:"home_team_id"`
	AwayTeamID   int64     `db:"away_team_id"`
	SourceGameID string    `db:"source_game_id"`
	GameDate     time.Time `db:"game_date"`
	GameTime     string    `db:"game_time"`
	Status       string    `db:"status"`
	HomeScore    *int      `db:"home_score"`
	AwayScore    *int      `db:"away_score"`
	Venue        string    `db:"venue"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type gameInsertModel struct {
	LeagueID     int64     `db:"league_id"`
	HomeTeamID   int64     `db:"home_team_id"`
	AwayTeamID   int64     `db:"away_team_id"`
	SourceGameID string    `db:"source_game_id"`
	GameDate     time.Time `db:"game_date"`
	GameTime     string    `db:"game_time"`
	Status       string    `db:"status"`
	HomeScore    *int      `db:"home_score"`
	AwayScore    *int      `db:"away_score"`
	Venue        string    `db:"venue"`
}

func (m gameTableModel) toDomain() game.Game {
	return game.Game{
		ID:           m.ID,
		LeagueID:     m.LeagueID,
		HomeTeamID:   m.HomeTeamID,
		AwayTeamID:   m.AwayTeamID,
		SourceGameID: m.SourceGameID,
		GameDate:     m.GameDate.UTC(),
		GameTime:     m.GameTime,
		Status:       m.Status,
		HomeScore:    m.HomeScore,
		AwayScore:    m.AwayScore,
		Venue:        m.Venue,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func newGameInsertModel(item game.Game) gameInsertModel {
	return gameInsertModel{
		LeagueID:     item.LeagueID,
		HomeTeamID:   item.HomeTeamID,
		AwayTeamID:   item.AwayTeamID,
		SourceGameID: item.SourceGameID,
		GameDate:     item.GameDate.UTC(),
		GameTime:     item.GameTime,
		Status:       item.Status,
		HomeScore:    item.HomeScore,
		AwayScore:    item.AwayScore,
		Venue:        item.Venue,
	}
}
