package memory

import (
	"time"

	"github.com/riskibarqy/league-stats/internal/domain/game"
	"github.com/riskibarqy/league-stats/internal/domain/league"
	"github.com/riskibarqy/league-stats/internal/domain/player"
	"github.com/riskibarqy/league-stats/internal/domain/playerstats"
	"github.com/riskibarqy/league-stats/internal/domain/standing"
	"github.com/riskibarqy/league-stats/internal/domain/team"
	"github.com/riskibarqy/league-stats/internal/domain/teamstats"
)

// Seed helpers insert rows outside a transaction and assign ids the same way
// WithinTx does. They skip uniqueness checks.

func (s *Store) SeedLeague(item league.League) league.League {
	s.write(func(data *tables) {
		item.ID = data.nextID("leagues")
		item.CreatedAt, item.UpdatedAt = s.stamp()
		data.leagues[item.ID] = item
	})
	return item
}

func (s *Store) SeedTeam(item team.Team) team.Team {
	s.write(func(data *tables) {
		item.ID = data.nextID("teams")
		item.CreatedAt, item.UpdatedAt = s.stamp()
		data.teams[item.ID] = item
	})
	return item
}

func (s *Store) SeedPlayer(item player.Player) player.Player {
	s.write(func(data *tables) {
		item.ID = data.nextID("players")
		item.CreatedAt, item.UpdatedAt = s.stamp()
		data.players[item.ID] = item
	})
	return item
}

func (s *Store) SeedGame(item game.Game) game.Game {
	s.write(func(data *tables) {
		item.ID = data.nextID("games")
		item.CreatedAt, item.UpdatedAt = s.stamp()
		data.games[item.ID] = item
	})
	return item
}

func (s *Store) SeedStanding(item standing.Standing) standing.Standing {
	s.write(func(data *tables) {
		item.ID = data.nextID("standings")
		item.CreatedAt, item.UpdatedAt = s.stamp()
		data.standings[item.ID] = item
	})
	return item
}

func (s *Store) SeedPlayerStatistics(item playerstats.Statistics) playerstats.Statistics {
	s.write(func(data *tables) {
		item.ID = data.nextID("player_statistics")
		item.CreatedAt, item.UpdatedAt = s.stamp()
		data.playerStats[item.ID] = item
	})
	return item
}

func (s *Store) SeedTeamStatistics(item teamstats.Statistics) teamstats.Statistics {
	s.write(func(data *tables) {
		item.ID = data.nextID("team_statistics")
		item.CreatedAt, item.UpdatedAt = s.stamp()
		data.teamStats[item.ID] = item
	})
	return item
}

// SeedDemo loads a small league used when the API runs without a database.
func SeedDemo(s *Store) {
	demo := s.SeedLeague(league.League{
		Name:           "Demo Hockey League",
		Slug:           "demo-hockey-league",
		Description:    "Sample data for local development",
		SourceURL:      "https://example.com/demo-hockey-league",
		SourcePlatform: "demo",
		Active:         true,
	})

	home := s.SeedTeam(team.Team{LeagueID: demo.ID, Name: "Harbor Wolves", Slug: "harbor-wolves", Abbreviation: "HAR", SourceTeamID: "101", Active: true})
	away := s.SeedTeam(team.Team{LeagueID: demo.ID, Name: "Ridge Falcons", Slug: "ridge-falcons", Abbreviation: "RID", SourceTeamID: "102", Active: true})

	s.SeedStanding(standing.Standing{LeagueID: demo.ID, TeamID: home.ID, Season: "2024", Rank: 1, Wins: 12, Losses: 4, Ties: 2, Points: 26, GoalsFor: 61, GoalsAgainst: 40, GoalDifference: 21, GamesPlayed: 18})
	s.SeedStanding(standing.Standing{LeagueID: demo.ID, TeamID: away.ID, Season: "2024", Rank: 2, Wins: 9, Losses: 7, Ties: 2, Points: 20, GoalsFor: 48, GoalsAgainst: 47, GoalDifference: 1, GamesPlayed: 18})

	homeScore, awayScore := 4, 2
	s.SeedGame(game.Game{
		LeagueID:     demo.ID,
		HomeTeamID:   home.ID,
		AwayTeamID:   away.ID,
		SourceGameID: "G1",
		GameDate:     time.Date(2024, time.November, 2, 0, 0, 0, 0, time.UTC),
		GameTime:     "19:30",
		Status:       game.StatusFinal,
		HomeScore:    &homeScore,
		AwayScore:    &awayScore,
		Venue:        "Harbor Arena",
	})

	jersey := 17
	captain := s.SeedPlayer(player.Player{TeamID: home.ID, FirstName: "Ana", LastName: "Kovac", FullName: "Ana Kovac", JerseyNumber: &jersey, Position: "C", SourcePlayerID: "P17", Active: true})
	s.SeedPlayerStatistics(playerstats.Statistics{PlayerID: captain.ID, Season: "2024", GamesPlayed: 18, Goals: 11, Assists: 14, Points: 25})
}

func (s *Store) stamp() (time.Time, time.Time) {
	now := s.now().UTC()
	return now, now
}
