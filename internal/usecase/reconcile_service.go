package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-stats/internal/adapter"
	"github.com/riskibarqy/league-stats/internal/domain/game"
	"github.com/riskibarqy/league-stats/internal/domain/league"
	"github.com/riskibarqy/league-stats/internal/domain/player"
	"github.com/riskibarqy/league-stats/internal/domain/playerstats"
	"github.com/riskibarqy/league-stats/internal/domain/standing"
	"github.com/riskibarqy/league-stats/internal/domain/team"
	"github.com/riskibarqy/league-stats/internal/domain/teamstats"
	"github.com/riskibarqy/league-stats/internal/platform/logging"
	"github.com/riskibarqy/league-stats/internal/platform/resilience"
)

const defaultReconcileSeason = "2024"

type ReconcileConfig struct {
	DefaultSeason string
	// PlayerStats enables the per-player and per-team statistics step.
	PlayerStats bool
}

type EntityCounts struct {
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Skipped   int `json:"skipped"`
}

type CycleResult struct {
	Platform         string       `json:"platform"`
	Locator          string       `json:"locator"`
	LeagueID         int64        `json:"league_id"`
	League           string       `json:"league"`
	Leagues          EntityCounts `json:"leagues"`
	Teams            EntityCounts `json:"teams"`
	Standings        EntityCounts `json:"standings"`
	Games            EntityCounts `json:"games"`
	Players          EntityCounts `json:"players"`
	PlayerStatistics EntityCounts `json:"player_statistics"`
	TeamStatistics   EntityCounts `json:"team_statistics"`
	DurationMs       int64        `json:"duration_ms"`
}

// ReconcileService pulls one league from its source platform and upserts it
// into the store inside a single transaction.
type ReconcileService struct {
	registry *adapter.Registry
	store    ReconcileStore
	cfg      ReconcileConfig
	locks    *resilience.KeyedMutex
	logger   *logging.Logger
	now      func() time.Time
}

func NewReconcileService(registry *adapter.Registry, store ReconcileStore, cfg ReconcileConfig, logger *logging.Logger) *ReconcileService {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.DefaultSeason) == "" {
		cfg.DefaultSeason = defaultReconcileSeason
	}

	return &ReconcileService{
		registry: registry,
		store:    store,
		cfg:      cfg,
		locks:    resilience.NewKeyedMutex(),
		logger:   logger.Component("reconcile"),
		now:      time.Now,
	}
}

func (s *ReconcileService) ReconcileLeague(ctx context.Context, platform, locator string) (CycleResult, error) {
	platform = strings.TrimSpace(platform)
	locator = strings.TrimSpace(locator)
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.ReconcileLeague",
		attrPlatform.String(platform), attrLocator.String(locator))
	defer span.End()

	if locator == "" {
		return CycleResult{}, fmt.Errorf("%w: league locator is required", ErrInvalidInput)
	}
	if s.registry == nil || s.store == nil {
		return CycleResult{}, fmt.Errorf("%w: reconcile service is not configured", ErrDependencyUnavailable)
	}

	src, err := s.registry.Lookup(platform)
	if err != nil {
		s.logger.ErrorContext(ctx, "no adapter registered", "platform", platform, "locator", locator)
		return CycleResult{}, err
	}

	unlock := s.locks.Lock(strings.ToLower(platform) + "|" + locator)
	defer unlock()

	started := s.now()
	ctx = logging.ContextWith(ctx, "platform", platform, "locator", locator)
	s.logger.InfoContext(ctx, "reconcile cycle started")

	result := CycleResult{Platform: platform, Locator: locator}
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx ReconcileTx) error {
		c := &cycle{
			cfg:      s.cfg,
			tx:       tx,
			src:      src,
			platform: platform,
			locator:  locator,
			logger:   s.logger,
			result:   &result,
		}
		return c.run(ctx)
	})
	result.DurationMs = s.now().Sub(started).Milliseconds()
	if err != nil {
		s.logger.ErrorContext(ctx, "reconcile cycle rolled back", "error", err, "duration_ms", result.DurationMs)
		failSpan(span, err)
		return CycleResult{}, fmt.Errorf("%w: platform=%s locator=%s: %w", ErrCycleFailed, platform, locator, err)
	}

	span.SetAttributes(cycleAttributes(result)...)
	s.logger.InfoContext(ctx, "reconcile cycle committed",
		"league_id", result.LeagueID,
		"league", result.League,
		"teams_created", result.Teams.Created,
		"standings_created", result.Standings.Created,
		"standings_updated", result.Standings.Updated,
		"games_created", result.Games.Created,
		"games_updated", result.Games.Updated,
		"players_created", result.Players.Created,
		"players_skipped", result.Players.Skipped,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

// cycle holds the state of one reconcile run. Steps execute strictly in order.
type cycle struct {
	cfg      ReconcileConfig
	tx       ReconcileTx
	src      adapter.Adapter
	platform string
	locator  string
	logger   *logging.Logger
	result   *CycleResult
}

func (c *cycle) run(ctx context.Context) error {
	item, err := c.upsertLeague(ctx)
	if err != nil {
		return err
	}
	c.result.LeagueID = item.ID
	c.result.League = item.Name

	if err := c.upsertStandings(ctx, item.ID); err != nil {
		return err
	}
	if err := c.upsertGames(ctx, item.ID); err != nil {
		return err
	}

	teams, err := c.tx.ListTeamsByLeague(ctx, item.ID)
	if err != nil {
		return crerr.Wrap(err, "list league teams")
	}
	if err := c.upsertRosters(ctx, teams); err != nil {
		return err
	}

	if !c.cfg.PlayerStats {
		return nil
	}
	if err := c.upsertPlayerStatistics(ctx, teams); err != nil {
		return err
	}
	return c.upsertTeamStatistics(ctx, teams)
}

func (c *cycle) upsertLeague(ctx context.Context) (league.League, error) {
	info, err := c.src.ScrapeLeagueInfo(ctx, c.locator)
	if err != nil {
		return league.League{}, crerr.Wrap(err, "scrape league info")
	}

	slug, _ := info.String(adapter.FieldSlug)
	if slug == "" {
		return league.League{}, fmt.Errorf("%w: league record has no slug", ErrInvalidRecord)
	}
	if err := c.tx.LockLeague(ctx, slug); err != nil {
		return league.League{}, crerr.Wrapf(err, "lock league %q", slug)
	}

	existing, found, err := c.tx.GetLeagueBySlug(ctx, slug)
	if err != nil {
		return league.League{}, crerr.Wrapf(err, "get league %q", slug)
	}

	if !found {
		item := league.League{
			Name:           info.StringOr(adapter.FieldName, ""),
			Slug:           slug,
			Description:    info.StringOr(adapter.FieldDescription, ""),
			SourceURL:      info.StringOr(adapter.FieldSourceURL, c.locator),
			SourcePlatform: c.platform,
			LogoURL:        info.StringOr(adapter.FieldLogoURL, ""),
			Active:         true,
		}
		if err := item.Validate(); err != nil {
			return league.League{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
		}
		created, err := c.tx.CreateLeague(ctx, item)
		if err != nil {
			return league.League{}, crerr.Wrapf(err, "create league %q", slug)
		}
		c.result.Leagues.Created++
		return created, nil
	}

	updated := existing
	coalesceString(&updated.Name, info, adapter.FieldName)
	coalesceString(&updated.Description, info, adapter.FieldDescription)
	coalesceString(&updated.SourceURL, info, adapter.FieldSourceURL)
	coalesceString(&updated.LogoURL, info, adapter.FieldLogoURL)
	if sameLeague(existing, updated) {
		c.result.Leagues.Unchanged++
		return existing, nil
	}

	saved, err := c.tx.UpdateLeague(ctx, updated)
	if err != nil {
		return league.League{}, crerr.Wrapf(err, "update league %q", slug)
	}
	c.result.Leagues.Updated++
	return saved, nil
}

func (c *cycle) upsertStandings(ctx context.Context, leagueID int64) error {
	records, err := c.src.ScrapeStandings(ctx, c.locator)
	if err != nil {
		return crerr.Wrap(err, "scrape standings")
	}

	for i, rec := range records {
		name, _ := rec.String(adapter.FieldTeamName)
		club, err := c.findOrCreateTeam(ctx, leagueID, name, rec)
		if err != nil {
			return fmt.Errorf("standing %d: %w", i, err)
		}

		season := c.season(rec)
		existing, found, err := c.tx.GetStanding(ctx, leagueID, club.ID, season)
		if err != nil {
			return crerr.Wrapf(err, "get standing team=%d season=%s", club.ID, season)
		}

		if !found {
			_, err := c.tx.CreateStanding(ctx, standing.Standing{
				LeagueID:       leagueID,
				TeamID:         club.ID,
				Season:         season,
				Rank:           rec.IntOr(adapter.FieldRank, 0),
				Wins:           rec.IntOr(adapter.FieldWins, 0),
				Losses:         rec.IntOr(adapter.FieldLosses, 0),
				Ties:           rec.IntOr(adapter.FieldTies, 0),
				Points:         rec.IntOr(adapter.FieldPoints, 0),
				GoalsFor:       rec.IntOr(adapter.FieldGoalsFor, 0),
				GoalsAgainst:   rec.IntOr(adapter.FieldGoalsAgainst, 0),
				GoalDifference: rec.IntOr(adapter.FieldGoalDifference, 0),
				WinPercentage:  rec.FloatOr(adapter.FieldWinPercentage, 0),
				GamesPlayed:    rec.IntOr(adapter.FieldGamesPlayed, 0),
			})
			if err != nil {
				return crerr.Wrapf(err, "create standing team=%d season=%s", club.ID, season)
			}
			c.result.Standings.Created++
			continue
		}

		// Only the ranking columns follow the source on update; the goal,
		// ties and games-played columns keep their first observed values.
		updated := existing
		coalesceInt(&updated.Rank, rec, adapter.FieldRank)
		coalesceInt(&updated.Wins, rec, adapter.FieldWins)
		coalesceInt(&updated.Losses, rec, adapter.FieldLosses)
		coalesceInt(&updated.Points, rec, adapter.FieldPoints)
		if updated == existing {
			c.result.Standings.Unchanged++
			continue
		}
		if _, err := c.tx.UpdateStanding(ctx, updated); err != nil {
			return crerr.Wrapf(err, "update standing id=%d", existing.ID)
		}
		c.result.Standings.Updated++
	}

	return nil
}

func (c *cycle) upsertGames(ctx context.Context, leagueID int64) error {
	records, err := c.src.ScrapeScores(ctx, c.locator)
	if err != nil {
		return crerr.Wrap(err, "scrape scores")
	}

	for i, rec := range records {
		homeName, _ := rec.String(adapter.FieldHomeTeam)
		home, err := c.findOrCreateTeam(ctx, leagueID, homeName, nil)
		if err != nil {
			return fmt.Errorf("game %d home team: %w", i, err)
		}
		awayName, _ := rec.String(adapter.FieldAwayTeam)
		away, err := c.findOrCreateTeam(ctx, leagueID, awayName, nil)
		if err != nil {
			return fmt.Errorf("game %d away team: %w", i, err)
		}
		if home.ID == away.ID {
			return fmt.Errorf("%w: game %d home and away resolve to team %q", ErrInvalidRecord, i, home.Slug)
		}

		sourceID, _ := rec.String(adapter.FieldSourceGameID)
		if sourceID == "" {
			return fmt.Errorf("%w: game %d has no source_game_id", ErrInvalidRecord, i)
		}

		existing, found, err := c.tx.GetGameBySourceID(ctx, leagueID, sourceID)
		if err != nil {
			return crerr.Wrapf(err, "get game %q", sourceID)
		}

		if !found {
			gameDate, ok := rec.Date(adapter.FieldGameDate)
			if !ok {
				return fmt.Errorf("%w: game %q has no valid game_date", ErrInvalidRecord, sourceID)
			}
			item := game.Game{
				LeagueID:     leagueID,
				HomeTeamID:   home.ID,
				AwayTeamID:   away.ID,
				SourceGameID: sourceID,
				GameDate:     gameDate,
				GameTime:     rec.StringOr(adapter.FieldGameTime, ""),
				Status:       game.NormalizeStatus(rec.StringOr(adapter.FieldStatus, "")),
				HomeScore:    rec.IntPtr(adapter.FieldHomeScore),
				AwayScore:    rec.IntPtr(adapter.FieldAwayScore),
				Venue:        rec.StringOr(adapter.FieldVenue, ""),
			}
			if err := item.Validate(); err != nil {
				return fmt.Errorf("%w: game %q: %v", ErrInvalidRecord, sourceID, err)
			}
			if _, err := c.tx.CreateGame(ctx, item); err != nil {
				return crerr.Wrapf(err, "create game %q", sourceID)
			}
			c.result.Games.Created++
			continue
		}

		updated := existing
		// An empty status never downgrades a stored one to the scheduled default.
		if status, ok := rec.String(adapter.FieldStatus); ok && status != "" {
			updated.Status = game.NormalizeStatus(status)
		}
		if score := rec.IntPtr(adapter.FieldHomeScore); score != nil {
			updated.HomeScore = score
		}
		if score := rec.IntPtr(adapter.FieldAwayScore); score != nil {
			updated.AwayScore = score
		}
		if sameGameResult(existing, updated) {
			c.result.Games.Unchanged++
			continue
		}
		if _, err := c.tx.UpdateGame(ctx, updated); err != nil {
			return crerr.Wrapf(err, "update game %q", sourceID)
		}
		c.result.Games.Updated++
	}

	return nil
}

func (c *cycle) upsertRosters(ctx context.Context, teams []team.Team) error {
	for _, club := range teams {
		if club.SourceTeamID == "" {
			continue
		}

		records, err := c.src.ScrapeRosters(ctx, club.SourceTeamID)
		if err != nil {
			return crerr.Wrapf(err, "scrape roster team=%s", club.SourceTeamID)
		}

		for _, rec := range records {
			sourceID, _ := rec.String(adapter.FieldSourcePlayerID)
			if sourceID == "" {
				c.logger.WarnContext(ctx, "roster entry without source_player_id skipped",
					"team_id", club.ID,
					"full_name", rec.StringOr(adapter.FieldFullName, ""),
				)
				c.result.Players.Skipped++
				continue
			}

			_, found, err := c.tx.GetPlayerBySourceID(ctx, club.ID, sourceID)
			if err != nil {
				return crerr.Wrapf(err, "get player %q", sourceID)
			}
			if found {
				c.result.Players.Unchanged++
				continue
			}

			first := rec.StringOr(adapter.FieldFirstName, "")
			last := rec.StringOr(adapter.FieldLastName, "")
			item := player.Player{
				TeamID:         club.ID,
				FirstName:      first,
				LastName:       last,
				FullName:       rec.StringOr(adapter.FieldFullName, strings.TrimSpace(first+" "+last)),
				JerseyNumber:   rec.IntPtr(adapter.FieldJerseyNumber),
				Position:       rec.StringOr(adapter.FieldPosition, ""),
				PhotoURL:       rec.StringOr(adapter.FieldPhotoURL, ""),
				SourcePlayerID: sourceID,
				Height:         rec.StringOr(adapter.FieldHeight, ""),
				Weight:         rec.IntPtr(adapter.FieldWeight),
				Active:         true,
			}
			if dob, ok := rec.Date(adapter.FieldDateOfBirth); ok {
				item.DateOfBirth = &dob
			}
			if _, err := c.tx.CreatePlayer(ctx, item); err != nil {
				return crerr.Wrapf(err, "create player %q", sourceID)
			}
			c.result.Players.Created++
		}
	}

	return nil
}

func (c *cycle) upsertPlayerStatistics(ctx context.Context, teams []team.Team) error {
	for _, club := range teams {
		roster, err := c.tx.ListPlayersByTeam(ctx, club.ID)
		if err != nil {
			return crerr.Wrapf(err, "list players team=%d", club.ID)
		}

		for _, p := range roster {
			if p.SourcePlayerID == "" {
				continue
			}
			records, err := c.src.ScrapePlayerStats(ctx, p.SourcePlayerID)
			if err != nil {
				return crerr.Wrapf(err, "scrape player stats player=%s", p.SourcePlayerID)
			}

			for _, rec := range records {
				created, err := c.tx.UpsertPlayerStatistics(ctx, playerstats.Statistics{
					PlayerID:       p.ID,
					Season:         c.season(rec),
					GamesPlayed:    rec.IntOr(adapter.FieldGamesPlayed, 0),
					Goals:          rec.IntOr(adapter.FieldGoals, 0),
					Assists:        rec.IntOr(adapter.FieldAssists, 0),
					Points:         rec.IntOr(adapter.FieldPoints, 0),
					Shots:          rec.IntOr(adapter.FieldShots, 0),
					ShotsOnGoal:    rec.IntOr(adapter.FieldShotsOnGoal, 0),
					PenaltyMinutes: rec.IntOr(adapter.FieldPenaltyMinutes, 0),
					PlusMinus:      rec.IntOr(adapter.FieldPlusMinus, 0),
				})
				if err != nil {
					return crerr.Wrapf(err, "upsert player statistics player=%d", p.ID)
				}
				countUpsert(&c.result.PlayerStatistics, created)
			}
		}
	}

	return nil
}

func (c *cycle) upsertTeamStatistics(ctx context.Context, teams []team.Team) error {
	scraper, ok := c.src.(adapter.TeamStatsScraper)
	if !ok {
		return nil
	}

	for _, club := range teams {
		if club.SourceTeamID == "" {
			continue
		}
		records, err := scraper.ScrapeTeamStats(ctx, club.SourceTeamID)
		if err != nil {
			return crerr.Wrapf(err, "scrape team stats team=%s", club.SourceTeamID)
		}

		for _, rec := range records {
			created, err := c.tx.UpsertTeamStatistics(ctx, teamstats.Statistics{
				TeamID:         club.ID,
				Season:         c.season(rec),
				GamesPlayed:    rec.IntOr(adapter.FieldGamesPlayed, 0),
				GoalsFor:       rec.IntOr(adapter.FieldGoalsFor, 0),
				GoalsAgainst:   rec.IntOr(adapter.FieldGoalsAgainst, 0),
				GoalDifference: rec.IntOr(adapter.FieldGoalDifference, 0),
				ShotsPerGame:   rec.FloatOr(adapter.FieldShotsPerGame, 0),
				GoalsPerGame:   rec.FloatOr(adapter.FieldGoalsPerGame, 0),
				PowerPlayPct:   rec.FloatOr(adapter.FieldPowerPlayPct, 0),
				PenaltyKillPct: rec.FloatOr(adapter.FieldPenaltyKillPct, 0),
			})
			if err != nil {
				return crerr.Wrapf(err, "upsert team statistics team=%d", club.ID)
			}
			countUpsert(&c.result.TeamStatistics, created)
		}
	}

	return nil
}

// findOrCreateTeam resolves a team by the slug derived from name. New teams
// are inserted immediately so later records in the cycle see their id. When
// rec is given, an empty stored source_team_id or abbreviation is backfilled.
func (c *cycle) findOrCreateTeam(ctx context.Context, leagueID int64, name string, rec adapter.Record) (team.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidRecord)
	}
	slug := team.Slugify(name)

	existing, found, err := c.tx.GetTeamBySlug(ctx, leagueID, slug)
	if err != nil {
		return team.Team{}, crerr.Wrapf(err, "get team %q", slug)
	}

	if !found {
		item := team.Team{
			LeagueID:     leagueID,
			Name:         name,
			Slug:         slug,
			Abbreviation: rec.StringOr(adapter.FieldAbbreviation, ""),
			SourceTeamID: rec.StringOr(adapter.FieldSourceTeamID, ""),
			Active:       true,
		}
		created, err := c.tx.CreateTeam(ctx, item)
		if err != nil {
			return team.Team{}, crerr.Wrapf(err, "create team %q", slug)
		}
		c.result.Teams.Created++
		return created, nil
	}

	updated := existing
	if updated.SourceTeamID == "" {
		updated.SourceTeamID = rec.StringOr(adapter.FieldSourceTeamID, "")
	}
	if updated.Abbreviation == "" {
		updated.Abbreviation = rec.StringOr(adapter.FieldAbbreviation, "")
	}
	if updated == existing {
		return existing, nil
	}

	saved, err := c.tx.UpdateTeam(ctx, updated)
	if err != nil {
		return team.Team{}, crerr.Wrapf(err, "update team %q", slug)
	}
	c.result.Teams.Updated++
	return saved, nil
}

func (c *cycle) season(rec adapter.Record) string {
	if season, _ := rec.String(adapter.FieldSeason); season != "" {
		return season
	}
	return c.cfg.DefaultSeason
}

func coalesceString(dst *string, rec adapter.Record, key string) {
	if v, ok := rec.String(key); ok {
		*dst = v
	}
}

func coalesceInt(dst *int, rec adapter.Record, key string) {
	if v, ok := rec.Int(key); ok {
		*dst = v
	}
}

func countUpsert(counts *EntityCounts, created bool) {
	if created {
		counts.Created++
		return
	}
	counts.Updated++
}

func sameLeague(a, b league.League) bool {
	return a.Name == b.Name &&
		a.Description == b.Description &&
		a.SourceURL == b.SourceURL &&
		a.LogoURL == b.LogoURL
}

func sameGameResult(a, b game.Game) bool {
	return a.Status == b.Status && equalIntPtr(a.HomeScore, b.HomeScore) && equalIntPtr(a.AwayScore, b.AwayScore)
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
