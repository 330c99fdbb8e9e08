package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/league-stats/internal/adapter"
	"github.com/riskibarqy/league-stats/internal/config"
	"github.com/riskibarqy/league-stats/internal/domain/game"
	"github.com/riskibarqy/league-stats/internal/domain/league"
	"github.com/riskibarqy/league-stats/internal/domain/player"
	"github.com/riskibarqy/league-stats/internal/domain/playerstats"
	"github.com/riskibarqy/league-stats/internal/domain/standing"
	"github.com/riskibarqy/league-stats/internal/domain/team"
	"github.com/riskibarqy/league-stats/internal/domain/teamstats"
	"github.com/riskibarqy/league-stats/internal/infrastructure/jobqueue"
	cacherepo "github.com/riskibarqy/league-stats/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/league-stats/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/league-stats/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/league-stats/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/league-stats/internal/platform/cache"
	"github.com/riskibarqy/league-stats/internal/platform/fetcher"
	"github.com/riskibarqy/league-stats/internal/platform/logging"
	"github.com/riskibarqy/league-stats/internal/platform/resilience"
	"github.com/riskibarqy/league-stats/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// App holds the wired services shared by the api, worker and scrape commands.
type App struct {
	Config   config.Config
	Logger   *logging.Logger
	Registry *adapter.Registry
	Queue    *jobqueue.RedisQueue

	Reconciler *usecase.ReconcileService
	Jobs       *usecase.JobOrchestratorService
	Leagues    *usecase.LeagueService
	Teams      *usecase.TeamService
	Players    *usecase.PlayerService

	db    *sqlx.DB
	redis redis.UniversalClient
}

type repositories struct {
	store       usecase.ReconcileStore
	leagues     league.Repository
	teams       team.Repository
	players     player.Repository
	games       game.Repository
	standings   standing.Repository
	playerStats playerstats.Repository
	teamStats   teamstats.Repository
}

// New wires storage, the adapter registry and the usecase services. Adapter
// factories are registered against one shared fetcher.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger, factories ...adapter.Factory) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	a := &App{Config: cfg, Logger: logger}

	repos, err := a.openRepositories(ctx)
	if err != nil {
		return nil, err
	}

	f := fetcher.New(fetcherConfig(cfg), &http.Client{
		Timeout:   cfg.FetchTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}, logger)
	a.Registry = adapter.NewRegistry()
	if err := a.Registry.RegisterFactories(f, logger, factories...); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("register adapters: %w", err)
	}

	queue := usecase.NewNoopJobQueue()
	if cfg.JobTriggerMode == config.JobTriggerQueue {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.QueueRedisAddr,
			Password: cfg.QueueRedisPassword,
			DB:       cfg.QueueRedisDB,
		})
		a.Queue = jobqueue.NewRedisQueue(a.redis, a.queueConfig(), logger)
		queue = a.Queue
	}

	a.Reconciler = usecase.NewReconcileService(a.Registry, repos.store, usecase.ReconcileConfig{
		DefaultSeason: cfg.DefaultSeason,
		PlayerStats:   cfg.ReconcilePlayerStats,
	}, logger)
	a.Jobs = usecase.NewJobOrchestratorService(repos.leagues, a.Reconciler, queue, usecase.JobOrchestratorConfig{
		Workers:      cfg.JobBatchWorkers,
		CycleTimeout: cfg.JobCycleTimeout,
	}, logger)
	a.Leagues = usecase.NewLeagueService(repos.leagues, repos.teams, repos.standings, repos.games)
	a.Teams = usecase.NewTeamService(repos.teams, repos.players, repos.games, repos.teamStats)
	a.Players = usecase.NewPlayerService(repos.players, repos.playerStats)

	logger.Info("app wired",
		"store_driver", cfg.StoreDriver,
		"cache_enabled", cfg.CacheEnabled,
		"job_trigger_mode", cfg.JobTriggerMode,
		"platforms", a.Registry.Platforms(),
	)
	return a, nil
}

// Consumer returns the Redis stream queue, connecting on first use when the
// trigger mode is inline.
func (a *App) Consumer() *jobqueue.RedisQueue {
	if a.Queue != nil {
		return a.Queue
	}
	a.redis = redis.NewClient(&redis.Options{
		Addr:     a.Config.QueueRedisAddr,
		Password: a.Config.QueueRedisPassword,
		DB:       a.Config.QueueRedisDB,
	})
	a.Queue = jobqueue.NewRedisQueue(a.redis, a.queueConfig(), a.Logger)
	return a.Queue
}

func (a *App) NewHTTPServer() (*http.Server, error) {
	cfg := a.Config
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(a.Leagues, a.Teams, a.Players, a.Jobs, cfg.JobTriggerMode, a.Logger)
	router := httpapi.NewRouter(handler, a.Logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

func (a *App) openRepositories(ctx context.Context) (repositories, error) {
	var repos repositories

	switch a.Config.StoreDriver {
	case config.StoreDriverMemory:
		store := memory.NewStore()
		memory.SeedDemo(store)
		repos = repositories{
			store:       store,
			leagues:     memory.NewLeagueRepository(store),
			teams:       memory.NewTeamRepository(store),
			players:     memory.NewPlayerRepository(store),
			games:       memory.NewGameRepository(store),
			standings:   memory.NewStandingRepository(store),
			playerStats: memory.NewPlayerStatsRepository(store),
			teamStats:   memory.NewTeamStatsRepository(store),
		}
	default:
		db, err := openPostgres(ctx, a.Config)
		if err != nil {
			return repositories{}, err
		}
		a.db = db
		repos = repositories{
			store:       postgres.NewStore(db),
			leagues:     postgres.NewLeagueRepository(db),
			teams:       postgres.NewTeamRepository(db),
			players:     postgres.NewPlayerRepository(db),
			games:       postgres.NewGameRepository(db),
			standings:   postgres.NewStandingRepository(db),
			playerStats: postgres.NewPlayerStatsRepository(db),
			teamStats:   postgres.NewTeamStatsRepository(db),
		}
	}

	if a.Config.CacheEnabled {
		cache := basecache.NewStore(a.Config.CacheTTL)
		repos.store = cacherepo.NewInvalidatingStore(repos.store, cache)
		repos.leagues = cacherepo.NewLeagueRepository(repos.leagues, cache)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, cache)
		repos.standings = cacherepo.NewStandingRepository(repos.standings, cache)
	}

	return repos, nil
}

func (a *App) queueConfig() jobqueue.Config {
	cfg := jobqueue.DefaultConfig()
	cfg.Stream = a.Config.QueueStream
	cfg.Group = a.Config.QueueConsumerGroup
	cfg.Consumer = a.Config.QueueConsumerName
	return cfg
}

func fetcherConfig(cfg config.Config) fetcher.Config {
	return fetcher.Config{
		Timeout:        cfg.FetchTimeout,
		MaxRetries:     cfg.FetchMaxRetries,
		RetryDelay:     cfg.FetchRetryDelay,
		RateLimitDelay: cfg.FetchRateLimitDelay,
		UserAgent:      cfg.FetchUserAgent,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FetchCircuitEnabled,
			FailureThreshold: cfg.FetchCircuitFailureCount,
			OpenTimeout:      cfg.FetchCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FetchCircuitHalfOpenMaxReq,
		},
	}
}
