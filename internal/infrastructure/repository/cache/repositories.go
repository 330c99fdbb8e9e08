package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/league-stats/internal/domain/league"
	"github.com/riskibarqy/league-stats/internal/domain/standing"
	"github.com/riskibarqy/league-stats/internal/domain/team"
	basecache "github.com/riskibarqy/league-stats/internal/platform/cache"
	"github.com/riskibarqy/league-stats/internal/usecase"
)

// Key prefixes, cleared together after every committed reconcile cycle.
const (
	leaguePrefix   = "league:"
	teamPrefix     = "team:"
	standingPrefix = "standing:"
)

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) List(ctx context.Context, filter league.ListFilter) ([]league.League, error) {
	key := leaguePrefix + "list:" + activeKey(filter.Active) + ":" + strconv.Itoa(filter.Skip) + ":" + strconv.Itoa(filter.Limit)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return append([]league.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.League)
	return append([]league.League(nil), items...), nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID int64) (league.League, bool, error) {
	key := leaguePrefix + "id:" + strconv.FormatInt(leagueID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedLeagueByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeagueByID)
	return cached.value, cached.exists, nil
}

type cachedLeagueByID struct {
	value  league.League
	exists bool
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID int64) ([]team.Team, error) {
	key := teamPrefix + "list:" + strconv.FormatInt(leagueID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	key := teamPrefix + "id:" + strconv.FormatInt(teamID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

type StandingRepository struct {
	next  standing.Repository
	cache *basecache.Store
}

func NewStandingRepository(next standing.Repository, cache *basecache.Store) *StandingRepository {
	return &StandingRepository{next: next, cache: cache}
}

func (r *StandingRepository) ListByLeague(ctx context.Context, leagueID int64, season string) ([]standing.Standing, error) {
	key := standingPrefix + strconv.FormatInt(leagueID, 10) + ":" + season
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByLeague(ctx, leagueID, season)
		if err != nil {
			return nil, err
		}
		return append([]standing.Standing(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]standing.Standing)
	return append([]standing.Standing(nil), items...), nil
}

// InvalidatingStore clears cached reads once a reconcile transaction commits.
type InvalidatingStore struct {
	next  usecase.ReconcileStore
	cache *basecache.Store
}

func NewInvalidatingStore(next usecase.ReconcileStore, cache *basecache.Store) *InvalidatingStore {
	return &InvalidatingStore{next: next, cache: cache}
}

func (s *InvalidatingStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx usecase.ReconcileTx) error) error {
	if err := s.next.WithinTx(ctx, fn); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, leaguePrefix, teamPrefix, standingPrefix)
	return nil
}

func activeKey(active *bool) string {
	if active == nil {
		return "any"
	}
	return strconv.FormatBool(*active)
}
