package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/riskibarqy/league-stats/internal/domain/game"
	"github.com/riskibarqy/league-stats/internal/domain/league"
	"github.com/riskibarqy/league-stats/internal/domain/player"
	"github.com/riskibarqy/league-stats/internal/domain/playerstats"
	"github.com/riskibarqy/league-stats/internal/domain/standing"
	"github.com/riskibarqy/league-stats/internal/domain/team"
	"github.com/riskibarqy/league-stats/internal/domain/teamstats"
	"github.com/riskibarqy/league-stats/internal/usecase"
)

type tables struct {
	leagues     map[int64]league.League
	teams       map[int64]team.Team
	players     map[int64]player.Player
	games       map[int64]game.Game
	standings   map[int64]standing.Standing
	playerStats map[int64]playerstats.Statistics
	teamStats   map[int64]teamstats.Statistics
	seq         map[string]int64
}

func newTables() *tables {
	return &tables{
		leagues:     make(map[int64]league.League),
		teams:       make(map[int64]team.Team),
		players:     make(map[int64]player.Player),
		games:       make(map[int64]game.Game),
		standings:   make(map[int64]standing.Standing),
		playerStats: make(map[int64]playerstats.Statistics),
		teamStats:   make(map[int64]teamstats.Statistics),
		seq:         make(map[string]int64),
	}
}

func (t *tables) clone() *tables {
	return &tables{
		leagues:     maps.Clone(t.leagues),
		teams:       maps.Clone(t.teams),
		players:     maps.Clone(t.players),
		games:       maps.Clone(t.games),
		standings:   maps.Clone(t.standings),
		playerStats: maps.Clone(t.playerStats),
		teamStats:   maps.Clone(t.teamStats),
		seq:         maps.Clone(t.seq),
	}
}

func (t *tables) nextID(table string) int64 {
	t.seq[table]++
	return t.seq[table]
}

// Store keeps every entity in process memory. Transactions are serialized
// and a failed transaction restores the snapshot taken when it began.
type Store struct {
	mu   sync.RWMutex
	data *tables
	now  func() time.Time
}

var _ usecase.ReconcileStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		data: newTables(),
		now:  time.Now,
	}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx usecase.ReconcileTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	committed := false
	defer func() {
		if !committed {
			s.data = snapshot
		}
	}()

	if err := fn(ctx, &txView{data: s.data, now: s.now}); err != nil {
		return err
	}
	committed = true
	return nil
}

func (s *Store) read(fn func(data *tables)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

func (s *Store) write(fn func(data *tables)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.data)
}
