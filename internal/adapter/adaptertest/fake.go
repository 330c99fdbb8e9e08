// Package adaptertest provides a scripted adapter for engine and orchestrator tests.
package adaptertest

import (
	"context"
	"maps"
	"sync"

	"github.com/riskibarqy/league-stats/internal/adapter"
)

const (
	MethodLeagueInfo  = "ScrapeLeagueInfo"
	MethodStandings   = "ScrapeStandings"
	MethodScores      = "ScrapeScores"
	MethodRosters     = "ScrapeRosters"
	MethodPlayerStats = "ScrapePlayerStats"
	MethodTeamStats   = "ScrapeTeamStats"
)

// Fake returns the scripted records. Errors are keyed by method name and
// PanicOn makes the named method panic.
type Fake struct {
	Name        string
	LeagueInfo  adapter.Record
	Standings   []adapter.Record
	Scores      []adapter.Record
	Rosters     map[string][]adapter.Record
	PlayerStats map[string][]adapter.Record
	Errors      map[string]error
	PanicOn     string

	mu    sync.Mutex
	calls map[string]int
}

var _ adapter.Adapter = (*Fake)(nil)

func (f *Fake) Platform() string {
	if f.Name == "" {
		return "fake"
	}
	return f.Name
}

func (f *Fake) ScrapeLeagueInfo(_ context.Context, _ string) (adapter.Record, error) {
	if err := f.enter(MethodLeagueInfo); err != nil {
		return nil, err
	}
	return cloneRecord(f.LeagueInfo), nil
}

func (f *Fake) ScrapeStandings(_ context.Context, _ string) ([]adapter.Record, error) {
	if err := f.enter(MethodStandings); err != nil {
		return nil, err
	}
	return cloneRecords(f.Standings), nil
}

func (f *Fake) ScrapeScores(_ context.Context, _ string) ([]adapter.Record, error) {
	if err := f.enter(MethodScores); err != nil {
		return nil, err
	}
	return cloneRecords(f.Scores), nil
}

func (f *Fake) ScrapeRosters(_ context.Context, sourceTeamID string) ([]adapter.Record, error) {
	if err := f.enter(MethodRosters); err != nil {
		return nil, err
	}
	return cloneRecords(f.Rosters[sourceTeamID]), nil
}

func (f *Fake) ScrapePlayerStats(_ context.Context, sourcePlayerID string) ([]adapter.Record, error) {
	if err := f.enter(MethodPlayerStats); err != nil {
		return nil, err
	}
	return cloneRecords(f.PlayerStats[sourcePlayerID]), nil
}

// Calls reports how many times method was invoked.
func (f *Fake) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *Fake) enter(method string) error {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[method]++
	err := f.Errors[method]
	shouldPanic := f.PanicOn == method
	f.mu.Unlock()

	if shouldPanic {
		panic("adaptertest: scripted panic in " + method)
	}
	return err
}

// TeamStatsFake also implements adapter.TeamStatsScraper.
type TeamStatsFake struct {
	*Fake
	TeamStats map[string][]adapter.Record
}

var _ adapter.TeamStatsScraper = (*TeamStatsFake)(nil)

func (f *TeamStatsFake) ScrapeTeamStats(_ context.Context, sourceTeamID string) ([]adapter.Record, error) {
	if err := f.enter(MethodTeamStats); err != nil {
		return nil, err
	}
	return cloneRecords(f.TeamStats[sourceTeamID]), nil
}

func cloneRecord(r adapter.Record) adapter.Record {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}

func cloneRecords(in []adapter.Record) []adapter.Record {
	out := make([]adapter.Record, 0, len(in))
	for _, r := range in {
		out = append(out, cloneRecord(r))
	}
	return out
}
