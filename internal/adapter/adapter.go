package adapter

import (
	"context"
	"errors"
)

// ErrUnusableSource is wrapped by adapters when a source document is
// structurally unusable, e.g. the standings table is missing entirely.
var ErrUnusableSource = errors.New("unusable source")

// Adapter turns one platform's documents into normalized records. Every
// call is independent; the engine decides ordering and persistence.
type Adapter interface {
	Platform() string
	ScrapeLeagueInfo(ctx context.Context, leagueURL string) (Record, error)
	ScrapeStandings(ctx context.Context, leagueURL string) ([]Record, error)
	ScrapeScores(ctx context.Context, leagueURL string) ([]Record, error)
	ScrapeRosters(ctx context.Context, sourceTeamID string) ([]Record, error)
	ScrapePlayerStats(ctx context.Context, sourcePlayerID string) ([]Record, error)
}

// TeamStatsScraper is implemented by adapters whose platform publishes season team totals.
type TeamStatsScraper interface {
	ScrapeTeamStats(ctx context.Context, sourceTeamID string) ([]Record, error)
}
