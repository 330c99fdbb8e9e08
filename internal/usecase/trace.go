package usecase

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	attrPlatform = attribute.Key("league_stats.platform")
	attrLocator  = attribute.Key("league_stats.locator")
	attrLeagueID = attribute.Key("league_stats.league_id")
	attrJobKind  = attribute.Key("league_stats.job.kind")
)

var usecaseTracer trace.Tracer = otel.Tracer("league-stats/internal/usecase")

// startUsecaseSpan only creates child spans. Without a sampled parent the
// context is returned unchanged with a no-op span.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" || !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func failSpan(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// cycleAttributes tags a committed cycle with what it touched.
func cycleAttributes(result CycleResult) []attribute.KeyValue {
	return []attribute.KeyValue{
		attrLeagueID.Int64(result.LeagueID),
		attribute.Int("league_stats.teams.created", result.Teams.Created),
		attribute.Int("league_stats.standings.updated", result.Standings.Updated),
		attribute.Int("league_stats.games.created", result.Games.Created),
		attribute.Int("league_stats.games.updated", result.Games.Updated),
		attribute.Int("league_stats.players.created", result.Players.Created),
	}
}
