package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer trace.Tracer = otel.Tracer("league-stats/internal/interfaces/httpapi")

// routeIDParams are the path wildcards copied onto handler spans.
var routeIDParams = []string{"leagueID", "teamID", "playerID"}

// startSpan only opens spans for handlers, and only under a request span.
// Helpers and middleware share the handler span instead of nesting their own.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() || !shouldCreateHTTPAPISpan(name) {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// startHandlerSpan is startSpan tagged with the numeric ids in the route.
func startHandlerSpan(r *http.Request, name string) (context.Context, trace.Span) {
	return startSpan(r.Context(), name, routeAttributes(r)...)
}

func routeAttributes(r *http.Request) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	for _, param := range routeIDParams {
		id, err := strconv.ParseInt(strings.TrimSpace(r.PathValue(param)), 10, 64)
		if err != nil {
			continue
		}
		attrs = append(attrs, attribute.Int64("league_stats.route."+param, id))
	}
	return attrs
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.") && name != "httpapi.Handler.Healthz"
}
