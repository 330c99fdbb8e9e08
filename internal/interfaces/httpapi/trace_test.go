package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "handler span", in: "httpapi.Handler.ListLeagueStandings", want: true},
		{name: "job trigger span", in: "httpapi.Handler.RunReconcileLeagueJob", want: true},
		{name: "health handler", in: "httpapi.Handler.Healthz", want: false},
		{name: "middleware span", in: "httpapi.RequestLogging", want: false},
		{name: "helper span", in: "httpapi.writeError", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shouldCreateHTTPAPISpan(tt.in)
			if got != tt.want {
				t.Fatalf("shouldCreateHTTPAPISpan(%q)=%v want=%v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRouteAttributes(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/teams/12/players", nil)
	r.SetPathValue("teamID", "12")
	r.SetPathValue("leagueID", "not-a-number")

	attrs := routeAttributes(r)
	if len(attrs) != 1 {
		t.Fatalf("expected only the numeric team id, got %v", attrs)
	}
	if attrs[0].Key != "league_stats.route.teamID" || attrs[0].Value.AsInt64() != 12 {
		t.Fatalf("unexpected attribute: %v", attrs[0])
	}
}
