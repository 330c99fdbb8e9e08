package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestShouldTraceRequest(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		want   bool
	}{
		{name: "healthz", method: http.MethodGet, path: "/healthz", want: false},
		{name: "readyz upper case", method: http.MethodGet, path: "/READYZ", want: false},
		{name: "league standings", method: http.MethodGet, path: "/api/leagues/1/standings", want: true},
		{name: "reconcile trigger", method: http.MethodPost, path: "/api/internal/jobs/reconcile-all", want: true},
		{name: "cors preflight", method: http.MethodOptions, path: "/api/leagues", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, tt.path, nil)
			if got := shouldTraceRequest(r); got != tt.want {
				t.Fatalf("shouldTraceRequest(%s %s)=%v want=%v", tt.method, tt.path, got, tt.want)
			}
		})
	}
}
