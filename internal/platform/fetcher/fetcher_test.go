package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/league-stats/internal/platform/logging"
	"github.com/riskibarqy/league-stats/internal/platform/resilience"
)

type sleepRecorder struct {
	calls []time.Duration
}

func (r *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	r.calls = append(r.calls, d)
	return nil
}

func newTestFetcher(t *testing.T, cfg Config) (*Fetcher, *sleepRecorder) {
	t.Helper()

	f := New(cfg, nil, logging.NewNop())
	rec := &sleepRecorder{}
	f.sleep = rec.sleep
	return f, rec
}

func TestFetch_RetriesUntilSuccess(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		if got := r.URL.Query().Get("season"); got != "2024" {
			t.Errorf("expected season query param, got %q", got)
		}
		_, _ = w.Write([]byte(`<html><body><h1> NHL </h1></body></html>`))
	}))
	defer srv.Close()

	f, rec := newTestFetcher(t, Config{
		MaxRetries:     3,
		RetryDelay:     5 * time.Second,
		RateLimitDelay: time.Second,
	})

	doc := f.Fetch(context.Background(), srv.URL, url.Values{"season": []string{"2024"}})
	if doc == nil {
		t.Fatalf("expected document after third attempt")
	}
	if got := hits.Load(); got != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", got)
	}
	if got := doc.Text("h1"); got != "NHL" {
		t.Fatalf("unexpected heading text: %q", got)
	}

	want := []time.Duration{time.Second, 5 * time.Second, time.Second, 10 * time.Second, time.Second}
	if len(rec.calls) != len(want) {
		t.Fatalf("unexpected sleeps: %v", rec.calls)
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Fatalf("sleep %d: want %s got %s", i, want[i], rec.calls[i])
		}
	}
}

func TestFetch_ExhaustedRetriesReturnsNil(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f, rec := newTestFetcher(t, Config{MaxRetries: 3, RetryDelay: 2 * time.Second})

	if doc := f.Fetch(context.Background(), srv.URL, nil); doc != nil {
		t.Fatalf("expected nil document")
	}
	if got := hits.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
	// No backoff after the last attempt.
	if len(rec.calls) != 5 || rec.calls[3] != 4*time.Second {
		t.Fatalf("unexpected sleeps: %v", rec.calls)
	}
}

func TestFetch_TransportErrorIsRetried(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	target := srv.URL
	srv.Close()

	f, _ := newTestFetcher(t, Config{MaxRetries: 2})
	if doc := f.Fetch(context.Background(), target, nil); doc != nil {
		t.Fatalf("expected nil document for unreachable host")
	}
}

func TestFetch_InvalidURL(t *testing.T) {
	t.Parallel()

	f, rec := newTestFetcher(t, Config{MaxRetries: 3})
	if doc := f.Fetch(context.Background(), "ftp://example.com/file", nil); doc != nil {
		t.Fatalf("expected nil document for unsupported scheme")
	}
	if len(rec.calls) != 0 {
		t.Fatalf("expected no attempts, got sleeps %v", rec.calls)
	}
}

func TestFetch_CancelledContextStops(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	f := New(Config{MaxRetries: 3, RateLimitDelay: time.Hour}, nil, logging.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if doc := f.Fetch(ctx, srv.URL, nil); doc != nil {
		t.Fatalf("expected nil document for cancelled context")
	}
	if hits.Load() != 0 {
		t.Fatalf("expected no request once cancelled")
	}
}

func TestFetch_CircuitOpenShortCircuits(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f, _ := newTestFetcher(t, Config{
		MaxRetries: 3,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Hour,
			HalfOpenMaxReq:   1,
		},
	})

	if doc := f.Fetch(context.Background(), srv.URL, nil); doc != nil {
		t.Fatalf("expected nil document")
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected breaker to stop after 2 failures, got %d requests", got)
	}

	if doc := f.Fetch(context.Background(), srv.URL, nil); doc != nil {
		t.Fatalf("expected nil document while open")
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected no request while breaker open, got %d", got)
	}
}

func TestFetchJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("unexpected accept header %q", r.Header.Get("Accept"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"teams":[{"id":"T1","name":"Oilers"}]}`))
	}))
	defer srv.Close()

	f, _ := newTestFetcher(t, Config{MaxRetries: 1})

	var payload struct {
		Teams []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"teams"`
	}
	if ok := f.FetchJSON(context.Background(), srv.URL, nil, &payload); !ok {
		t.Fatalf("expected json fetch to succeed")
	}
	if len(payload.Teams) != 1 || payload.Teams[0].Name != "Oilers" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestFetchJSON_InvalidBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	f, _ := newTestFetcher(t, Config{MaxRetries: 1})
	var payload map[string]any
	if ok := f.FetchJSON(context.Background(), srv.URL, nil, &payload); ok {
		t.Fatalf("expected decode failure")
	}
}

func TestFetch_OversizedBodyReturnsNil(t *testing.T) {
	t.Parallel()

	rows := strings.Repeat(`<tr><td class="team">FC Example</td></tr>`, 100)
	page := `<html><body><table>` + rows + `</table></body></html>`

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	f, _ := newTestFetcher(t, Config{MaxRetries: 3, MaxBodyBytes: 1024})

	if doc := f.Fetch(context.Background(), srv.URL, nil); doc != nil {
		t.Fatalf("expected nil document for body larger than limit, got %d teams", len(doc.Texts("td.team")))
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("oversized body must not be retried, got %d attempts", got)
	}
}

func TestFetch_BodyAtLimitIsAccepted(t *testing.T) {
	t.Parallel()

	page := `<html><body><h1>NHL</h1></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	f, _ := newTestFetcher(t, Config{MaxRetries: 1, MaxBodyBytes: int64(len(page))})

	doc := f.Fetch(context.Background(), srv.URL, nil)
	if doc == nil || doc.Text("h1") != "NHL" {
		t.Fatalf("expected body of exactly the limit to parse")
	}
}
