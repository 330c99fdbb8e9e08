package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")

func TestStore_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "nhl", nil
	}

	if _, err := store.GetOrLoad(ctx, "league:id:1", loader); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := store.Get(ctx, "league:id:1"); !ok {
		t.Fatalf("expected cached value before ttl")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(ctx, "league:id:1"); ok {
		t.Fatalf("expected value to expire after ttl")
	}
	if _, err := store.GetOrLoad(ctx, "league:id:1", loader); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("loader called %d times, want 2", got)
	}
}

func TestStore_LoaderErrorIsNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	boom := errors.New("boom")

	if _, err := store.GetOrLoad(ctx, "team:id:3", func(context.Context) (any, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if _, ok := store.Get(ctx, "team:id:3"); ok {
		t.Fatalf("failed load must not be cached")
	}
}

func TestStore_InvalidateDropsPrefixes(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	for key, value := range map[string]any{"league:id:1": 1, "league:list:any": 2, "team:id:3": 3, "player:id:4": 4} {
		v := value
		if _, err := store.GetOrLoad(ctx, key, func(context.Context) (any, error) { return v, nil }); err != nil {
			t.Fatalf("load %s: %v", key, err)
		}
	}

	store.Invalidate(ctx, "league:", "team:")

	for _, key := range []string{"league:id:1", "league:list:any", "team:id:3"} {
		if _, ok := store.Get(ctx, key); ok {
			t.Fatalf("expected %s removed", key)
		}
	}
	if _, ok := store.Get(ctx, "player:id:4"); !ok {
		t.Fatalf("expected player key retained")
	}
}

func TestStore_InvalidateFencesInFlightLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = store.GetOrLoad(ctx, "standing:1:2024", func(context.Context) (any, error) {
			close(started)
			<-release
			return "stale", nil
		})
	}()

	<-started
	store.Invalidate(ctx, "standing:")
	close(release)
	<-done

	if _, ok := store.Get(ctx, "standing:1:2024"); ok {
		t.Fatalf("load that began before invalidation must not be cached")
	}
}
