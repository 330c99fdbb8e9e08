package jobqueue

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/league-stats/internal/platform/logging"
	"github.com/riskibarqy/league-stats/internal/usecase"
)

func TestJobCodecRoundTrip(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, time.October, 1, 6, 0, 0, 0, time.UTC)
	payload, err := encodeJob(usecase.Job{Kind: usecase.JobKindLeague, LeagueID: 12, RequestedAt: at})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := decodeJob(map[string]any{payloadField: payload})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Kind != usecase.JobKindLeague || got.LeagueID != 12 || !got.RequestedAt.Equal(at) {
		t.Fatalf("unexpected job: %+v", got)
	}
}

func TestDecodeJob_RejectsMalformedMessages(t *testing.T) {
	t.Parallel()

	if _, err := decodeJob(map[string]any{}); err == nil {
		t.Fatalf("expected error for missing payload")
	}
	if _, err := decodeJob(map[string]any{payloadField: "{not json"}); err == nil {
		t.Fatalf("expected error for invalid payload")
	}
}

func TestNewRedisQueue_Defaults(t *testing.T) {
	t.Parallel()

	q := NewRedisQueue(nil, Config{}, logging.NewNop())
	if q.cfg.Stream != "league-stats:jobs" || q.cfg.Group != "league-stats-workers" || q.cfg.BatchSize != 10 {
		t.Fatalf("unexpected defaults: %+v", q.cfg)
	}
}

// Runs against a real server when TEST_REDIS_ADDR is set.
func TestRedisQueue_EnqueueAndConsume(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	stream := "league-stats:test:" + strconv.FormatInt(time.Now().UnixNano(), 10)
	defer client.Del(context.Background(), stream)

	q := NewRedisQueue(client, Config{Stream: stream, Block: 100 * time.Millisecond}, logging.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := q.Enqueue(ctx, usecase.Job{Kind: usecase.JobKindLeague, LeagueID: 3}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	received := make(chan usecase.Job, 1)
	go func() {
		_ = q.Consume(ctx, func(_ context.Context, job usecase.Job) error {
			received <- job
			cancel()
			return nil
		})
	}()

	select {
	case job := <-received:
		if job.LeagueID != 3 {
			t.Fatalf("unexpected job: %+v", job)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("job was not consumed")
	}
}
