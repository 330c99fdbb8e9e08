package jobqueue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/league-stats/internal/platform/logging"
	"github.com/riskibarqy/league-stats/internal/usecase"
)

const payloadField = "data"

type Config struct {
	Stream    string
	Group     string
	Consumer  string
	BatchSize int64
	Block     time.Duration
	// ClaimIdle is how long a delivered but unacknowledged job waits before
	// another consumer may take it over.
	ClaimIdle time.Duration
	MaxLen    int64
}

func DefaultConfig() Config {
	return Config{
		Stream:    "league-stats:jobs",
		Group:     "league-stats-workers",
		Consumer:  "worker-1",
		BatchSize: 10,
		Block:     5 * time.Second,
		ClaimIdle: 10 * time.Minute,
		MaxLen:    10000,
	}
}

// Handler processes one job. A nil return acknowledges the message.
type Handler func(ctx context.Context, job usecase.Job) error

// RedisQueue carries reconcile jobs over a Redis stream with one consumer group.
type RedisQueue struct {
	client redis.UniversalClient
	cfg    Config
	logger *logging.Logger
}

var _ usecase.JobQueue = (*RedisQueue)(nil)

func NewRedisQueue(client redis.UniversalClient, cfg Config, logger *logging.Logger) *RedisQueue {
	def := DefaultConfig()
	if strings.TrimSpace(cfg.Stream) == "" {
		cfg.Stream = def.Stream
	}
	if strings.TrimSpace(cfg.Group) == "" {
		cfg.Group = def.Group
	}
	if strings.TrimSpace(cfg.Consumer) == "" {
		cfg.Consumer = def.Consumer
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.Block <= 0 {
		cfg.Block = def.Block
	}
	if cfg.ClaimIdle <= 0 {
		cfg.ClaimIdle = def.ClaimIdle
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &RedisQueue{
		client: client,
		cfg:    cfg,
		logger: logger.Component("jobqueue"),
	}
}

func (q *RedisQueue) Enqueue(ctx context.Context, job usecase.Job) error {
	payload, err := encodeJob(job)
	if err != nil {
		return err
	}

	args := &redis.XAddArgs{
		Stream: q.cfg.Stream,
		Values: map[string]any{payloadField: payload},
	}
	if q.cfg.MaxLen > 0 {
		args.MaxLen = q.cfg.MaxLen
		args.Approx = true
	}

	id, err := q.client.XAdd(ctx, args).Result()
	if err != nil {
		return fmt.Errorf("%w: xadd %s: %v", usecase.ErrDependencyUnavailable, q.cfg.Stream, err)
	}
	q.logger.DebugContext(ctx, "job added to stream", "stream", q.cfg.Stream, "message_id", id, "kind", job.Kind)
	return nil
}

// Consume blocks until ctx is cancelled, handing every job to handle. Jobs
// whose handler fails stay pending and are reclaimed after ClaimIdle.
func (q *RedisQueue) Consume(ctx context.Context, handle Handler) error {
	if err := q.ensureGroup(ctx); err != nil {
		return err
	}
	q.logger.InfoContext(ctx, "consuming jobs", "stream", q.cfg.Stream, "group", q.cfg.Group, "consumer", q.cfg.Consumer)

	for {
		if ctx.Err() != nil {
			return nil
		}

		claimed, err := q.claimStale(ctx)
		if err != nil && ctx.Err() == nil {
			q.logger.WarnContext(ctx, "reclaim pending jobs failed", "error", err)
		}
		q.process(ctx, claimed, handle)

		fresh, err := q.read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			q.logger.ErrorContext(ctx, "read jobs failed", "error", err)
			if !sleepContext(ctx, time.Second) {
				return nil
			}
			continue
		}
		q.process(ctx, fresh, handle)
	}
}

func (q *RedisQueue) ensureGroup(ctx context.Context) error {
	err := q.client.XGroupCreateMkStream(ctx, q.cfg.Stream, q.cfg.Group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("create consumer group %s: %w", q.cfg.Group, err)
	}
	return nil
}

func (q *RedisQueue) read(ctx context.Context) ([]redis.XMessage, error) {
	streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    q.cfg.Group,
		Consumer: q.cfg.Consumer,
		Streams:  []string{q.cfg.Stream, ">"},
		Count:    q.cfg.BatchSize,
		Block:    q.cfg.Block,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var out []redis.XMessage
	for _, stream := range streams {
		out = append(out, stream.Messages...)
	}
	return out, nil
}

func (q *RedisQueue) claimStale(ctx context.Context) ([]redis.XMessage, error) {
	messages, _, err := q.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   q.cfg.Stream,
		Group:    q.cfg.Group,
		Consumer: q.cfg.Consumer,
		MinIdle:  q.cfg.ClaimIdle,
		Start:    "0-0",
		Count:    q.cfg.BatchSize,
	}).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	return messages, nil
}

func (q *RedisQueue) process(ctx context.Context, messages []redis.XMessage, handle Handler) {
	for _, msg := range messages {
		job, err := decodeJob(msg.Values)
		if err != nil {
			q.logger.WarnContext(ctx, "dropping undecodable job", "message_id", msg.ID, "error", err)
			q.ack(ctx, msg.ID)
			continue
		}

		if err := handle(ctx, job); err != nil {
			q.logger.ErrorContext(ctx, "job failed, left pending", "message_id", msg.ID, "kind", job.Kind, "league_id", job.LeagueID, "error", err)
			continue
		}
		q.ack(ctx, msg.ID)
	}
}

func (q *RedisQueue) ack(ctx context.Context, id string) {
	if err := q.client.XAck(ctx, q.cfg.Stream, q.cfg.Group, id).Err(); err != nil {
		q.logger.WarnContext(ctx, "ack job failed", "message_id", id, "error", err)
	}
}

func encodeJob(job usecase.Job) (string, error) {
	payload, err := sonic.MarshalString(job)
	if err != nil {
		return "", fmt.Errorf("encode job: %w", err)
	}
	return payload, nil
}

func decodeJob(values map[string]any) (usecase.Job, error) {
	raw, ok := values[payloadField].(string)
	if !ok {
		return usecase.Job{}, fmt.Errorf("message has no %q field", payloadField)
	}

	var job usecase.Job
	if err := sonic.UnmarshalString(raw, &job); err != nil {
		return usecase.Job{}, fmt.Errorf("decode job: %w", err)
	}
	return job, nil
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
