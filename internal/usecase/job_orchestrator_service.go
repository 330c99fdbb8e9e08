package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/league-stats/internal/domain/league"
	"github.com/riskibarqy/league-stats/internal/platform/logging"
	"github.com/riskibarqy/league-stats/internal/platform/resilience"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel/codes"
)

type JobKind string

const (
	JobKindAll    JobKind = "all"
	JobKindLeague JobKind = "league"
)

const (
	JobStatusCompleted = "completed"
	JobStatusSuccess   = "success"
	JobStatusError     = "error"
	JobStatusSkipped   = "skipped"
	JobStatusQueued    = "queued"

	msgLeagueNotFound    = "league not found"
	msgMissingSourceInfo = "missing source information"
	defaultBatchWorkers  = 1
)

// Job is one unit of queued reconciliation work.
type Job struct {
	Kind        JobKind   `json:"kind"`
	LeagueID    int64     `json:"league_id,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

type JobQueue interface {
	Enqueue(ctx context.Context, job Job) error
}

type noopJobQueue struct{}

func (noopJobQueue) Enqueue(_ context.Context, _ Job) error {
	return fmt.Errorf("%w: job queue is not configured", ErrDependencyUnavailable)
}

func NewNoopJobQueue() JobQueue {
	return noopJobQueue{}
}

// LeagueReconciler runs one reconcile cycle. Implemented by ReconcileService.
type LeagueReconciler interface {
	ReconcileLeague(ctx context.Context, platform, locator string) (CycleResult, error)
}

type JobOrchestratorConfig struct {
	Workers      int
	CycleTimeout time.Duration
}

type LeagueRunResult struct {
	LeagueID   int64        `json:"league_id"`
	League     string       `json:"league"`
	Status     string       `json:"status"`
	Message    string       `json:"message,omitempty"`
	Counts     *CycleResult `json:"counts,omitempty"`
	DurationMs int64        `json:"duration_ms"`
}

type BatchResult struct {
	Status      string            `json:"status"`
	LeagueCount int               `json:"league_count"`
	Attempted   int               `json:"attempted"`
	Succeeded   int               `json:"succeeded"`
	Failed      int               `json:"failed"`
	Skipped     int               `json:"skipped"`
	DurationMs  int64             `json:"duration_ms"`
	Leagues     []LeagueRunResult `json:"leagues"`
}

type JobResult struct {
	Status   string       `json:"status"`
	LeagueID int64        `json:"league_id,omitempty"`
	League   string       `json:"league,omitempty"`
	Message  string       `json:"message,omitempty"`
	Counts   *CycleResult `json:"counts,omitempty"`
}

type JobOrchestratorService struct {
	leagueRepo league.Repository
	reconciler LeagueReconciler
	queue      JobQueue
	cfg        JobOrchestratorConfig
	locks      *resilience.KeyedMutex
	logger     *logging.Logger
	now        func() time.Time
}

func NewJobOrchestratorService(
	leagueRepo league.Repository,
	reconciler LeagueReconciler,
	queue JobQueue,
	cfg JobOrchestratorConfig,
	logger *logging.Logger,
) *JobOrchestratorService {
	if queue == nil {
		queue = NewNoopJobQueue()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultBatchWorkers
	}

	return &JobOrchestratorService{
		leagueRepo: leagueRepo,
		reconciler: reconciler,
		queue:      queue,
		cfg:        cfg,
		locks:      resilience.NewKeyedMutex(),
		logger:     logger.Component("jobs"),
		now:        time.Now,
	}
}

// RunBatch reconciles every active league. Per-league failures and panics
// are counted in the result and never abort the batch.
func (s *JobOrchestratorService) RunBatch(ctx context.Context) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobOrchestratorService.RunBatch")
	defer span.End()

	started := s.now()
	active := true
	leagues, err := s.leagueRepo.List(ctx, league.ListFilter{Active: &active})
	if err != nil {
		return BatchResult{}, fmt.Errorf("list active leagues: %w", err)
	}
	s.logger.InfoContext(ctx, "reconcile batch started", "league_count", len(leagues), "workers", s.cfg.Workers)

	result := BatchResult{
		Status:      JobStatusCompleted,
		LeagueCount: len(leagues),
		Leagues:     make([]LeagueRunResult, 0, len(leagues)),
	}

	eligible := make([]league.League, 0, len(leagues))
	for _, item := range leagues {
		if !item.HasSource() {
			s.logger.WarnContext(ctx, "league missing source_url or source_platform", "league_id", item.ID, "league", item.Name)
			result.Skipped++
			result.Leagues = append(result.Leagues, LeagueRunResult{
				LeagueID: item.ID,
				League:   item.Name,
				Status:   JobStatusSkipped,
				Message:  msgMissingSourceInfo,
			})
			continue
		}
		eligible = append(eligible, item)
	}

	runs, err := s.runPool(ctx, eligible)
	if err != nil {
		return BatchResult{}, err
	}

	for _, row := range runs {
		result.Attempted++
		if row.Status == JobStatusSuccess {
			result.Succeeded++
		} else {
			result.Failed++
		}
		result.Leagues = append(result.Leagues, row)
	}
	result.DurationMs = s.now().Sub(started).Milliseconds()

	s.logger.InfoContext(ctx, "reconcile batch completed",
		"league_count", result.LeagueCount,
		"attempted", result.Attempted,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
		"skipped", result.Skipped,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

func (s *JobOrchestratorService) runPool(ctx context.Context, leagues []league.League) ([]LeagueRunResult, error) {
	rows := make([]LeagueRunResult, len(leagues))
	if len(leagues) == 0 {
		return rows, nil
	}

	pool, err := ants.NewPool(min(s.cfg.Workers, len(leagues)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, item := range leagues {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			rows[i] = s.runLeague(ctx, item)
		}); err != nil {
			workers.Done()
			rows[i] = LeagueRunResult{
				LeagueID: item.ID,
				League:   item.Name,
				Status:   JobStatusError,
				Message:  fmt.Sprintf("submit to worker pool: %v", err),
			}
		}
	}
	workers.Wait()

	return rows, nil
}

// RunSingle reconciles one league by id. A failed cycle is reported in the
// result, not as an error.
func (s *JobOrchestratorService) RunSingle(ctx context.Context, leagueID int64) (JobResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobOrchestratorService.RunSingle", attrLeagueID.Int64(leagueID))
	defer span.End()

	if leagueID <= 0 {
		return JobResult{Status: JobStatusError, Message: "league id must be positive"},
			fmt.Errorf("%w: league id must be positive", ErrInvalidInput)
	}

	item, found, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return JobResult{}, fmt.Errorf("get league: %w", err)
	}
	if !found {
		s.logger.ErrorContext(ctx, "league not found", "league_id", leagueID)
		return JobResult{Status: JobStatusError, LeagueID: leagueID, Message: msgLeagueNotFound},
			fmt.Errorf("%w: league not found", ErrNotFound)
	}
	if !item.HasSource() {
		s.logger.ErrorContext(ctx, "league missing source_url or source_platform", "league_id", item.ID, "league", item.Name)
		return JobResult{Status: JobStatusError, LeagueID: item.ID, League: item.Name, Message: msgMissingSourceInfo},
			fmt.Errorf("%w: %s", ErrInvalidInput, msgMissingSourceInfo)
	}

	row := s.runLeague(ctx, item)
	if row.Status == JobStatusError {
		span.SetStatus(codes.Error, row.Message)
	}
	return JobResult{
		Status:   row.Status,
		LeagueID: row.LeagueID,
		League:   row.League,
		Message:  row.Message,
		Counts:   row.Counts,
	}, nil
}

// Enqueue hands a job to the queue for a worker process.
func (s *JobOrchestratorService) Enqueue(ctx context.Context, job Job) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobOrchestratorService.Enqueue")
	defer span.End()

	if err := validateJob(job); err != nil {
		return err
	}
	if job.RequestedAt.IsZero() {
		job.RequestedAt = s.now().UTC()
	}

	if err := s.queue.Enqueue(ctx, job); err != nil {
		return fmt.Errorf("enqueue %s job: %w", job.Kind, err)
	}
	s.logger.InfoContext(ctx, "reconcile job queued", "kind", job.Kind, "league_id", job.LeagueID)
	return nil
}

// HandleJob runs a dequeued job. Permanent failures such as an unknown
// league are logged and return nil so the message is not redelivered.
func (s *JobOrchestratorService) HandleJob(ctx context.Context, job Job) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobOrchestratorService.HandleJob",
		attrJobKind.String(string(job.Kind)), attrLeagueID.Int64(job.LeagueID))
	defer span.End()

	if err := validateJob(job); err != nil {
		s.logger.WarnContext(ctx, "discarding invalid job", "kind", job.Kind, "league_id", job.LeagueID, "error", err)
		return nil
	}

	switch job.Kind {
	case JobKindAll:
		_, err := s.RunBatch(ctx)
		return err
	default:
		result, err := s.RunSingle(ctx, job.LeagueID)
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidInput) {
			s.logger.WarnContext(ctx, "discarding league job", "league_id", job.LeagueID, "message", result.Message)
			return nil
		}
		return err
	}
}

func (s *JobOrchestratorService) runLeague(ctx context.Context, item league.League) LeagueRunResult {
	unlock := s.locks.Lock(strconv.FormatInt(item.ID, 10))
	defer unlock()

	if s.cfg.CycleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.CycleTimeout)
		defer cancel()
	}

	ctx = logging.ContextWith(ctx, "league_id", item.ID, "league", item.Name)
	started := s.now()
	row := LeagueRunResult{LeagueID: item.ID, League: item.Name}

	var (
		counts CycleResult
		runErr error
		pc     panics.Catcher
	)
	pc.Try(func() {
		counts, runErr = s.reconciler.ReconcileLeague(ctx, item.SourcePlatform, item.SourceURL)
	})
	if recovered := pc.Recovered(); recovered != nil {
		runErr = fmt.Errorf("%w: %w", ErrCycleFailed, recovered.AsError())
	}
	row.DurationMs = s.now().Sub(started).Milliseconds()

	if runErr != nil {
		s.logger.ErrorContext(ctx, "league reconcile failed", "error", runErr)
		row.Status = JobStatusError
		row.Message = runErr.Error()
		return row
	}

	s.logger.InfoContext(ctx, "league reconciled", "duration_ms", row.DurationMs)
	row.Status = JobStatusSuccess
	row.Counts = &counts
	return row
}

func validateJob(job Job) error {
	switch job.Kind {
	case JobKindAll:
		return nil
	case JobKindLeague:
		if job.LeagueID <= 0 {
			return fmt.Errorf("%w: league job requires a positive league_id", ErrInvalidInput)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown job kind %q", ErrInvalidInput, job.Kind)
	}
}
