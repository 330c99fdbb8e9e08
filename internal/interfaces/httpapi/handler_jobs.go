package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/league-stats/internal/config"
	"github.com/riskibarqy/league-stats/internal/usecase"
)

func (h *Handler) RunReconcileAllJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.RunReconcileAllJob")
	defer span.End()

	if h.jobOrchestrator == nil {
		writeError(ctx, w, fmt.Errorf("%w: job orchestrator is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	if h.jobTriggerMode == config.JobTriggerQueue {
		if err := h.jobOrchestrator.Enqueue(ctx, usecase.Job{Kind: usecase.JobKindAll}); err != nil {
			h.logger.WarnContext(ctx, "enqueue reconcile-all job failed", "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusAccepted, queuedDTO{Status: usecase.JobStatusQueued, Kind: string(usecase.JobKindAll)})
		return
	}

	result, err := h.jobOrchestrator.RunBatch(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run reconcile-all job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunReconcileLeagueJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.RunReconcileLeagueJob")
	defer span.End()

	if h.jobOrchestrator == nil {
		writeError(ctx, w, fmt.Errorf("%w: job orchestrator is not configured", usecase.ErrDependencyUnavailable))
		return
	}
	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if h.jobTriggerMode == config.JobTriggerQueue {
		job := usecase.Job{Kind: usecase.JobKindLeague, LeagueID: leagueID}
		if err := h.jobOrchestrator.Enqueue(ctx, job); err != nil {
			h.logger.WarnContext(ctx, "enqueue league job failed", "league_id", leagueID, "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusAccepted, queuedDTO{
			Status:   usecase.JobStatusQueued,
			Kind:     string(usecase.JobKindLeague),
			LeagueID: leagueID,
		})
		return
	}

	result, err := h.jobOrchestrator.RunSingle(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "run league job failed", "league_id", leagueID, "message", result.Message, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
