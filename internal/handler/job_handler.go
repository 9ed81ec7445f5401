package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chriscconte/cycling-coach/internal/service/orchestrator"
)

type JobRunner interface {
	Run(ctx context.Context, job orchestrator.Job, now time.Time) (*orchestrator.RunResult, error)
}

// JobHandler is the entry point for the periodic host. Each call is one job run.
type JobHandler struct {
	runner JobRunner
}

func NewJobHandler(runner JobRunner) *JobHandler {
	return &JobHandler{
		runner: runner,
	}
}

func (h *JobHandler) HandleRun(c *gin.Context) {
	ctx := c.Request.Context()

	job, err := orchestrator.ParseJob(c.Param("job"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_job", err.Error())
		return
	}

	var now time.Time
	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "invalid from time format, expected RFC3339")
			return
		}
		now = parsed
		slog.InfoContext(ctx, "using virtual time",
			slog.Time("virtual_now", now),
		)
	}

	result, err := h.runner.Run(ctx, job, now)
	if err != nil {
		if errors.Is(err, orchestrator.ErrRunFailed) && result != nil {
			c.JSON(http.StatusInternalServerError, result)
			return
		}
		slog.ErrorContext(ctx, "job run errored",
			slog.String("job", job.String()),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "job run failed")
		return
	}

	c.JSON(http.StatusOK, result)
}
