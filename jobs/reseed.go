package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/zainulsyai/eko-hajj/internal/jobs"
)

// Resetter restores seed data.
type Resetter interface {
	Reset(ctx context.Context, confirm bool) error
}

// ReseedJob restores the demo dataset on a schedule.
type ReseedJob struct {
	Store   Resetter
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewReseedJob wires dependencies for the reseed handler.
func NewReseedJob(store Resetter, logger *slog.Logger, metrics *jobmetrics.Metrics) *ReseedJob {
	return &ReseedJob{Store: store, Logger: logger, Metrics: metrics}
}

// Handle processes TaskReseed tasks. Unconfirmed payloads are dropped.
func (j *ReseedJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Store == nil {
		return errors.New("reseed: handler not configured")
	}
	var payload ReseedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil || !payload.Confirm {
		return asynq.SkipRetry
	}

	metrics := j.Metrics
	if metrics == nil {
		metrics = defaultJobMetrics
	}
	tracker := metrics.Track(TaskReseed)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := jobLogger(j.Logger, TaskReseed)
	if err := j.Store.Reset(ctx, true); err != nil {
		logger.Error("reseed collections", slog.Any("error", err))
		return err
	}
	logger.Info("collections reseeded")
	return nil
}
