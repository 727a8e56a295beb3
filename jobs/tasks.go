package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDashboardWarmup recomputes the cached dashboard and visualization pages.
	TaskDashboardWarmup = "monitoring:dashboard_warmup"
	// TaskReseed restores the seed data of every collection.
	TaskReseed = "monitoring:reseed"
)

// WarmupPayload describes why a warmup was requested.
type WarmupPayload struct {
	Reason string `json:"reason"`
}

// ReseedPayload carries the scheduler's confirmation for a reseed.
type ReseedPayload struct {
	Confirm bool `json:"confirm"`
}

// NewWarmupTask constructs a dashboard warmup task.
func NewWarmupTask(reason string) (*asynq.Task, error) {
	if reason == "" {
		reason = "schedule"
	}
	data, err := json.Marshal(WarmupPayload{Reason: reason})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDashboardWarmup, data), nil
}

// NewReseedTask constructs a confirmed reseed task.
func NewReseedTask() (*asynq.Task, error) {
	data, err := json.Marshal(ReseedPayload{Confirm: true})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReseed, data), nil
}
