// Package cli holds the queue operations behind the ekohajjctl commands.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/zainulsyai/eko-hajj/jobs"
)

// Short job names accepted on the command line.
const (
	JobWarmup = "warmup"
	JobReseed = "reseed"
)

var errNotConnected = errors.New("ekohajjctl: queue not connected")

// Operator enqueues and inspects tasks on the worker queue.
type Operator struct {
	queue     string
	client    *asynq.Client
	inspector *asynq.Inspector
}

// Dial connects an Operator to the Redis backing the worker queue.
func Dial(redisAddr string) (*Operator, error) {
	if redisAddr == "" {
		return nil, errors.New("ekohajjctl: redis address required")
	}
	opt := asynq.RedisClientOpt{Addr: redisAddr}
	return &Operator{
		queue:     jobs.QueueDefault,
		client:    asynq.NewClient(opt),
		inspector: asynq.NewInspector(opt),
	}, nil
}

// Close shuts both connections.
func (o *Operator) Close() error {
	if o == nil {
		return nil
	}
	var errs []error
	if o.inspector != nil {
		errs = append(errs, o.inspector.Close())
	}
	if o.client != nil {
		errs = append(errs, o.client.Close())
	}
	return errors.Join(errs...)
}

// BuildTask resolves a short name or full task type.
func BuildTask(name string) (*asynq.Task, error) {
	switch name {
	case JobWarmup, jobs.TaskDashboardWarmup:
		return jobs.NewWarmupTask("manual")
	case JobReseed, jobs.TaskReseed:
		return jobs.NewReseedTask()
	}
	return nil, fmt.Errorf("ekohajjctl: unsupported job %q", name)
}

// Trigger enqueues the named job now.
func (o *Operator) Trigger(ctx context.Context, name string) (*asynq.TaskInfo, error) {
	if o == nil || o.client == nil {
		return nil, errNotConnected
	}
	task, err := BuildTask(name)
	if err != nil {
		return nil, err
	}
	info, err := o.client.EnqueueContext(ctx, task, asynq.Queue(o.queue), asynq.MaxRetry(3))
	if err != nil {
		return nil, fmt.Errorf("ekohajjctl: enqueue %s: %w", task.Type(), err)
	}
	return info, nil
}

// QueueStats are the counters printed by "jobs stats".
type QueueStats struct {
	Queue     string
	Pending   int
	Active    int
	Scheduled int
	Retry     int
}

// Stats reads the queue counters. A queue that never received a task
// reports zeros.
func (o *Operator) Stats(context.Context) (QueueStats, error) {
	if o == nil || o.inspector == nil {
		return QueueStats{}, errNotConnected
	}
	stats := QueueStats{Queue: o.queue}
	info, err := o.inspector.GetQueueInfo(o.queue)
	switch {
	case errors.Is(err, asynq.ErrQueueNotFound):
		return stats, nil
	case err != nil:
		return QueueStats{}, fmt.Errorf("ekohajjctl: queue info: %w", err)
	}
	stats.Pending, stats.Active = info.Pending, info.Active
	stats.Scheduled, stats.Retry = info.Scheduled, info.Retry
	return stats, nil
}

// Scheduled lists the first page of scheduled tasks.
func (o *Operator) Scheduled(_ context.Context, size int) ([]*asynq.TaskInfo, error) {
	if o == nil || o.inspector == nil {
		return nil, errNotConnected
	}
	if size <= 0 {
		size = 10
	}
	return o.inspector.ListScheduledTasks(o.queue, asynq.PageSize(size), asynq.Page(1))
}
