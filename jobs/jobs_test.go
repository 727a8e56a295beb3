package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jobmetrics "github.com/zainulsyai/eko-hajj/internal/jobs"
)

type stubWarmer struct {
	calls int
	err   error
}

func (s *stubWarmer) Warm(ctx context.Context) (int, error) {
	s.calls++
	if s.err != nil {
		return 2, s.err
	}
	return 8, nil
}

type stubResetter struct {
	confirmed []bool
	err       error
}

func (s *stubResetter) Reset(ctx context.Context, confirm bool) error {
	s.confirmed = append(s.confirmed, confirm)
	return s.err
}

func TestNewWarmupTaskDefaultsReason(t *testing.T) {
	task, err := NewWarmupTask("")
	require.NoError(t, err)
	assert.Equal(t, TaskDashboardWarmup, task.Type())

	var payload WarmupPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "schedule", payload.Reason)
}

func TestWarmupJobHandle(t *testing.T) {
	warmer := &stubWarmer{}
	job := NewWarmupJob(warmer, nil, jobmetrics.NewMetrics(prometheus.NewRegistry()))
	task, err := NewWarmupTask("reset")
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))
	assert.Equal(t, 1, warmer.calls)

	warmer.err = errors.New("redis down")
	assert.ErrorIs(t, job.Handle(context.Background(), task), warmer.err)
}

func TestWarmupJobRejectsBadPayload(t *testing.T) {
	job := NewWarmupJob(&stubWarmer{}, nil, nil)
	err := job.Handle(context.Background(), asynq.NewTask(TaskDashboardWarmup, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	var unconfigured *WarmupJob
	assert.Error(t, unconfigured.Handle(context.Background(), asynq.NewTask(TaskDashboardWarmup, nil)))
}

func TestReseedJobHandle(t *testing.T) {
	store := &stubResetter{}
	job := NewReseedJob(store, nil, jobmetrics.NewMetrics(prometheus.NewRegistry()))
	task, err := NewReseedTask()
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))
	assert.Equal(t, []bool{true}, store.confirmed)

	unconfirmed, err := json.Marshal(ReseedPayload{})
	require.NoError(t, err)
	err = job.Handle(context.Background(), asynq.NewTask(TaskReseed, unconfirmed))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Len(t, store.confirmed, 1)
}

func TestNilClientIsNoop(t *testing.T) {
	var client *Client
	assert.NoError(t, client.EnqueueWarmup(context.Background()))
	assert.NoError(t, client.Close())
}

func TestHealthWithoutInspector(t *testing.T) {
	router := chi.NewRouter()
	router.Route("/jobs", NewHandler(nil, nil).MountRoutes)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/jobs/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var body queueHealth
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, QueueDefault, body.Queue)
	assert.Zero(t, body.Pending)
}
