package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJob struct {
	name     string
	schedule Schedule
	executed chan struct{}
}

func (j *stubJob) Name() string       { return j.name }
func (j *stubJob) Schedule() Schedule { return j.schedule }
func (j *stubJob) Execute(ctx context.Context) error {
	close(j.executed)
	return nil
}

func newTestScheduler(t *testing.T) *SchedulerService {
	t.Helper()
	return NewSchedulerService(time.UTC, "07:00", "16:00")
}

func TestAddJob(t *testing.T) {
	scheduler := newTestScheduler(t)

	job := &stubJob{name: "open", schedule: DailyOpen, executed: make(chan struct{})}
	require.NoError(t, scheduler.AddJob(job))
	assert.Equal(t, 1, scheduler.GetJobCount())
}

func TestStart_NoJobsIsNoop(t *testing.T) {
	scheduler := newTestScheduler(t)

	require.NoError(t, scheduler.Start(context.Background()))
	assert.False(t, scheduler.IsRunning())
}

func TestStartStop(t *testing.T) {
	scheduler := newTestScheduler(t)

	job := &stubJob{name: "close", schedule: DailyClose, executed: make(chan struct{})}
	require.NoError(t, scheduler.AddJob(job))

	require.NoError(t, scheduler.Start(context.Background()))
	assert.True(t, scheduler.IsRunning())

	// Starting twice is safe.
	require.NoError(t, scheduler.Start(context.Background()))

	require.NoError(t, scheduler.Stop(context.Background()))
	assert.False(t, scheduler.IsRunning())

	// Stopping twice is safe.
	require.NoError(t, scheduler.Stop(context.Background()))
}

func TestTriggerJobByName(t *testing.T) {
	scheduler := newTestScheduler(t)

	job := &stubJob{name: "open", schedule: DailyOpen, executed: make(chan struct{})}
	require.NoError(t, scheduler.AddJob(job))

	require.NoError(t, scheduler.TriggerJobByName(context.Background(), "open"))

	select {
	case <-job.executed:
	case <-time.After(2 * time.Second):
		t.Fatal("job was not executed")
	}
}

func TestTriggerJobByName_UnknownJob(t *testing.T) {
	scheduler := newTestScheduler(t)

	err := scheduler.TriggerJobByName(context.Background(), "missing")
	assert.Error(t, err)
}
