package jobs

import (
	"context"

	"mealvote/internal/logger"
	"mealvote/internal/services"
)

// OpenPollJob moves today's pending poll to open at the configured time.
type OpenPollJob struct {
	lifecycle *services.PollLifecycleService
	log       logger.Logger
	schedule  services.Schedule
}

func NewOpenPollJob(
	lifecycle *services.PollLifecycleService,
	schedule services.Schedule,
) *OpenPollJob {
	return &OpenPollJob{
		lifecycle: lifecycle,
		log:       logger.New("openPollJob"),
		schedule:  schedule,
	}
}

func (j *OpenPollJob) Name() string {
	return "OpenTodaysPoll"
}

func (j *OpenPollJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	log.Info("Opening today's poll")
	if err := j.lifecycle.OpenTodaysPolls(ctx); err != nil {
		return log.Err("failed to open today's poll", err)
	}

	return nil
}

func (j *OpenPollJob) Schedule() services.Schedule {
	return j.schedule
}
