package jobs

import (
	"context"

	"mealvote/internal/logger"
	"mealvote/internal/services"
)

// ClosePollJob moves today's open poll to close at the configured time,
// locking the ballot until staff finalize it.
type ClosePollJob struct {
	lifecycle *services.PollLifecycleService
	log       logger.Logger
	schedule  services.Schedule
}

func NewClosePollJob(
	lifecycle *services.PollLifecycleService,
	schedule services.Schedule,
) *ClosePollJob {
	return &ClosePollJob{
		lifecycle: lifecycle,
		log:       logger.New("closePollJob"),
		schedule:  schedule,
	}
}

func (j *ClosePollJob) Name() string {
	return "CloseTodaysPoll"
}

func (j *ClosePollJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	log.Info("Closing today's poll")
	if err := j.lifecycle.CloseTodaysPolls(ctx); err != nil {
		return log.Err("failed to close today's poll", err)
	}

	return nil
}

func (j *ClosePollJob) Schedule() services.Schedule {
	return j.schedule
}
