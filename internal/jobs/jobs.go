package jobs

import (
	"mealvote/config"
	"mealvote/internal/logger"
	"mealvote/internal/services"
)

// Import schedule constants
const (
	DailyOpen  = services.DailyOpen
	DailyClose = services.DailyClose
)

// RegisterAllJobs wires the daily poll transitions into the scheduler.
func RegisterAllJobs(
	schedulerService *services.SchedulerService,
	config config.Config,
	services services.Service,
) error {
	log := logger.New("jobs").Function("RegisterAllJobs")

	if !config.SchedulerEnabled {
		log.Info("Scheduler disabled, skipping job registration")
		return nil
	}

	openPollJob := NewOpenPollJob(services.PollLifecycle, DailyOpen)
	if err := schedulerService.AddJob(openPollJob); err != nil {
		return log.Err("failed to register open-poll job", err)
	}
	log.Info("Registered open-poll job", "at", config.PollOpenAt)

	closePollJob := NewClosePollJob(services.PollLifecycle, DailyClose)
	if err := schedulerService.AddJob(closePollJob); err != nil {
		return log.Err("failed to register close-poll job", err)
	}
	log.Info("Registered close-poll job", "at", config.PollCloseAt)

	return nil
}
