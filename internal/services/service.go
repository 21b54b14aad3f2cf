package services

import (
	"time"

	"mealvote/config"
	"mealvote/internal/database"
	"mealvote/internal/repositories"
)

type Service struct {
	Auth          *AuthService
	Transaction   *TransactionService
	Scheduler     *SchedulerService
	PollLifecycle *PollLifecycleService
}

func New(
	db database.DB,
	config config.Config,
	repos repositories.Repository,
	loc *time.Location,
) (Service, error) {
	authService, err := NewAuthService(config)
	if err != nil {
		return Service{}, err
	}

	transactionService := NewTransactionService(db)
	schedulerService := NewSchedulerService(loc, config.PollOpenAt, config.PollCloseAt)
	pollLifecycleService := NewPollLifecycleService(repos.VotePoll, db, loc)

	return Service{
		Auth:          authService,
		Transaction:   transactionService,
		Scheduler:     schedulerService,
		PollLifecycle: pollLifecycleService,
	}, nil
}
