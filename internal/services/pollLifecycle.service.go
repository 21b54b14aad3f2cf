package services

import (
	"context"
	"time"

	"mealvote/internal/database"
	"mealvote/internal/logger"
	"mealvote/internal/models"
	"mealvote/internal/repositories"
	"mealvote/internal/utils"
)

// PollLifecycleService performs the time-driven poll transitions. Voting
// windows open and close for everyone at once, whether or not anyone is using
// the system at that moment, so these run from the scheduler rather than
// lazily on request.
type PollLifecycleService struct {
	pollRepo repositories.VotePollRepository
	db       database.DB
	loc      *time.Location
	log      logger.Logger
}

func NewPollLifecycleService(
	pollRepo repositories.VotePollRepository,
	db database.DB,
	loc *time.Location,
) *PollLifecycleService {
	return &PollLifecycleService{
		pollRepo: pollRepo,
		db:       db,
		loc:      loc,
		log:      logger.New("pollLifecycleService"),
	}
}

// OpenTodaysPolls flips polls whose voteDate is today from pending to open.
// A no-op when nothing matches, so running it twice in one day is safe: the
// second run finds no pending poll.
func (s *PollLifecycleService) OpenTodaysPolls(ctx context.Context) error {
	return s.transitionTodaysPolls(ctx, models.PollStatusPending, models.PollStatusOpen)
}

// CloseTodaysPolls flips polls whose voteDate is today from open to close.
func (s *PollLifecycleService) CloseTodaysPolls(ctx context.Context) error {
	return s.transitionTodaysPolls(ctx, models.PollStatusOpen, models.PollStatusClose)
}

func (s *PollLifecycleService) transitionTodaysPolls(
	ctx context.Context,
	from, to models.PollStatus,
) error {
	log := s.log.Function("transitionTodaysPolls").With("from", from, "to", to)

	start, end := utils.DayRange(time.Now(), s.loc)

	polls, err := s.pollRepo.GetByVoteDateRange(ctx, s.db.SQL, start, end, from)
	if err != nil {
		return log.Err("failed to look up today's polls", err)
	}

	if len(polls) == 0 {
		log.Info("No matching poll for today, nothing to do")
		return nil
	}

	// The one-poll-per-mealDate invariant means at most one poll should match.
	// If data corruption ever produces more, process each in creation order
	// rather than failing.
	if len(polls) > 1 {
		log.Warn("More than one poll matched today's vote date", "count", len(polls))
	}

	for _, poll := range polls {
		updated, err := s.pollRepo.UpdateStatus(ctx, s.db.SQL, poll.ID, from, to)
		if err != nil {
			return log.Err("failed to transition poll", err, "pollID", poll.ID)
		}
		if !updated {
			log.Info("Poll already transitioned, skipping", "pollID", poll.ID)
			continue
		}
		log.Info("Poll transitioned", "pollID", poll.ID, "status", to)
	}

	return nil
}
