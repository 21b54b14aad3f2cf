package resultController

import (
	"context"
	"errors"
	"time"

	"mealvote/internal/database"
	"mealvote/internal/logger"
	. "mealvote/internal/models"
	"mealvote/internal/repositories"
	"mealvote/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

type ResultController struct {
	pollRepo    repositories.VotePollRepository
	voteRepo    repositories.VoteRepository
	historyRepo repositories.HistoryRepository
	db          database.DB
	loc         *time.Location
}

// DishResult is one row of a poll tally. Every candidate appears, zero-vote
// candidates included.
type DishResult struct {
	CandidateDishID uuid.UUID `json:"candidateDishId"`
	DishID          uuid.UUID `json:"dishId"`
	DishNameEN      string    `json:"dishNameEn"`
	DishNameKM      string    `json:"dishNameKm"`
	IsSelected      bool      `json:"isSelected"`
	VoteCount       int64     `json:"voteCount"`
}

type PollResult struct {
	PollID     uuid.UUID    `json:"pollId"`
	MealDate   string       `json:"mealDate"`
	Status     PollStatus   `json:"status"`
	TotalVotes int64        `json:"totalVotes"`
	Results    []DishResult `json:"results"`
}

type ResultControllerInterface interface {
	GetPollResult(ctx context.Context, pollID uuid.UUID) (*PollResult, error)
	GetTodayResult(ctx context.Context) (*PollResult, error)
	GetUpcomingMeal(ctx context.Context) (*VotePoll, error)
	GetHistory(ctx context.Context, date string) ([]*VoteHistory, error)
}

func New(repos repositories.Repository, db database.DB, loc *time.Location) ResultControllerInterface {
	return &ResultController{
		pollRepo:    repos.VotePoll,
		voteRepo:    repos.Vote,
		historyRepo: repos.History,
		db:          db,
		loc:         loc,
	}
}

// tally builds the per-dish counts for a poll. Counts are always computed
// from the vote ledger, never cached, so an in-flight poll shows live numbers.
func (c *ResultController) tally(ctx context.Context, poll *VotePoll) (*PollResult, error) {
	counts, err := c.voteRepo.CountByPoll(ctx, c.db.SQL, poll.ID)
	if err != nil {
		return nil, err
	}

	var total int64
	results := make([]DishResult, 0, len(poll.Candidates))
	for _, candidate := range poll.Candidates {
		count := counts[candidate.DishID]
		total += count
		results = append(results, DishResult{
			CandidateDishID: candidate.ID,
			DishID:          candidate.DishID,
			DishNameEN:      candidate.Dish.NameEN,
			DishNameKM:      candidate.Dish.NameKM,
			IsSelected:      candidate.IsSelected,
			VoteCount:       count,
		})
	}

	return &PollResult{
		PollID:     poll.ID,
		MealDate:   time.Time(poll.MealDate).Format(utils.DateOnlyFormat),
		Status:     poll.Status,
		TotalVotes: total,
		Results:    results,
	}, nil
}

func (c *ResultController) GetPollResult(ctx context.Context, pollID uuid.UUID) (*PollResult, error) {
	log := logger.NewWithContext(ctx, "resultController").Function("GetPollResult")

	poll, err := c.pollRepo.GetByID(ctx, c.db.SQL, pollID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, log.ErrorWithType(ErrNotFound, "poll not found")
		}
		return nil, log.Err("failed to get poll", err, "pollID", pollID)
	}

	result, err := c.tally(ctx, poll)
	if err != nil {
		return nil, log.Err("failed to tally poll", err, "pollID", pollID)
	}

	return result, nil
}

func (c *ResultController) GetTodayResult(ctx context.Context) (*PollResult, error) {
	log := logger.NewWithContext(ctx, "resultController").Function("GetTodayResult")

	start, end := utils.DayRange(time.Now(), c.loc)
	poll, err := c.pollRepo.GetByVoteDate(ctx, c.db.SQL, start, end)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, log.ErrorWithType(ErrNotFound, "No poll today.")
		}
		return nil, log.Err("failed to look up today's poll", err)
	}

	result, err := c.tally(ctx, poll)
	if err != nil {
		return nil, log.Err("failed to tally poll", err, "pollID", poll.ID)
	}

	return result, nil
}

// GetHistory returns the archived finalization snapshot for a meal date.
// History rows are written once at finalization and never change, unlike the
// live tallies above.
func (c *ResultController) GetHistory(ctx context.Context, date string) ([]*VoteHistory, error) {
	log := logger.NewWithContext(ctx, "resultController").Function("GetHistory")

	day, err := utils.ParseDateOnly(date, c.loc)
	if err != nil {
		return nil, log.ErrorWithType(ErrValidation, "invalid date", "error", err)
	}

	rows, err := c.historyRepo.GetVoteHistoryByMealDate(ctx, c.db.SQL, day)
	if err != nil {
		return nil, log.Err("failed to get vote history", err, "date", date)
	}
	if len(rows) == 0 {
		return nil, log.ErrorWithType(ErrNotFound, "no finalized poll for this date")
	}

	return rows, nil
}

func (c *ResultController) GetUpcomingMeal(ctx context.Context) (*VotePoll, error) {
	log := logger.NewWithContext(ctx, "resultController").Function("GetUpcomingMeal")

	poll, err := c.pollRepo.GetUpcomingMeal(ctx, c.db.SQL)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, log.ErrorWithType(ErrNotFound, "No finalized meal yet.")
		}
		return nil, log.Err("failed to get upcoming meal", err)
	}

	return poll, nil
}
