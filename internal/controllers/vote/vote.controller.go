package voteController

import (
	"context"
	"errors"
	"time"

	"mealvote/config"
	"mealvote/internal/database"
	"mealvote/internal/logger"
	. "mealvote/internal/models"
	"mealvote/internal/repositories"
	"mealvote/internal/services"
	"mealvote/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)

type VoteController struct {
	voteRepo           repositories.VoteRepository
	pollRepo           repositories.VotePollRepository
	transactionService *services.TransactionService
	db                 database.DB
	loc                *time.Location
	Config             config.Config
}

type CastVoteRequest struct {
	DishID uuid.UUID `json:"dishId"`
}

type VoteControllerInterface interface {
	CastVote(ctx context.Context, user *User, request *CastVoteRequest) (*Vote, error)
	UpdateVote(ctx context.Context, user *User, request *CastVoteRequest) (*Vote, error)
	GetMyVote(ctx context.Context, user *User) (*Vote, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
	loc *time.Location,
) VoteControllerInterface {
	return &VoteController{
		voteRepo:           repos.Vote,
		pollRepo:           repos.VotePoll,
		transactionService: services.Transaction,
		db:                 db,
		loc:                loc,
		Config:             config,
	}
}

// openPollToday returns today's poll if it is accepting votes.
func (c *VoteController) openPollToday(ctx context.Context, log logger.Logger) (*VotePoll, error) {
	start, end := utils.DayRange(time.Now(), c.loc)
	polls, err := c.pollRepo.GetByVoteDateRange(ctx, c.db.SQL, start, end, PollStatusOpen)
	if err != nil {
		return nil, log.Err("failed to look up today's poll", err)
	}
	if len(polls) == 0 {
		return nil, log.ErrorWithType(ErrForbidden, "No poll open today.")
	}
	return polls[0], nil
}

func (c *VoteController) CastVote(
	ctx context.Context,
	user *User,
	request *CastVoteRequest,
) (*Vote, error) {
	log := logger.NewWithContext(ctx, "voteController").Function("CastVote")

	if request.DishID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "dishId is required")
	}

	poll, err := c.openPollToday(ctx, log)
	if err != nil {
		return nil, err
	}

	if !isCandidate(poll, request.DishID) {
		return nil, log.ErrorWithType(ErrValidation, "Invalid dish for today.")
	}

	// Fast path before the insert. The composite unique index still decides
	// the race between two concurrent casts.
	if _, err := c.voteRepo.GetByPollAndUser(ctx, c.db.SQL, poll.ID, user.ID); err == nil {
		return nil, log.ErrorWithType(ErrForbidden, "You already voted.")
	} else if err != gorm.ErrRecordNotFound {
		return nil, log.Err("failed to check existing vote", err, "pollID", poll.ID)
	}

	vote := &Vote{
		UserID:     user.ID,
		VotePollID: poll.ID,
		DishID:     request.DishID,
	}

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.voteRepo.Create(ctx, tx, vote)
	})
	if err != nil {
		// The composite unique index is the authority on duplicates, so two
		// concurrent casts can never both land.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, log.ErrorWithType(ErrForbidden, "You already voted.")
		}
		return nil, log.Err("failed to record vote", err, "pollID", poll.ID)
	}

	log.Info("Vote cast", "pollID", poll.ID, "dishID", request.DishID, "userID", user.ID)
	return vote, nil
}

func (c *VoteController) UpdateVote(
	ctx context.Context,
	user *User,
	request *CastVoteRequest,
) (*Vote, error) {
	log := logger.NewWithContext(ctx, "voteController").Function("UpdateVote")

	if request.DishID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "dishId is required")
	}

	poll, err := c.openPollToday(ctx, log)
	if err != nil {
		return nil, err
	}

	if !isCandidate(poll, request.DishID) {
		return nil, log.ErrorWithType(ErrValidation, "Invalid dish for today.")
	}

	vote, err := c.voteRepo.GetByPollAndUser(ctx, c.db.SQL, poll.ID, user.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, log.ErrorWithType(ErrNotFound, "You have not voted today.")
		}
		return nil, log.Err("failed to get existing vote", err, "pollID", poll.ID)
	}

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.voteRepo.UpdateDish(ctx, tx, vote.ID, request.DishID)
	})
	if err != nil {
		return nil, log.Err("failed to update vote", err, "voteID", vote.ID)
	}

	vote.DishID = request.DishID
	log.Info("Vote updated", "pollID", poll.ID, "dishID", request.DishID, "userID", user.ID)
	return vote, nil
}

func (c *VoteController) GetMyVote(ctx context.Context, user *User) (*Vote, error) {
	log := logger.NewWithContext(ctx, "voteController").Function("GetMyVote")

	start, end := utils.DayRange(time.Now(), c.loc)
	poll, err := c.pollRepo.GetByVoteDate(ctx, c.db.SQL, start, end)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, log.ErrorWithType(ErrNotFound, "No poll today.")
		}
		return nil, log.Err("failed to look up today's poll", err)
	}

	vote, err := c.voteRepo.GetByPollAndUser(ctx, c.db.SQL, poll.ID, user.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, log.ErrorWithType(ErrNotFound, "You have not voted today.")
		}
		return nil, log.Err("failed to get vote", err, "pollID", poll.ID)
	}

	return vote, nil
}

func isCandidate(poll *VotePoll, dishID uuid.UUID) bool {
	for _, candidate := range poll.Candidates {
		if candidate.DishID == dishID {
			return true
		}
	}
	return false
}
