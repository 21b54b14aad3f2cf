package pollController

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mealvote/config"
	"mealvote/internal/database"
	"mealvote/internal/logger"
	. "mealvote/internal/models"
	"mealvote/internal/repositories"
	"mealvote/internal/services"
	"mealvote/internal/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
)

type PollController struct {
	pollRepo           repositories.VotePollRepository
	dishRepo           repositories.DishRepository
	voteRepo           repositories.VoteRepository
	historyRepo        repositories.HistoryRepository
	transactionService *services.TransactionService
	db                 database.DB
	loc                *time.Location
	Config             config.Config
}

type SubmitPollRequest struct {
	MealDate string      `json:"mealDate"`
	DishIDs  []uuid.UUID `json:"dishIds"`
}

type EditPollRequest struct {
	DishIDs []uuid.UUID `json:"dishIds"`
}

type FinalizePollRequest struct {
	SelectedDishIDs []uuid.UUID `json:"selectedDishIds"`
}

type PollControllerInterface interface {
	SubmitPoll(ctx context.Context, user *User, request *SubmitPollRequest) (*VotePoll, error)
	EditPoll(
		ctx context.Context,
		user *User,
		pollID uuid.UUID,
		request *EditPollRequest,
	) (*VotePoll, error)
	DeletePoll(ctx context.Context, user *User, pollID uuid.UUID) error
	FinalizePoll(
		ctx context.Context,
		user *User,
		pollID uuid.UUID,
		request *FinalizePollRequest,
	) (*VotePoll, error)
	GetPendingPoll(ctx context.Context, date string) (*VotePoll, error)
	GetActivePolls(ctx context.Context) ([]*VotePoll, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
	loc *time.Location,
) PollControllerInterface {
	return &PollController{
		pollRepo:           repos.VotePoll,
		dishRepo:           repos.Dish,
		voteRepo:           repos.Vote,
		historyRepo:        repos.History,
		transactionService: services.Transaction,
		db:                 db,
		loc:                loc,
		Config:             config,
	}
}

// validateDishIDs checks that every id exists in the dish catalog and returns
// the ids that do not.
func (c *PollController) validateDishIDs(
	ctx context.Context,
	dishIDs []uuid.UUID,
) ([]uuid.UUID, error) {
	dishes, err := c.dishRepo.GetByIDs(ctx, c.db.SQL, dishIDs)
	if err != nil {
		return nil, err
	}

	found := make(map[uuid.UUID]bool, len(dishes))
	for _, dish := range dishes {
		found[dish.ID] = true
	}

	var missing []uuid.UUID
	for _, id := range dishIDs {
		if !found[id] {
			missing = append(missing, id)
		}
	}

	return missing, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func (c *PollController) SubmitPoll(
	ctx context.Context,
	user *User,
	request *SubmitPollRequest,
) (*VotePoll, error) {
	log := logger.NewWithContext(ctx, "pollController").Function("SubmitPoll")

	if len(request.DishIDs) == 0 {
		return nil, log.ErrorWithType(ErrValidation, "dishIds must not be empty")
	}

	mealDate, err := utils.ParseDateOnly(request.MealDate, c.loc)
	if err != nil {
		return nil, log.ErrorWithType(ErrValidation, "invalid mealDate", "error", err)
	}

	startOfToday := utils.StartOfDay(time.Now(), c.loc)
	if mealDate.Before(startOfToday) {
		return nil, log.ErrorWithType(ErrValidation, "mealDate must not be in the past")
	}

	voteDate := utils.VoteDateFor(mealDate)
	if voteDate.Before(startOfToday) {
		return nil, log.ErrorWithType(ErrValidation, "voteDate must not be in the past")
	}

	if _, err := c.pollRepo.GetByMealDate(ctx, c.db.SQL, mealDate); err == nil {
		return nil, log.ErrorWithType(ErrConflict,
			"a poll already exists for this mealDate", "mealDate", request.MealDate)
	} else if err != gorm.ErrRecordNotFound {
		return nil, log.Err("failed to check for existing poll", err)
	}

	dishIDs := dedupe(request.DishIDs)
	missing, err := c.validateDishIDs(ctx, dishIDs)
	if err != nil {
		return nil, log.Err("failed to validate dish ids", err)
	}
	if len(missing) > 0 {
		return nil, log.ErrorWithType(ErrNotFound,
			fmt.Sprintf("unknown dish ids: %v", missing))
	}

	candidates := make([]CandidateDish, 0, len(dishIDs))
	for _, dishID := range dishIDs {
		candidates = append(candidates, CandidateDish{DishID: dishID})
	}

	poll := &VotePoll{
		MealDate:    datatypes.Date(mealDate),
		VoteDate:    datatypes.Date(voteDate),
		Status:      PollStatusPending,
		CreatedByID: user.ID,
		Candidates:  candidates,
	}

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.pollRepo.Create(ctx, tx, poll)
	})
	if err != nil {
		// Two staff submitting the same mealDate can both pass the pre-check;
		// the unique index decides the winner.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, log.ErrorWithType(ErrConflict,
				"a poll already exists for this mealDate", "mealDate", request.MealDate)
		}
		return nil, log.Err("failed to create poll", err)
	}

	log.Info("Poll submitted",
		"pollID", poll.ID,
		"mealDate", request.MealDate,
		"candidates", len(candidates),
		"createdBy", user.ID,
	)

	return poll, nil
}

func (c *PollController) EditPoll(
	ctx context.Context,
	user *User,
	pollID uuid.UUID,
	request *EditPollRequest,
) (*VotePoll, error) {
	log := logger.NewWithContext(ctx, "pollController").Function("EditPoll")

	if len(request.DishIDs) == 0 {
		return nil, log.ErrorWithType(ErrValidation, "dishIds must not be empty")
	}

	poll, err := c.pollRepo.GetByID(ctx, c.db.SQL, pollID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, log.ErrorWithType(ErrNotFound, "poll not found")
		}
		return nil, log.Err("failed to get poll", err, "pollID", pollID)
	}

	// Voters must never see a ballot change under them: once a poll has
	// opened, its candidate set is frozen.
	if poll.Status != PollStatusPending {
		return nil, log.ErrorWithType(ErrForbidden,
			"only pending polls can be edited", "status", poll.Status)
	}

	dishIDs := dedupe(request.DishIDs)
	missing, err := c.validateDishIDs(ctx, dishIDs)
	if err != nil {
		return nil, log.Err("failed to validate dish ids", err)
	}
	if len(missing) > 0 {
		return nil, log.ErrorWithType(ErrNotFound,
			fmt.Sprintf("unknown dish ids: %v", missing))
	}

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.pollRepo.ReplaceCandidates(ctx, tx, pollID, dishIDs)
	})
	if err != nil {
		return nil, log.Err("failed to replace candidates", err, "pollID", pollID)
	}

	updated, err := c.pollRepo.GetByID(ctx, c.db.SQL, pollID)
	if err != nil {
		return nil, log.Err("failed to reload poll", err, "pollID", pollID)
	}

	log.Info("Poll edited", "pollID", pollID, "candidates", len(dishIDs))
	return updated, nil
}

func (c *PollController) DeletePoll(ctx context.Context, user *User, pollID uuid.UUID) error {
	log := logger.NewWithContext(ctx, "pollController").Function("DeletePoll")

	poll, err := c.pollRepo.GetByID(ctx, c.db.SQL, pollID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return log.ErrorWithType(ErrNotFound, "poll not found")
		}
		return log.Err("failed to get poll", err, "pollID", pollID)
	}

	if poll.Status != PollStatusPending {
		return log.ErrorWithType(ErrForbidden,
			"only pending polls can be deleted", "status", poll.Status)
	}

	if err := c.pollRepo.Delete(ctx, c.db.SQL, pollID); err != nil {
		return log.Err("failed to delete poll", err, "pollID", pollID)
	}

	log.Info("Poll deleted", "pollID", pollID, "deletedBy", user.ID)
	return nil
}

func (c *PollController) FinalizePoll(
	ctx context.Context,
	user *User,
	pollID uuid.UUID,
	request *FinalizePollRequest,
) (*VotePoll, error) {
	log := logger.NewWithContext(ctx, "pollController").Function("FinalizePoll")

	if len(request.SelectedDishIDs) == 0 {
		return nil, log.ErrorWithType(ErrValidation, "selectedDishIds must not be empty")
	}

	poll, err := c.pollRepo.GetByID(ctx, c.db.SQL, pollID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, log.ErrorWithType(ErrNotFound, "poll not found")
		}
		return nil, log.Err("failed to get poll", err, "pollID", pollID)
	}

	if poll.Status != PollStatusClose {
		return nil, log.ErrorWithType(ErrForbidden,
			"Only closed votePoll can be finalized", "status", poll.Status)
	}

	candidateDishes := make(map[uuid.UUID]bool, len(poll.Candidates))
	for _, candidate := range poll.Candidates {
		candidateDishes[candidate.DishID] = true
	}

	selected := dedupe(request.SelectedDishIDs)
	var invalid []uuid.UUID
	for _, dishID := range selected {
		if !candidateDishes[dishID] {
			invalid = append(invalid, dishID)
		}
	}
	if len(invalid) > 0 {
		return nil, log.ErrorWithType(ErrValidation,
			fmt.Sprintf("selected dishes are not candidates of this poll: %v", invalid))
	}

	counts, err := c.voteRepo.CountByPoll(ctx, c.db.SQL, pollID)
	if err != nil {
		return nil, log.Err("failed to tally votes", err, "pollID", pollID)
	}

	selectedSet := make(map[uuid.UUID]bool, len(selected))
	for _, dishID := range selected {
		selectedSet[dishID] = true
	}

	voteHistories := make([]VoteHistory, 0, len(poll.Candidates))
	candidateHistories := make([]CandidateDishHistory, 0, len(poll.Candidates))
	for _, candidate := range poll.Candidates {
		voteHistories = append(voteHistories, VoteHistory{
			MealDate:   poll.MealDate,
			VotePollID: poll.ID,
			DishID:     candidate.DishID,
			DishNameEN: candidate.Dish.NameEN,
			DishNameKM: candidate.Dish.NameKM,
			VoteCount:  counts[candidate.DishID],
		})
		candidateHistories = append(candidateHistories, CandidateDishHistory{
			MealDate:        poll.MealDate,
			VotePollID:      poll.ID,
			CandidateDishID: candidate.ID,
			DishID:          candidate.DishID,
			IsSelected:      selectedSet[candidate.DishID],
		})
	}

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := c.pollRepo.MarkSelected(ctx, tx, pollID, selected); err != nil {
			return err
		}
		if err := c.historyRepo.CreateVoteHistories(ctx, tx, voteHistories); err != nil {
			return err
		}
		if err := c.historyRepo.CreateCandidateHistories(ctx, tx, candidateHistories); err != nil {
			return err
		}

		updated, err := c.pollRepo.UpdateStatus(ctx, tx, pollID, PollStatusClose, PollStatusFinalized)
		if err != nil {
			return err
		}
		if !updated {
			// Another finalize won the race between our status read and this
			// guarded update.
			return ErrForbidden
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			return nil, log.ErrorWithType(ErrForbidden, "Only closed votePoll can be finalized")
		}
		return nil, log.Err("failed to finalize poll", err, "pollID", pollID)
	}

	if err := c.pollRepo.ClearUpcomingMealCache(ctx); err != nil {
		log.Warn("failed to clear upcoming meal cache", "error", err)
	}

	log.Info("Poll finalized",
		"pollID", pollID,
		"selectedDishes", len(selected),
		"finalizedBy", user.ID,
	)

	finalized, err := c.pollRepo.GetByID(ctx, c.db.SQL, pollID)
	if err != nil {
		return nil, log.Err("failed to reload finalized poll", err, "pollID", pollID)
	}

	return finalized, nil
}

func (c *PollController) GetPendingPoll(ctx context.Context, date string) (*VotePoll, error) {
	log := logger.NewWithContext(ctx, "pollController").Function("GetPendingPoll")

	day := time.Now()
	if date != "" {
		parsed, err := utils.ParseDateOnly(date, c.loc)
		if err != nil {
			return nil, log.ErrorWithType(ErrValidation, "invalid date", "error", err)
		}
		day = parsed
	}

	start, end := utils.DayRange(day, c.loc)
	polls, err := c.pollRepo.GetByVoteDateRange(ctx, c.db.SQL, start, end, PollStatusPending)
	if err != nil {
		return nil, log.Err("failed to get pending poll", err)
	}
	if len(polls) == 0 {
		return nil, log.ErrorWithType(ErrNotFound, "no pending poll for this date")
	}

	return polls[0], nil
}

func (c *PollController) GetActivePolls(ctx context.Context) ([]*VotePoll, error) {
	log := logger.NewWithContext(ctx, "pollController").Function("GetActivePolls")

	polls, err := c.pollRepo.GetActive(ctx, c.db.SQL)
	if err != nil {
		return nil, log.Err("failed to get active polls", err)
	}

	return polls, nil
}
