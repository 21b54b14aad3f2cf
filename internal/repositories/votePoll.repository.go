package repositories

import (
	"context"
	"time"

	"mealvote/internal/database"
	"mealvote/internal/logger"
	. "mealvote/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	UPCOMING_MEAL_CACHE_KEY    = "upcoming_meal"
	UPCOMING_MEAL_CACHE_EXPIRY = 24 * time.Hour
)

type VotePollRepository interface {
	Create(ctx context.Context, tx *gorm.DB, poll *VotePoll) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*VotePoll, error)
	GetByMealDate(ctx context.Context, tx *gorm.DB, mealDate time.Time) (*VotePoll, error)
	// GetByVoteDate returns the poll whose voteDate falls in [start, end),
	// regardless of status.
	GetByVoteDate(ctx context.Context, tx *gorm.DB, start, end time.Time) (*VotePoll, error)
	// GetByVoteDateRange returns polls whose voteDate falls in [start, end)
	// with the given status, oldest first.
	GetByVoteDateRange(
		ctx context.Context,
		tx *gorm.DB,
		start, end time.Time,
		status PollStatus,
	) ([]*VotePoll, error)
	GetActive(ctx context.Context, tx *gorm.DB) ([]*VotePoll, error)
	// UpdateStatus flips the poll from exactly the expected prior status.
	// Returns false without error when the poll was not in that status, which
	// makes repeated scheduler runs no-ops.
	UpdateStatus(
		ctx context.Context,
		tx *gorm.DB,
		pollID uuid.UUID,
		from, to PollStatus,
	) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error

	ReplaceCandidates(ctx context.Context, tx *gorm.DB, pollID uuid.UUID, dishIDs []uuid.UUID) error
	MarkSelected(ctx context.Context, tx *gorm.DB, pollID uuid.UUID, dishIDs []uuid.UUID) error

	GetUpcomingMeal(ctx context.Context, tx *gorm.DB) (*VotePoll, error)
	ClearUpcomingMealCache(ctx context.Context) error
}

type votePollRepository struct {
	cache database.CacheClient
}

func NewVotePollRepository(cache database.CacheClient) VotePollRepository {
	return &votePollRepository{cache: cache}
}

func (r *votePollRepository) Create(ctx context.Context, tx *gorm.DB, poll *VotePoll) error {
	log := logger.NewWithContext(ctx, "votePollRepository").Function("Create")

	if err := tx.WithContext(ctx).Create(poll).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return err
		}
		return log.Err("failed to create vote poll", err)
	}

	return nil
}

func (r *votePollRepository) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
) (*VotePoll, error) {
	log := logger.NewWithContext(ctx, "votePollRepository").Function("GetByID")

	var poll VotePoll
	err := tx.WithContext(ctx).
		Preload("Candidates").
		Preload("Candidates.Dish").
		First(&poll, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, log.Err("failed to get vote poll", err, "pollID", id)
	}

	return &poll, nil
}

func (r *votePollRepository) GetByMealDate(
	ctx context.Context,
	tx *gorm.DB,
	mealDate time.Time,
) (*VotePoll, error) {
	log := logger.NewWithContext(ctx, "votePollRepository").Function("GetByMealDate")

	var poll VotePoll
	err := tx.WithContext(ctx).
		Where("meal_date = ?", datatypes.Date(mealDate)).
		First(&poll).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, log.Err("failed to get vote poll by meal date", err)
	}

	return &poll, nil
}

func (r *votePollRepository) GetByVoteDate(
	ctx context.Context,
	tx *gorm.DB,
	start, end time.Time,
) (*VotePoll, error) {
	log := logger.NewWithContext(ctx, "votePollRepository").Function("GetByVoteDate")

	var poll VotePoll
	err := tx.WithContext(ctx).
		Preload("Candidates").
		Preload("Candidates.Dish").
		Where("vote_date >= ? AND vote_date < ?", datatypes.Date(start), datatypes.Date(end)).
		Order("created_at ASC").
		First(&poll).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, log.Err("failed to get vote poll by vote date", err)
	}

	return &poll, nil
}

func (r *votePollRepository) GetByVoteDateRange(
	ctx context.Context,
	tx *gorm.DB,
	start, end time.Time,
	status PollStatus,
) ([]*VotePoll, error) {
	log := logger.NewWithContext(ctx, "votePollRepository").Function("GetByVoteDateRange")

	var polls []*VotePoll
	err := tx.WithContext(ctx).
		Preload("Candidates").
		Preload("Candidates.Dish").
		Where("vote_date >= ? AND vote_date < ? AND status = ?",
			datatypes.Date(start), datatypes.Date(end), status).
		Order("created_at ASC").
		Find(&polls).Error
	if err != nil {
		return nil, log.Err("failed to get vote polls by vote date range", err, "status", status)
	}

	return polls, nil
}

func (r *votePollRepository) GetActive(ctx context.Context, tx *gorm.DB) ([]*VotePoll, error) {
	log := logger.NewWithContext(ctx, "votePollRepository").Function("GetActive")

	var polls []*VotePoll
	err := tx.WithContext(ctx).
		Preload("Candidates").
		Preload("Candidates.Dish").
		Where("status <> ?", PollStatusFinalized).
		Order("meal_date ASC").
		Find(&polls).Error
	if err != nil {
		return nil, log.Err("failed to get active vote polls", err)
	}

	return polls, nil
}

func (r *votePollRepository) UpdateStatus(
	ctx context.Context,
	tx *gorm.DB,
	pollID uuid.UUID,
	from, to PollStatus,
) (bool, error) {
	log := logger.NewWithContext(ctx, "votePollRepository").Function("UpdateStatus")

	if !from.CanTransitionTo(to) {
		return false, log.Error("illegal poll status transition",
			"pollID", pollID, "from", from, "to", to)
	}

	result := tx.WithContext(ctx).
		Model(&VotePoll{}).
		Where("id = ? AND status = ?", pollID, from).
		Update("status", to)
	if result.Error != nil {
		return false, log.Err("failed to update poll status", result.Error,
			"pollID", pollID, "from", from, "to", to)
	}

	return result.RowsAffected > 0, nil
}

func (r *votePollRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	log := logger.NewWithContext(ctx, "votePollRepository").Function("Delete")

	// Votes never exist for a pending poll, the only state deletion is
	// allowed in, so only the candidate rows cascade. The delete is
	// unscoped: a soft-deleted row would keep holding the mealDate
	// unique index slot and block resubmitting the same date.
	err := tx.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&CandidateDish{}, "vote_poll_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Unscoped().Delete(&VotePoll{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return err
		}
		return log.Err("failed to delete vote poll", err, "pollID", id)
	}

	return nil
}

func (r *votePollRepository) ReplaceCandidates(
	ctx context.Context,
	tx *gorm.DB,
	pollID uuid.UUID,
	dishIDs []uuid.UUID,
) error {
	log := logger.NewWithContext(ctx, "votePollRepository").Function("ReplaceCandidates")

	candidates := make([]CandidateDish, 0, len(dishIDs))
	for _, dishID := range dishIDs {
		candidates = append(candidates, CandidateDish{VotePollID: pollID, DishID: dishID})
	}

	err := tx.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&CandidateDish{}, "vote_poll_id = ?", pollID).Error; err != nil {
			return err
		}
		return tx.Create(&candidates).Error
	})
	if err != nil {
		return log.Err("failed to replace candidate dishes", err, "pollID", pollID)
	}

	return nil
}

func (r *votePollRepository) MarkSelected(
	ctx context.Context,
	tx *gorm.DB,
	pollID uuid.UUID,
	dishIDs []uuid.UUID,
) error {
	log := logger.NewWithContext(ctx, "votePollRepository").Function("MarkSelected")

	err := tx.WithContext(ctx).
		Model(&CandidateDish{}).
		Where("vote_poll_id = ? AND dish_id IN ?", pollID, dishIDs).
		Update("is_selected", true).Error
	if err != nil {
		return log.Err("failed to mark selected candidates", err, "pollID", pollID)
	}

	return nil
}

func (r *votePollRepository) GetUpcomingMeal(ctx context.Context, tx *gorm.DB) (*VotePoll, error) {
	log := logger.NewWithContext(ctx, "votePollRepository").Function("GetUpcomingMeal")

	var cached VotePoll
	found, err := database.NewCacheBuilder(r.cache, UPCOMING_MEAL_CACHE_KEY).
		WithContext(ctx).
		Get(&cached)
	if err != nil {
		log.Warn("failed to get upcoming meal from cache", "error", err)
	}
	if found {
		return &cached, nil
	}

	var poll VotePoll
	err = tx.WithContext(ctx).
		Preload("Candidates", "is_selected = ?", true).
		Preload("Candidates.Dish").
		Where("status = ?", PollStatusFinalized).
		Order("meal_date DESC").
		First(&poll).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, log.Err("failed to get upcoming meal", err)
	}

	err = database.NewCacheBuilder(r.cache, UPCOMING_MEAL_CACHE_KEY).
		WithContext(ctx).
		WithStruct(poll).
		WithTTL(UPCOMING_MEAL_CACHE_EXPIRY).
		Set()
	if err != nil {
		log.Warn("failed to cache upcoming meal", "error", err)
	}

	return &poll, nil
}

func (r *votePollRepository) ClearUpcomingMealCache(ctx context.Context) error {
	return database.NewCacheBuilder(r.cache, UPCOMING_MEAL_CACHE_KEY).
		WithContext(ctx).
		Delete()
}
