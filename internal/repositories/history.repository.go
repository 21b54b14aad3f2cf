package repositories

import (
	"context"
	"time"

	"mealvote/internal/logger"
	. "mealvote/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HistoryRepository writes and reads the append-only finalization audit trail.
type HistoryRepository interface {
	CreateVoteHistories(ctx context.Context, tx *gorm.DB, rows []VoteHistory) error
	CreateCandidateHistories(ctx context.Context, tx *gorm.DB, rows []CandidateDishHistory) error
	GetVoteHistoryByMealDate(
		ctx context.Context,
		tx *gorm.DB,
		mealDate time.Time,
	) ([]*VoteHistory, error)
}

type historyRepository struct{}

func NewHistoryRepository() HistoryRepository {
	return &historyRepository{}
}

func (r *historyRepository) CreateVoteHistories(
	ctx context.Context,
	tx *gorm.DB,
	rows []VoteHistory,
) error {
	log := logger.NewWithContext(ctx, "historyRepository").Function("CreateVoteHistories")

	if len(rows) == 0 {
		return nil
	}

	if err := tx.WithContext(ctx).Create(&rows).Error; err != nil {
		return log.Err("failed to create vote histories", err, "count", len(rows))
	}

	return nil
}

func (r *historyRepository) CreateCandidateHistories(
	ctx context.Context,
	tx *gorm.DB,
	rows []CandidateDishHistory,
) error {
	log := logger.NewWithContext(ctx, "historyRepository").Function("CreateCandidateHistories")

	if len(rows) == 0 {
		return nil
	}

	if err := tx.WithContext(ctx).Create(&rows).Error; err != nil {
		return log.Err("failed to create candidate histories", err, "count", len(rows))
	}

	return nil
}

func (r *historyRepository) GetVoteHistoryByMealDate(
	ctx context.Context,
	tx *gorm.DB,
	mealDate time.Time,
) ([]*VoteHistory, error) {
	log := logger.NewWithContext(ctx, "historyRepository").Function("GetVoteHistoryByMealDate")

	var rows []*VoteHistory
	err := tx.WithContext(ctx).
		Where("meal_date = ?", datatypes.Date(mealDate)).
		Order("vote_count DESC").
		Find(&rows).Error
	if err != nil {
		return nil, log.Err("failed to get vote history", err)
	}

	return rows, nil
}
