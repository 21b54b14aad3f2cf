package repositories

import (
	"context"

	"mealvote/internal/logger"
	. "mealvote/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VoteRepository interface {
	// Create inserts a ballot. A gorm.ErrDuplicatedKey return means this user
	// already voted in this poll; callers treat that as authoritative.
	Create(ctx context.Context, tx *gorm.DB, vote *Vote) error
	GetByPollAndUser(
		ctx context.Context,
		tx *gorm.DB,
		pollID, userID uuid.UUID,
	) (*Vote, error)
	UpdateDish(ctx context.Context, tx *gorm.DB, voteID, dishID uuid.UUID) error
	// CountByPoll tallies votes per dish for one poll in a single query.
	CountByPoll(ctx context.Context, tx *gorm.DB, pollID uuid.UUID) (map[uuid.UUID]int64, error)
}

type voteRepository struct{}

func NewVoteRepository() VoteRepository {
	return &voteRepository{}
}

func (r *voteRepository) Create(ctx context.Context, tx *gorm.DB, vote *Vote) error {
	log := logger.NewWithContext(ctx, "voteRepository").Function("Create")

	if err := tx.WithContext(ctx).Create(vote).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return err
		}
		return log.Err("failed to create vote", err,
			"pollID", vote.VotePollID, "userID", vote.UserID)
	}

	return nil
}

func (r *voteRepository) GetByPollAndUser(
	ctx context.Context,
	tx *gorm.DB,
	pollID, userID uuid.UUID,
) (*Vote, error) {
	log := logger.NewWithContext(ctx, "voteRepository").Function("GetByPollAndUser")

	var vote Vote
	err := tx.WithContext(ctx).
		Where("vote_poll_id = ? AND user_id = ?", pollID, userID).
		First(&vote).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, log.Err("failed to get vote", err, "pollID", pollID, "userID", userID)
	}

	return &vote, nil
}

func (r *voteRepository) UpdateDish(
	ctx context.Context,
	tx *gorm.DB,
	voteID, dishID uuid.UUID,
) error {
	log := logger.NewWithContext(ctx, "voteRepository").Function("UpdateDish")

	err := tx.WithContext(ctx).
		Model(&Vote{}).
		Where("id = ?", voteID).
		Update("dish_id", dishID).Error
	if err != nil {
		return log.Err("failed to update vote", err, "voteID", voteID)
	}

	return nil
}

func (r *voteRepository) CountByPoll(
	ctx context.Context,
	tx *gorm.DB,
	pollID uuid.UUID,
) (map[uuid.UUID]int64, error) {
	log := logger.NewWithContext(ctx, "voteRepository").Function("CountByPoll")

	type tallyRow struct {
		DishID uuid.UUID `gorm:"column:dish_id"`
		Count  int64     `gorm:"column:count"`
	}

	var rows []tallyRow
	err := tx.WithContext(ctx).
		Model(&Vote{}).
		Select("dish_id, COUNT(*) as count").
		Where("vote_poll_id = ?", pollID).
		Group("dish_id").
		Scan(&rows).Error
	if err != nil {
		return nil, log.Err("failed to count votes", err, "pollID", pollID)
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.DishID] = row.Count
	}

	return counts, nil
}
