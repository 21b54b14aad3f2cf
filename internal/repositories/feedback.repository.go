package repositories

import (
	"context"

	"mealvote/internal/logger"
	. "mealvote/internal/models"

	"gorm.io/gorm"
)

type FeedbackRepository interface {
	Create(ctx context.Context, tx *gorm.DB, feedback *Feedback) error
	GetAll(ctx context.Context, tx *gorm.DB) ([]*Feedback, error)
}

type feedbackRepository struct{}

func NewFeedbackRepository() FeedbackRepository {
	return &feedbackRepository{}
}

func (r *feedbackRepository) Create(ctx context.Context, tx *gorm.DB, feedback *Feedback) error {
	log := logger.NewWithContext(ctx, "feedbackRepository").Function("Create")

	if err := tx.WithContext(ctx).Create(feedback).Error; err != nil {
		return log.Err("failed to create feedback", err, "userID", feedback.UserID)
	}

	return nil
}

func (r *feedbackRepository) GetAll(ctx context.Context, tx *gorm.DB) ([]*Feedback, error) {
	log := logger.NewWithContext(ctx, "feedbackRepository").Function("GetAll")

	var rows []*Feedback
	err := tx.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, log.Err("failed to get feedback", err)
	}

	return rows, nil
}
