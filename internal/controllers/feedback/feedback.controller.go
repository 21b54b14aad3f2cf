package feedbackController

import (
	"context"
	"errors"
	"strings"

	"mealvote/internal/database"
	"mealvote/internal/logger"
	. "mealvote/internal/models"
	"mealvote/internal/repositories"
)

const maxMessageLength = 4000

var ErrValidation = errors.New("validation error")

type FeedbackController struct {
	feedbackRepo repositories.FeedbackRepository
	db           database.DB
}

type SubmitFeedbackRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type FeedbackControllerInterface interface {
	SubmitFeedback(ctx context.Context, user *User, request *SubmitFeedbackRequest) (*Feedback, error)
	GetFeedback(ctx context.Context) ([]*Feedback, error)
}

func New(repos repositories.Repository, db database.DB) FeedbackControllerInterface {
	return &FeedbackController{
		feedbackRepo: repos.Feedback,
		db:           db,
	}
}

func (c *FeedbackController) SubmitFeedback(
	ctx context.Context,
	user *User,
	request *SubmitFeedbackRequest,
) (*Feedback, error) {
	log := logger.NewWithContext(ctx, "feedbackController").Function("SubmitFeedback")

	message := strings.TrimSpace(request.Message)
	if message == "" {
		return nil, log.ErrorWithType(ErrValidation, "message is required")
	}
	if len(message) > maxMessageLength {
		return nil, log.ErrorWithType(ErrValidation, "message is too long")
	}

	feedback := &Feedback{
		UserID:  user.ID,
		Subject: strings.TrimSpace(request.Subject),
		Message: message,
	}

	if err := c.feedbackRepo.Create(ctx, c.db.SQL, feedback); err != nil {
		return nil, log.Err("failed to create feedback", err, "userID", user.ID)
	}

	log.Info("Feedback submitted", "feedbackID", feedback.ID, "userID", user.ID)
	return feedback, nil
}

func (c *FeedbackController) GetFeedback(ctx context.Context) ([]*Feedback, error) {
	log := logger.NewWithContext(ctx, "feedbackController").Function("GetFeedback")

	feedback, err := c.feedbackRepo.GetAll(ctx, c.db.SQL)
	if err != nil {
		return nil, log.Err("failed to get feedback", err)
	}

	return feedback, nil
}
