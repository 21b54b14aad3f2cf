package controllers

import (
	"time"

	"mealvote/config"
	authController "mealvote/internal/controllers/auth"
	dishController "mealvote/internal/controllers/dish"
	feedbackController "mealvote/internal/controllers/feedback"
	pollController "mealvote/internal/controllers/poll"
	resultController "mealvote/internal/controllers/result"
	voteController "mealvote/internal/controllers/vote"
	wishlistController "mealvote/internal/controllers/wishlist"
	"mealvote/internal/database"
	"mealvote/internal/repositories"
	"mealvote/internal/services"
)

type Controllers struct {
	Auth     authController.AuthControllerInterface
	Poll     pollController.PollControllerInterface
	Vote     voteController.VoteControllerInterface
	Result   resultController.ResultControllerInterface
	Dish     dishController.DishControllerInterface
	Wishlist wishlistController.WishlistControllerInterface
	Feedback feedbackController.FeedbackControllerInterface
}

func New(
	db database.DB,
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	loc *time.Location,
) Controllers {
	return Controllers{
		Auth:     authController.New(repos, services, config, db),
		Poll:     pollController.New(repos, services, config, db, loc),
		Vote:     voteController.New(repos, services, config, db, loc),
		Result:   resultController.New(repos, db, loc),
		Dish:     dishController.New(repos, db),
		Wishlist: wishlistController.New(repos, db),
		Feedback: feedbackController.New(repos, db),
	}
}
