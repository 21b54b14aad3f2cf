package repositories

import (
	"mealvote/internal/database"
)

type Repository struct {
	User     UserRepository
	Dish     DishRepository
	VotePoll VotePollRepository
	Vote     VoteRepository
	History  HistoryRepository
	Wishlist WishlistRepository
	Feedback FeedbackRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:     NewUserRepository(),
		Dish:     NewDishRepository(),
		VotePoll: NewVotePollRepository(db.Cache.General), // caches the upcoming meal
		Vote:     NewVoteRepository(),
		History:  NewHistoryRepository(),
		Wishlist: NewWishlistRepository(),
		Feedback: NewFeedbackRepository(),
	}
}
