package middleware

import (
	"mealvote/config"
	authController "mealvote/internal/controllers/auth"
	"mealvote/internal/logger"
)

type Middleware struct {
	authController authController.AuthControllerInterface
	Config         config.Config
	log            logger.Logger
}

func New(
	authController authController.AuthControllerInterface,
	config config.Config,
) Middleware {
	return Middleware{
		authController: authController,
		Config:         config,
		log:            logger.New("middleware"),
	}
}
