package handlers

import (
	"errors"
	"strings"

	"mealvote/internal/app"
	"mealvote/internal/handlers/middleware"
	"mealvote/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	api := router.Group("/api")
	HealthHandler(api, app)

	NewAuthHandler(*app, api).Register()
	NewDishHandler(*app, api).Register()
	NewPollHandler(*app, api).Register()
	NewVoteHandler(*app, api).Register()
	NewResultHandler(*app, api).Register()
	NewWishlistHandler(*app, api).Register()
	NewFeedbackHandler(*app, api).Register()

	return nil
}

type errStatus struct {
	err    error
	status int
}

// respondError maps a controller error onto an HTTP status using the given
// sentinel-to-status pairs, falling back to a generic 500. The sentinel prefix
// is stripped so the client sees only the human-readable reason.
func respondError(c *fiber.Ctx, err error, mappings ...errStatus) error {
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			message := strings.TrimPrefix(err.Error(), m.err.Error()+": ")
			return c.Status(m.status).JSON(fiber.Map{"error": message})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}
