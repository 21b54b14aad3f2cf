package handlers

import (
	"mealvote/internal/app"
	resultController "mealvote/internal/controllers/result"
	"mealvote/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ResultHandler struct {
	Handler
	controller resultController.ResultControllerInterface
}

func NewResultHandler(app app.App, router fiber.Router) *ResultHandler {
	log := logger.New("handlers").File("result_handler")
	return &ResultHandler{
		controller: app.Controllers.Result,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ResultHandler) Register() {
	results := h.router.Group("/results")

	// The upcoming meal is the public announcement; tallies need a login.
	results.Get("/upcoming", h.getUpcomingMeal)

	authed := results.Group("/", h.middleware.RequireAuth())
	authed.Get("/today", h.getTodayResult)
	authed.Get("/history", h.getHistory)
	authed.Get("/polls/:id", h.getPollResult)
}

func (h *ResultHandler) resultError(c *fiber.Ctx, err error) error {
	return respondError(c, err,
		errStatus{resultController.ErrValidation, fiber.StatusBadRequest},
		errStatus{resultController.ErrNotFound, fiber.StatusNotFound},
	)
}

func (h *ResultHandler) getTodayResult(c *fiber.Ctx) error {
	result, err := h.controller.GetTodayResult(c.UserContext())
	if err != nil {
		return h.resultError(c, err)
	}

	return c.JSON(result)
}

func (h *ResultHandler) getPollResult(c *fiber.Ctx) error {
	pollID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid poll id"})
	}

	result, err := h.controller.GetPollResult(c.UserContext(), pollID)
	if err != nil {
		return h.resultError(c, err)
	}

	return c.JSON(result)
}

func (h *ResultHandler) getHistory(c *fiber.Ctx) error {
	rows, err := h.controller.GetHistory(c.UserContext(), c.Query("date"))
	if err != nil {
		return h.resultError(c, err)
	}

	return c.JSON(fiber.Map{"history": rows})
}

func (h *ResultHandler) getUpcomingMeal(c *fiber.Ctx) error {
	poll, err := h.controller.GetUpcomingMeal(c.UserContext())
	if err != nil {
		return h.resultError(c, err)
	}

	return c.JSON(poll)
}
