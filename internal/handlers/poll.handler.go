package handlers

import (
	"mealvote/internal/app"
	pollController "mealvote/internal/controllers/poll"
	resultController "mealvote/internal/controllers/result"
	"mealvote/internal/handlers/middleware"
	"mealvote/internal/logger"
	. "mealvote/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PollHandler struct {
	Handler
	controller pollController.PollControllerInterface
	results    resultController.ResultControllerInterface
}

func NewPollHandler(app app.App, router fiber.Router) *PollHandler {
	log := logger.New("handlers").File("poll_handler")
	return &PollHandler{
		controller: app.Controllers.Poll,
		results:    app.Controllers.Result,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *PollHandler) Register() {
	polls := h.router.Group("/polls", h.middleware.RequireAuth(), h.middleware.RequireRoles(RoleStaff))

	polls.Post("/", h.submitPoll)
	polls.Get("/today", h.getTodayPoll)
	polls.Get("/pending", h.getPendingPoll)
	polls.Get("/active", h.getActivePolls)
	polls.Patch("/:id", h.editPoll)
	polls.Delete("/:id", h.deletePoll)
	polls.Post("/:id/finalize", h.finalizePoll)
}

func (h *PollHandler) pollError(c *fiber.Ctx, err error) error {
	return respondError(c, err,
		errStatus{pollController.ErrValidation, fiber.StatusBadRequest},
		errStatus{pollController.ErrNotFound, fiber.StatusNotFound},
		errStatus{pollController.ErrConflict, fiber.StatusConflict},
		errStatus{pollController.ErrForbidden, fiber.StatusForbidden},
	)
}

func (h *PollHandler) submitPoll(c *fiber.Ctx) error {
	log := h.log.Function("submitPoll")

	var request pollController.SubmitPollRequest
	if err := c.BodyParser(&request); err != nil {
		log.Info("invalid request body", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	poll, err := h.controller.SubmitPoll(c.UserContext(), middleware.GetUser(c), &request)
	if err != nil {
		return h.pollError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"pollId": poll.ID,
		"poll":   poll,
	})
}

func (h *PollHandler) getTodayPoll(c *fiber.Ctx) error {
	result, err := h.results.GetTodayResult(c.UserContext())
	if err != nil {
		return respondError(c, err,
			errStatus{resultController.ErrNotFound, fiber.StatusNotFound},
		)
	}

	return c.JSON(result)
}

func (h *PollHandler) getPendingPoll(c *fiber.Ctx) error {
	poll, err := h.controller.GetPendingPoll(c.UserContext(), c.Query("date"))
	if err != nil {
		return h.pollError(c, err)
	}

	return c.JSON(poll)
}

func (h *PollHandler) getActivePolls(c *fiber.Ctx) error {
	polls, err := h.controller.GetActivePolls(c.UserContext())
	if err != nil {
		return h.pollError(c, err)
	}

	return c.JSON(fiber.Map{"polls": polls})
}

func (h *PollHandler) editPoll(c *fiber.Ctx) error {
	log := h.log.Function("editPoll")

	pollID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid poll id"})
	}

	var request pollController.EditPollRequest
	if err := c.BodyParser(&request); err != nil {
		log.Info("invalid request body", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	poll, err := h.controller.EditPoll(c.UserContext(), middleware.GetUser(c), pollID, &request)
	if err != nil {
		return h.pollError(c, err)
	}

	return c.JSON(poll)
}

func (h *PollHandler) deletePoll(c *fiber.Ctx) error {
	pollID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid poll id"})
	}

	if err := h.controller.DeletePoll(c.UserContext(), middleware.GetUser(c), pollID); err != nil {
		return h.pollError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PollHandler) finalizePoll(c *fiber.Ctx) error {
	log := h.log.Function("finalizePoll")

	pollID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid poll id"})
	}

	var request pollController.FinalizePollRequest
	if err := c.BodyParser(&request); err != nil {
		log.Info("invalid request body", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	poll, err := h.controller.FinalizePoll(c.UserContext(), middleware.GetUser(c), pollID, &request)
	if err != nil {
		return h.pollError(c, err)
	}

	return c.JSON(poll)
}
