package handlers

import (
	"mealvote/internal/app"
	feedbackController "mealvote/internal/controllers/feedback"
	"mealvote/internal/handlers/middleware"
	"mealvote/internal/logger"
	. "mealvote/internal/models"

	"github.com/gofiber/fiber/v2"
)

type FeedbackHandler struct {
	Handler
	controller feedbackController.FeedbackControllerInterface
}

func NewFeedbackHandler(app app.App, router fiber.Router) *FeedbackHandler {
	log := logger.New("handlers").File("feedback_handler")
	return &FeedbackHandler{
		controller: app.Controllers.Feedback,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *FeedbackHandler) Register() {
	feedback := h.router.Group("/feedback", h.middleware.RequireAuth())

	feedback.Post("/", h.submitFeedback)
	feedback.Get("/", h.middleware.RequireRoles(RoleStaff), h.getFeedback)
}

func (h *FeedbackHandler) submitFeedback(c *fiber.Ctx) error {
	log := h.log.Function("submitFeedback")

	var request feedbackController.SubmitFeedbackRequest
	if err := c.BodyParser(&request); err != nil {
		log.Info("invalid request body", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	feedback, err := h.controller.SubmitFeedback(c.UserContext(), middleware.GetUser(c), &request)
	if err != nil {
		return respondError(c, err,
			errStatus{feedbackController.ErrValidation, fiber.StatusBadRequest},
		)
	}

	return c.Status(fiber.StatusCreated).JSON(feedback)
}

func (h *FeedbackHandler) getFeedback(c *fiber.Ctx) error {
	feedback, err := h.controller.GetFeedback(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"feedback": feedback})
}
