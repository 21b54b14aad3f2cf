package handlers

import (
	"mealvote/internal/app"
	authController "mealvote/internal/controllers/auth"
	"mealvote/internal/handlers/middleware"
	"mealvote/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	controller authController.AuthControllerInterface
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	log := logger.New("handlers").File("auth_handler")
	return &AuthHandler{
		controller: app.Controllers.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")

	auth.Post("/register", h.register)
	auth.Post("/login", h.login)

	auth.Get("/me", h.middleware.RequireAuth(), h.me)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	log := h.log.Function("register")

	var request authController.RegisterRequest
	if err := c.BodyParser(&request); err != nil {
		log.Info("invalid request body", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	response, err := h.controller.Register(c.UserContext(), &request)
	if err != nil {
		return respondError(c, err,
			errStatus{authController.ErrValidation, fiber.StatusBadRequest},
			errStatus{authController.ErrConflict, fiber.StatusConflict},
		)
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	log := h.log.Function("login")

	var request authController.LoginRequest
	if err := c.BodyParser(&request); err != nil {
		log.Info("invalid request body", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	response, err := h.controller.Login(c.UserContext(), &request)
	if err != nil {
		return respondError(c, err,
			errStatus{authController.ErrValidation, fiber.StatusBadRequest},
			errStatus{authController.ErrUnauthorized, fiber.StatusUnauthorized},
		)
	}

	return c.JSON(response)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	return c.JSON(fiber.Map{"user": user})
}
