package handlers

import (
	"mealvote/internal/app"
	wishlistController "mealvote/internal/controllers/wishlist"
	"mealvote/internal/handlers/middleware"
	"mealvote/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type WishlistHandler struct {
	Handler
	controller wishlistController.WishlistControllerInterface
}

func NewWishlistHandler(app app.App, router fiber.Router) *WishlistHandler {
	log := logger.New("handlers").File("wishlist_handler")
	return &WishlistHandler{
		controller: app.Controllers.Wishlist,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *WishlistHandler) Register() {
	wishlist := h.router.Group("/wishlist", h.middleware.RequireAuth())

	wishlist.Get("/", h.getWishlist)
	wishlist.Put("/", h.setWishlist)
}

func (h *WishlistHandler) wishlistError(c *fiber.Ctx, err error) error {
	return respondError(c, err,
		errStatus{wishlistController.ErrValidation, fiber.StatusBadRequest},
		errStatus{wishlistController.ErrNotFound, fiber.StatusNotFound},
		errStatus{wishlistController.ErrForbidden, fiber.StatusForbidden},
	)
}

func (h *WishlistHandler) getWishlist(c *fiber.Ctx) error {
	entry, err := h.controller.GetWishlist(c.UserContext(), middleware.GetUser(c))
	if err != nil {
		return h.wishlistError(c, err)
	}

	return c.JSON(entry)
}

func (h *WishlistHandler) setWishlist(c *fiber.Ctx) error {
	log := h.log.Function("setWishlist")

	var request wishlistController.SetWishlistRequest
	if err := c.BodyParser(&request); err != nil {
		log.Info("invalid request body", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	entry, err := h.controller.SetWishlist(c.UserContext(), middleware.GetUser(c), &request)
	if err != nil {
		return h.wishlistError(c, err)
	}

	return c.JSON(entry)
}
