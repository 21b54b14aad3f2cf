package handlers

import (
	"mealvote/internal/app"
	dishController "mealvote/internal/controllers/dish"
	"mealvote/internal/handlers/middleware"
	"mealvote/internal/logger"
	. "mealvote/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DishHandler struct {
	Handler
	controller dishController.DishControllerInterface
}

func NewDishHandler(app app.App, router fiber.Router) *DishHandler {
	log := logger.New("handlers").File("dish_handler")
	return &DishHandler{
		controller: app.Controllers.Dish,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *DishHandler) Register() {
	dishes := h.router.Group("/dishes", h.middleware.RequireAuth())

	dishes.Get("/", h.getDishes)
	dishes.Get("/:id", h.getDish)

	staff := dishes.Group("/", h.middleware.RequireRoles(RoleStaff))
	staff.Post("/", h.createDish)
	staff.Put("/:id", h.updateDish)
	staff.Delete("/:id", h.deleteDish)
}

func (h *DishHandler) dishError(c *fiber.Ctx, err error) error {
	return respondError(c, err,
		errStatus{dishController.ErrValidation, fiber.StatusBadRequest},
		errStatus{dishController.ErrNotFound, fiber.StatusNotFound},
	)
}

func (h *DishHandler) getDishes(c *fiber.Ctx) error {
	dishes, err := h.controller.GetDishes(c.UserContext())
	if err != nil {
		return h.dishError(c, err)
	}

	return c.JSON(fiber.Map{"dishes": dishes})
}

func (h *DishHandler) getDish(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid dish id"})
	}

	dish, err := h.controller.GetDish(c.UserContext(), id)
	if err != nil {
		return h.dishError(c, err)
	}

	return c.JSON(dish)
}

func (h *DishHandler) createDish(c *fiber.Ctx) error {
	log := h.log.Function("createDish")

	var request dishController.DishRequest
	if err := c.BodyParser(&request); err != nil {
		log.Info("invalid request body", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	dish, err := h.controller.CreateDish(c.UserContext(), middleware.GetUser(c), &request)
	if err != nil {
		return h.dishError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dish)
}

func (h *DishHandler) updateDish(c *fiber.Ctx) error {
	log := h.log.Function("updateDish")

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid dish id"})
	}

	var request dishController.DishRequest
	if err := c.BodyParser(&request); err != nil {
		log.Info("invalid request body", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	dish, err := h.controller.UpdateDish(c.UserContext(), middleware.GetUser(c), id, &request)
	if err != nil {
		return h.dishError(c, err)
	}

	return c.JSON(dish)
}

func (h *DishHandler) deleteDish(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid dish id"})
	}

	if err := h.controller.DeleteDish(c.UserContext(), middleware.GetUser(c), id); err != nil {
		return h.dishError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
