package dishController

import (
	"context"
	"errors"
	"strings"

	"mealvote/internal/database"
	"mealvote/internal/logger"
	. "mealvote/internal/models"
	"mealvote/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

type DishController struct {
	dishRepo repositories.DishRepository
	db       database.DB
}

type DishRequest struct {
	NameEN        string          `json:"nameEn"`
	NameKM        string          `json:"nameKm"`
	DescriptionEN string          `json:"descriptionEn"`
	DescriptionKM string          `json:"descriptionKm"`
	IngredientsEN string          `json:"ingredientsEn"`
	IngredientsKM string          `json:"ingredientsKm"`
	ImageURL      string          `json:"imageUrl"`
	Price         decimal.Decimal `json:"price"`
}

type DishControllerInterface interface {
	GetDishes(ctx context.Context) ([]*Dish, error)
	GetDish(ctx context.Context, id uuid.UUID) (*Dish, error)
	CreateDish(ctx context.Context, user *User, request *DishRequest) (*Dish, error)
	UpdateDish(ctx context.Context, user *User, id uuid.UUID, request *DishRequest) (*Dish, error)
	DeleteDish(ctx context.Context, user *User, id uuid.UUID) error
}

func New(repos repositories.Repository, db database.DB) DishControllerInterface {
	return &DishController{
		dishRepo: repos.Dish,
		db:       db,
	}
}

func validateDishRequest(request *DishRequest) error {
	if strings.TrimSpace(request.NameEN) == "" {
		return errors.New("nameEn is required")
	}
	if request.Price.IsNegative() {
		return errors.New("price must not be negative")
	}
	return nil
}

func (c *DishController) GetDishes(ctx context.Context) ([]*Dish, error) {
	log := logger.NewWithContext(ctx, "dishController").Function("GetDishes")

	dishes, err := c.dishRepo.GetAll(ctx, c.db.SQL)
	if err != nil {
		return nil, log.Err("failed to get dishes", err)
	}

	return dishes, nil
}

func (c *DishController) GetDish(ctx context.Context, id uuid.UUID) (*Dish, error) {
	log := logger.NewWithContext(ctx, "dishController").Function("GetDish")

	dish, err := c.dishRepo.GetByID(ctx, c.db.SQL, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, log.ErrorWithType(ErrNotFound, "dish not found")
		}
		return nil, log.Err("failed to get dish", err, "dishID", id)
	}

	return dish, nil
}

func (c *DishController) CreateDish(
	ctx context.Context,
	user *User,
	request *DishRequest,
) (*Dish, error) {
	log := logger.NewWithContext(ctx, "dishController").Function("CreateDish")

	if err := validateDishRequest(request); err != nil {
		return nil, log.ErrorWithType(ErrValidation, err.Error())
	}

	dish := &Dish{
		NameEN:        strings.TrimSpace(request.NameEN),
		NameKM:        strings.TrimSpace(request.NameKM),
		DescriptionEN: request.DescriptionEN,
		DescriptionKM: request.DescriptionKM,
		IngredientsEN: request.IngredientsEN,
		IngredientsKM: request.IngredientsKM,
		ImageURL:      request.ImageURL,
		Price:         request.Price,
		CreatedByID:   user.ID,
	}

	if err := c.dishRepo.Create(ctx, c.db.SQL, dish); err != nil {
		return nil, log.Err("failed to create dish", err)
	}

	log.Info("Dish created", "dishID", dish.ID, "createdBy", user.ID)
	return dish, nil
}

func (c *DishController) UpdateDish(
	ctx context.Context,
	user *User,
	id uuid.UUID,
	request *DishRequest,
) (*Dish, error) {
	log := logger.NewWithContext(ctx, "dishController").Function("UpdateDish")

	if err := validateDishRequest(request); err != nil {
		return nil, log.ErrorWithType(ErrValidation, err.Error())
	}

	dish, err := c.dishRepo.GetByID(ctx, c.db.SQL, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, log.ErrorWithType(ErrNotFound, "dish not found")
		}
		return nil, log.Err("failed to get dish", err, "dishID", id)
	}

	dish.NameEN = strings.TrimSpace(request.NameEN)
	dish.NameKM = strings.TrimSpace(request.NameKM)
	dish.DescriptionEN = request.DescriptionEN
	dish.DescriptionKM = request.DescriptionKM
	dish.IngredientsEN = request.IngredientsEN
	dish.IngredientsKM = request.IngredientsKM
	dish.ImageURL = request.ImageURL
	dish.Price = request.Price

	if err := c.dishRepo.Update(ctx, c.db.SQL, dish); err != nil {
		return nil, log.Err("failed to update dish", err, "dishID", id)
	}

	log.Info("Dish updated", "dishID", dish.ID, "updatedBy", user.ID)
	return dish, nil
}

func (c *DishController) DeleteDish(ctx context.Context, user *User, id uuid.UUID) error {
	log := logger.NewWithContext(ctx, "dishController").Function("DeleteDish")

	if err := c.dishRepo.Delete(ctx, c.db.SQL, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return log.ErrorWithType(ErrNotFound, "dish not found")
		}
		return log.Err("failed to delete dish", err, "dishID", id)
	}

	log.Info("Dish deleted", "dishID", id, "deletedBy", user.ID)
	return nil
}
