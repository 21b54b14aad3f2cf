package repositories

import (
	"context"

	"mealvote/internal/logger"
	. "mealvote/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DishRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Dish, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*Dish, error)
	// GetByIDs returns the dishes matching ids; callers compare lengths to
	// detect ids that do not exist in the catalog.
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*Dish, error)
	Create(ctx context.Context, tx *gorm.DB, dish *Dish) error
	Update(ctx context.Context, tx *gorm.DB, dish *Dish) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type dishRepository struct{}

func NewDishRepository() DishRepository {
	return &dishRepository{}
}

func (r *dishRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Dish, error) {
	log := logger.NewWithContext(ctx, "dishRepository").Function("GetByID")

	var dish Dish
	if err := tx.WithContext(ctx).First(&dish, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, log.Err("failed to get dish", err, "dishID", id)
	}

	return &dish, nil
}

func (r *dishRepository) GetAll(ctx context.Context, tx *gorm.DB) ([]*Dish, error) {
	log := logger.NewWithContext(ctx, "dishRepository").Function("GetAll")

	var dishes []*Dish
	if err := tx.WithContext(ctx).Order("name_en ASC").Find(&dishes).Error; err != nil {
		return nil, log.Err("failed to get dishes", err)
	}

	return dishes, nil
}

func (r *dishRepository) GetByIDs(
	ctx context.Context,
	tx *gorm.DB,
	ids []uuid.UUID,
) ([]*Dish, error) {
	log := logger.NewWithContext(ctx, "dishRepository").Function("GetByIDs")

	if len(ids) == 0 {
		return nil, nil
	}

	var dishes []*Dish
	if err := tx.WithContext(ctx).Where("id IN ?", ids).Find(&dishes).Error; err != nil {
		return nil, log.Err("failed to get dishes by ids", err, "count", len(ids))
	}

	return dishes, nil
}

func (r *dishRepository) Create(ctx context.Context, tx *gorm.DB, dish *Dish) error {
	log := logger.NewWithContext(ctx, "dishRepository").Function("Create")

	if err := tx.WithContext(ctx).Create(dish).Error; err != nil {
		return log.Err("failed to create dish", err)
	}

	return nil
}

func (r *dishRepository) Update(ctx context.Context, tx *gorm.DB, dish *Dish) error {
	log := logger.NewWithContext(ctx, "dishRepository").Function("Update")

	if err := tx.WithContext(ctx).Save(dish).Error; err != nil {
		return log.Err("failed to update dish", err, "dishID", dish.ID)
	}

	return nil
}

func (r *dishRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	log := logger.NewWithContext(ctx, "dishRepository").Function("Delete")

	result := tx.WithContext(ctx).Delete(&Dish{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete dish", result.Error, "dishID", id)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
