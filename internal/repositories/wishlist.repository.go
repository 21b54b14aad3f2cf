package repositories

import (
	"context"

	"mealvote/internal/logger"
	. "mealvote/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WishlistRepository interface {
	GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*Wishlist, error)
	// Upsert replaces the user's single wishlist entry.
	Upsert(ctx context.Context, tx *gorm.DB, entry *Wishlist) error
}

type wishlistRepository struct{}

func NewWishlistRepository() WishlistRepository {
	return &wishlistRepository{}
}

func (r *wishlistRepository) GetByUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) (*Wishlist, error) {
	log := logger.NewWithContext(ctx, "wishlistRepository").Function("GetByUser")

	var entry Wishlist
	err := tx.WithContext(ctx).
		Preload("Dish").
		Where("user_id = ?", userID).
		First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, log.Err("failed to get wishlist entry", err, "userID", userID)
	}

	return &entry, nil
}

func (r *wishlistRepository) Upsert(ctx context.Context, tx *gorm.DB, entry *Wishlist) error {
	log := logger.NewWithContext(ctx, "wishlistRepository").Function("Upsert")

	err := tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"dish_id", "updated_at"}),
		}).
		Create(entry).Error
	if err != nil {
		return log.Err("failed to upsert wishlist entry", err, "userID", entry.UserID)
	}

	return nil
}
