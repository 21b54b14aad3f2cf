package wishlistController

import (
	"context"
	"errors"
	"time"

	"mealvote/internal/database"
	"mealvote/internal/logger"
	. "mealvote/internal/models"
	"mealvote/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// A wishlist pick can be changed at most once per week.
const wishlistCooldown = 7 * 24 * time.Hour

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)

type WishlistController struct {
	wishlistRepo repositories.WishlistRepository
	dishRepo     repositories.DishRepository
	db           database.DB
}

type SetWishlistRequest struct {
	DishID uuid.UUID `json:"dishId"`
}

type WishlistControllerInterface interface {
	GetWishlist(ctx context.Context, user *User) (*Wishlist, error)
	SetWishlist(ctx context.Context, user *User, request *SetWishlistRequest) (*Wishlist, error)
}

func New(repos repositories.Repository, db database.DB) WishlistControllerInterface {
	return &WishlistController{
		wishlistRepo: repos.Wishlist,
		dishRepo:     repos.Dish,
		db:           db,
	}
}

func (c *WishlistController) GetWishlist(ctx context.Context, user *User) (*Wishlist, error) {
	log := logger.NewWithContext(ctx, "wishlistController").Function("GetWishlist")

	entry, err := c.wishlistRepo.GetByUser(ctx, c.db.SQL, user.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, log.ErrorWithType(ErrNotFound, "no wishlist entry")
		}
		return nil, log.Err("failed to get wishlist", err, "userID", user.ID)
	}

	return entry, nil
}

func (c *WishlistController) SetWishlist(
	ctx context.Context,
	user *User,
	request *SetWishlistRequest,
) (*Wishlist, error) {
	log := logger.NewWithContext(ctx, "wishlistController").Function("SetWishlist")

	if request.DishID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "dishId is required")
	}

	if _, err := c.dishRepo.GetByID(ctx, c.db.SQL, request.DishID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, log.ErrorWithType(ErrNotFound, "dish not found")
		}
		return nil, log.Err("failed to get dish", err, "dishID", request.DishID)
	}

	existing, err := c.wishlistRepo.GetByUser(ctx, c.db.SQL, user.ID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, log.Err("failed to get wishlist", err, "userID", user.ID)
	}
	if existing != nil {
		nextAllowed := existing.UpdatedAt.Add(wishlistCooldown)
		if time.Now().Before(nextAllowed) {
			return nil, log.ErrorWithType(ErrForbidden,
				"wishlist can only be changed once per week",
				"nextAllowedAt", nextAllowed)
		}
	}

	entry := &Wishlist{
		UserID: user.ID,
		DishID: request.DishID,
	}
	if err := c.wishlistRepo.Upsert(ctx, c.db.SQL, entry); err != nil {
		return nil, log.Err("failed to set wishlist", err, "userID", user.ID)
	}

	updated, err := c.wishlistRepo.GetByUser(ctx, c.db.SQL, user.ID)
	if err != nil {
		return nil, log.Err("failed to reload wishlist", err, "userID", user.ID)
	}

	log.Info("Wishlist updated", "userID", user.ID, "dishID", request.DishID)
	return updated, nil
}
