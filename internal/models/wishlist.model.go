package models

import (
	"github.com/google/uuid"
)

// Wishlist holds a user's single "most wanted" dish. One row per user,
// replaced in place when the user changes their pick.
type Wishlist struct {
	BaseUUIDModel
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
	User   User      `gorm:"foreignKey:UserID"              json:"-"`
	DishID uuid.UUID `gorm:"type:uuid;not null"             json:"dishId"`
	Dish   Dish      `gorm:"foreignKey:DishID"              json:"dish,omitempty"`
}

type Feedback struct {
	BaseUUIDModel
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	User    User      `gorm:"foreignKey:UserID"        json:"-"`
	Subject string    `gorm:"type:text"                json:"subject"`
	Message string    `gorm:"type:text;not null"       json:"message"`
}
