package models

import (
	"github.com/google/uuid"
)

// Vote is one user's ballot in one poll. The composite unique index is the
// authoritative guard against double voting; a duplicate insert fails at the
// database regardless of what any pre-check concluded.
type Vote struct {
	BaseUUIDModel
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_votes_user_poll" json:"userId"`
	User       User      `gorm:"foreignKey:UserID"                                  json:"-"`
	DishID     uuid.UUID `gorm:"type:uuid;not null;index"                           json:"dishId"`
	Dish       Dish      `gorm:"foreignKey:DishID"                                  json:"dish,omitempty"`
	VotePollID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_votes_user_poll" json:"votePollId"`
	VotePoll   VotePoll  `gorm:"foreignKey:VotePollID;constraint:OnDelete:CASCADE"  json:"-"`
}
