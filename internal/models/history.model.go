package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// VoteHistory is an append-only snapshot of one candidate's vote count at the
// moment its poll was finalized. Rows are never updated or deleted.
type VoteHistory struct {
	BaseUUIDModel
	MealDate   datatypes.Date `gorm:"type:date;not null;index" json:"mealDate"`
	VotePollID uuid.UUID      `gorm:"type:uuid;not null;index" json:"votePollId"`
	DishID     uuid.UUID      `gorm:"type:uuid;not null"       json:"dishId"`
	DishNameEN string         `gorm:"type:text"                json:"dishNameEn"`
	DishNameKM string         `gorm:"type:text"                json:"dishNameKm"`
	VoteCount  int64          `gorm:"type:bigint;not null"     json:"voteCount"`
}

// CandidateDishHistory records the selection outcome for each candidate of a
// finalized poll.
type CandidateDishHistory struct {
	BaseUUIDModel
	MealDate        datatypes.Date `gorm:"type:date;not null;index" json:"mealDate"`
	VotePollID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"votePollId"`
	CandidateDishID uuid.UUID      `gorm:"type:uuid;not null"       json:"candidateDishId"`
	DishID          uuid.UUID      `gorm:"type:uuid;not null"       json:"dishId"`
	IsSelected      bool           `gorm:"type:bool;not null"       json:"isSelected"`
}
