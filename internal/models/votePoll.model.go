package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PollStatus string

const (
	PollStatusPending   PollStatus = "pending"
	PollStatusOpen      PollStatus = "open"
	PollStatusClose     PollStatus = "close"
	PollStatusFinalized PollStatus = "finalized"
)

// nextStatus maps each status to the only status it may move to. The lifecycle
// is strictly one-way: pending -> open -> close -> finalized.
var nextStatus = map[PollStatus]PollStatus{
	PollStatusPending: PollStatusOpen,
	PollStatusOpen:    PollStatusClose,
	PollStatusClose:   PollStatusFinalized,
}

// CanTransitionTo reports whether moving from s to next is a legal single
// forward step.
func (s PollStatus) CanTransitionTo(next PollStatus) bool {
	return nextStatus[s] == next
}

// IsTerminal reports whether no further transitions are possible.
func (s PollStatus) IsTerminal() bool {
	return s == PollStatusFinalized
}

// VotePoll is one day's voting round. VoteDate is always the calendar day
// before MealDate, and at most one poll exists per MealDate.
type VotePoll struct {
	BaseUUIDModel
	VoteDate    datatypes.Date  `gorm:"type:date;not null;index"                json:"voteDate"`
	MealDate    datatypes.Date  `gorm:"type:date;not null;uniqueIndex"          json:"mealDate"`
	Status      PollStatus      `gorm:"type:text;not null;default:'pending'"    json:"status"`
	CreatedByID uuid.UUID       `gorm:"type:uuid;not null"                      json:"createdById"`
	CreatedBy   User            `gorm:"foreignKey:CreatedByID"                  json:"-"`
	Candidates  []CandidateDish `gorm:"foreignKey:VotePollID;constraint:OnDelete:CASCADE" json:"candidates,omitempty"`
}

func (p *VotePoll) BeforeCreate(tx *gorm.DB) error {
	if err := p.BaseUUIDModel.BeforeCreate(tx); err != nil {
		return err
	}
	if p.Status == "" {
		p.Status = PollStatusPending
	}
	if p.Status != PollStatusPending {
		return gorm.ErrInvalidValue
	}
	return nil
}

// CandidateDish makes a dish eligible for voting within one poll. IsSelected
// is set once, during finalization, for the winning dishes.
type CandidateDish struct {
	BaseUUIDModel
	VotePollID uuid.UUID `gorm:"type:uuid;not null;index"                          json:"votePollId"`
	VotePoll   VotePoll  `gorm:"foreignKey:VotePollID;constraint:OnDelete:CASCADE" json:"-"`
	DishID     uuid.UUID `gorm:"type:uuid;not null;index"                          json:"dishId"`
	Dish       Dish      `gorm:"foreignKey:DishID"                                 json:"dish,omitempty"`
	IsSelected bool      `gorm:"type:bool;not null;default:false"                  json:"isSelected"`
}
