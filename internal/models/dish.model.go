package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Dish is a catalog entry. Bilingual fields carry English and Khmer text.
type Dish struct {
	BaseUUIDModel
	NameEN        string          `gorm:"type:text;not null"            json:"nameEn"`
	NameKM        string          `gorm:"type:text"                     json:"nameKm"`
	DescriptionEN string          `gorm:"type:text"                     json:"descriptionEn"`
	DescriptionKM string          `gorm:"type:text"                     json:"descriptionKm"`
	IngredientsEN string          `gorm:"type:text"                     json:"ingredientsEn"`
	IngredientsKM string          `gorm:"type:text"                     json:"ingredientsKm"`
	ImageURL      string          `gorm:"type:text"                     json:"imageUrl"`
	Price         decimal.Decimal `gorm:"type:numeric(10,2);default:0"  json:"price"`
	CreatedByID   uuid.UUID       `gorm:"type:uuid;not null;index"      json:"createdById"`
	CreatedBy     User            `gorm:"foreignKey:CreatedByID"        json:"-"`
}

func (d *Dish) BeforeCreate(tx *gorm.DB) error {
	if err := d.BaseUUIDModel.BeforeCreate(tx); err != nil {
		return err
	}
	if d.NameEN == "" {
		return gorm.ErrInvalidValue
	}
	if d.Price.IsNegative() {
		return gorm.ErrInvalidValue
	}
	return nil
}
