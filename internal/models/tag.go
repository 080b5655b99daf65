package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is a free-form label that can be attached to any number
// of transactions.
type Tag struct {
	DefaultModel
	Household   Household `json:"-"`
	HouseholdID uuid.UUID `gorm:"uniqueIndex:tag_name_household_id"`
	Name        string    `gorm:"uniqueIndex:tag_name_household_id"`
}

// BeforeSave trims whitespace from the name.
func (t *Tag) BeforeSave(_ *gorm.DB) error {
	t.Name = strings.TrimSpace(t.Name)

	return nil
}

// BeforeCreate verifies that the household this tag references exists.
func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Tag)
	return tx.First(&Household{}, toSave.HouseholdID).Error
}
