package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups transactions, e.g. "Groceries" or "Rent".
type Category struct {
	DefaultModel
	Household   Household `json:"-"`
	HouseholdID uuid.UUID `gorm:"uniqueIndex:category_name_household_id"`
	Name        string    `gorm:"uniqueIndex:category_name_household_id"`
	Note        string
	Archived    bool
}

// BeforeSave trims whitespace from all strings.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	return nil
}

// BeforeCreate verifies that the household this category references exists.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Category)
	return tx.First(&Household{}, toSave.HouseholdID).Error
}
