package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Counterparty is the other party of a transaction, e.g. an
// employer, a landlord or a supermarket.
type Counterparty struct {
	DefaultModel
	Household   Household `json:"-"`
	HouseholdID uuid.UUID `gorm:"uniqueIndex:counterparty_name_household_id"`
	Name        string    `gorm:"uniqueIndex:counterparty_name_household_id"`
	Note        string
}

// BeforeSave trims whitespace from all strings.
func (c *Counterparty) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	return nil
}

// BeforeCreate verifies that the household this counterparty references exists.
func (c *Counterparty) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Counterparty)
	return tx.First(&Household{}, toSave.HouseholdID).Error
}
