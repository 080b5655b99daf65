package models

import (
	"strings"

	"gorm.io/gorm"
)

// Household is the highest level of organization. All other
// resources belong to exactly one household.
type Household struct {
	DefaultModel
	Name     string
	Note     string
	Currency string
}

// BeforeSave trims whitespace from all strings.
func (h *Household) BeforeSave(_ *gorm.DB) error {
	h.Name = strings.TrimSpace(h.Name)
	h.Note = strings.TrimSpace(h.Note)
	h.Currency = strings.TrimSpace(h.Currency)

	return nil
}

// Accounts returns all accounts for this household.
func (h Household) Accounts(db *gorm.DB) ([]Account, error) {
	var accounts []Account
	err := db.Where(&Account{HouseholdID: h.ID}).Order("name ASC").Find(&accounts).Error
	return accounts, err
}
