package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategorizationRule assigns a category to imported transactions whose
// counterparty or name matches the glob pattern in Match.
//
// Rules are applied in ascending priority order, the first match wins.
type CategorizationRule struct {
	DefaultModel
	Household   Household `json:"-"`
	HouseholdID uuid.UUID `gorm:"index"`
	Priority    uint
	Match       string
	CategoryID  uuid.UUID
}

// BeforeCreate verifies that household and category exist.
func (r *CategorizationRule) BeforeCreate(tx *gorm.DB) error {
	_ = r.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*CategorizationRule)
	err := tx.First(&Household{}, toSave.HouseholdID).Error
	if err != nil {
		return err
	}

	return tx.First(&Category{}, toSave.CategoryID).Error
}

// BeforeUpdate verifies that an updated category reference exists.
func (r *CategorizationRule) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("CategoryID") {
		toSave := tx.Statement.Dest.(CategorizationRule)
		return tx.First(&Category{}, toSave.CategoryID).Error
	}

	return nil
}
