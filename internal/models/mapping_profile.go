package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MappingProfile is a reusable, named set of value mappings that can be
// shared across import jobs, e.g. one profile per bank.
type MappingProfile struct {
	DefaultModel
	Household   Household `json:"-"`
	HouseholdID uuid.UUID `gorm:"uniqueIndex:mapping_profile_name_household_id"`
	Name        string    `gorm:"uniqueIndex:mapping_profile_name_household_id"`
	Note        string

	ValueMappings []ValueMapping `gorm:"constraint:OnDelete:CASCADE"`
}

// BeforeSave trims whitespace from all strings.
func (p *MappingProfile) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Note = strings.TrimSpace(p.Note)

	return nil
}

// BeforeCreate verifies that the household this profile references exists.
func (p *MappingProfile) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*MappingProfile)
	return tx.First(&Household{}, toSave.HouseholdID).Error
}
