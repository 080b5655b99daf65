package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ValueTargetType is the kind of resource a value mapping points to.
//
// swagger:enum ValueTargetType
type ValueTargetType string

const (
	TargetAccount      ValueTargetType = "account"
	TargetCategory     ValueTargetType = "category"
	TargetCounterparty ValueTargetType = "counterparty"
	TargetTag          ValueTargetType = "tag"
)

var (
	ErrInvalidTargetType      = errors.New("the target type must be one of account, category, counterparty, tag")
	ErrValueMappingScope      = errors.New("a value mapping must reference either an import job or a mapping profile")
	ErrValueMappingEmptyValue = errors.New("the source value of a value mapping must not be empty")
)

// ValueMapping binds one raw source value from a CSV file to a target
// resource, e.g. "EDEKA MARKT" to a counterparty.
//
// A mapping belongs either to a single import job or to a reusable
// mapping profile. Per scope, the combination of source value and target
// type is unique so that resolution is deterministic.
type ValueMapping struct {
	DefaultModel
	ImportJobID      *uuid.UUID      `gorm:"uniqueIndex:value_mapping_scope_value_type"`
	MappingProfileID *uuid.UUID      `gorm:"uniqueIndex:value_mapping_scope_value_type"`
	SourceValue      string          `gorm:"uniqueIndex:value_mapping_scope_value_type"`
	TargetType       ValueTargetType `gorm:"uniqueIndex:value_mapping_scope_value_type"`
	TargetID         uuid.UUID
}

// BeforeSave validates target type, scope and source value.
//
// The source value is deliberately not trimmed: matching against the
// file is exact and byte-for-byte.
func (m *ValueMapping) BeforeSave(_ *gorm.DB) error {
	switch m.TargetType {
	case TargetAccount, TargetCategory, TargetCounterparty, TargetTag:
	default:
		return fmt.Errorf("%w, got %q", ErrInvalidTargetType, m.TargetType)
	}

	if m.SourceValue == "" {
		return ErrValueMappingEmptyValue
	}

	if (m.ImportJobID == nil) == (m.MappingProfileID == nil) {
		return ErrValueMappingScope
	}

	return nil
}

// BeforeCreate verifies that the referenced scope exists.
func (m *ValueMapping) BeforeCreate(tx *gorm.DB) error {
	_ = m.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*ValueMapping)
	if toSave.ImportJobID != nil {
		return tx.First(&ImportJob{}, toSave.ImportJobID).Error
	}

	return tx.First(&MappingProfile{}, toSave.MappingProfileID).Error
}
