package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ColumnMapping binds one CSV header to one domain field of a
// transaction, with an optional format hint (e.g. a date layout).
type ColumnMapping struct {
	DefaultModel
	ImportJob   ImportJob `json:"-"`
	ImportJobID uuid.UUID `gorm:"uniqueIndex:column_mapping_job_header"`
	CSVHeader   string    `gorm:"uniqueIndex:column_mapping_job_header"`
	Field       string
	Format      string
}

// BeforeSave trims whitespace. The header is kept verbatim since
// matching against the file is exact.
func (m *ColumnMapping) BeforeSave(_ *gorm.DB) error {
	m.Field = strings.TrimSpace(m.Field)
	m.Format = strings.TrimSpace(m.Format)

	return nil
}

// BeforeCreate verifies that the import job this mapping references exists.
func (m *ColumnMapping) BeforeCreate(tx *gorm.DB) error {
	_ = m.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*ColumnMapping)
	return tx.First(&ImportJob{}, toSave.ImportJobID).Error
}
