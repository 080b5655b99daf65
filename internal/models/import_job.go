package models

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// ImportJobStatus is the lifecycle state of an import job.
//
// swagger:enum ImportJobStatus
type ImportJobStatus string

const (
	ImportJobDraft      ImportJobStatus = "DRAFT"
	ImportJobPending    ImportJobStatus = "PENDING"
	ImportJobInProgress ImportJobStatus = "IN_PROGRESS"
	ImportJobCompleted  ImportJobStatus = "COMPLETED"
	ImportJobFailed     ImportJobStatus = "FAILED"
	ImportJobCancelled  ImportJobStatus = "CANCELLED"
)

var (
	ErrInvalidSeparator = errors.New("the separator must be a single character")
	ErrInvalidLocale    = errors.New("the locale must be a valid BCP 47 language tag")
)

// ImportJob is one CSV upload to be converted into transactions.
//
// A job is created in DRAFT while the user uploads the file and defines
// mappings. Starting it moves it to PENDING, the worker moves it to
// IN_PROGRESS and finally to COMPLETED or FAILED. Only DRAFT jobs can
// be started, and exactly once.
type ImportJob struct {
	DefaultModel
	Household   Household `json:"-"`
	HouseholdID uuid.UUID `gorm:"index"`
	Name        string
	FileName    string
	FilePath    string
	Separator   string `gorm:"default:,"`

	// Locale is a BCP 47 tag that controls how amounts in the file are
	// parsed, e.g. "de" for comma decimal separators.
	Locale string

	// MappingProfile optionally supplies reusable value mappings. The
	// job's own value mappings take precedence over the profile's.
	MappingProfile   *MappingProfile `json:"-"`
	MappingProfileID *uuid.UUID

	Status ImportJobStatus `gorm:"default:DRAFT"`

	ProcessedRows int
	SucceededRows int
	FailedRows    int

	// Error holds the job level error message when the job FAILED.
	Error string

	ColumnMappings []ColumnMapping `gorm:"constraint:OnDelete:CASCADE"`
	ValueMappings  []ValueMapping  `gorm:"constraint:OnDelete:CASCADE"`
}

// BeforeSave validates separator and locale and trims whitespace.
func (j *ImportJob) BeforeSave(_ *gorm.DB) error {
	j.Name = strings.TrimSpace(j.Name)

	if j.Separator == "" {
		j.Separator = ","
	}

	if utf8.RuneCountInString(j.Separator) != 1 {
		return ErrInvalidSeparator
	}

	if j.Locale != "" {
		if _, err := language.Parse(j.Locale); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidLocale, j.Locale)
		}
	}

	if j.Status == "" {
		j.Status = ImportJobDraft
	}

	return nil
}

// BeforeCreate verifies that the household this job references exists.
func (j *ImportJob) BeforeCreate(tx *gorm.DB) error {
	_ = j.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*ImportJob)
	return tx.First(&Household{}, toSave.HouseholdID).Error
}

// SeparatorRune returns the separator as a rune.
func (j ImportJob) SeparatorRune() rune {
	r, _ := utf8.DecodeRuneInString(j.Separator)
	return r
}

// LocaleTag returns the parsed locale. An unset or unparseable locale
// returns language.Und.
func (j ImportJob) LocaleTag() language.Tag {
	tag, err := language.Parse(j.Locale)
	if err != nil {
		return language.Und
	}
	return tag
}

// Transition moves the job from one status to another.
//
// The update is conditional on the current status in the database so that
// two concurrent transitions can never both succeed. This is what makes
// starting a job an exactly-once operation.
func (j *ImportJob) Transition(db *gorm.DB, from, to ImportJobStatus) error {
	res := db.Model(&ImportJob{}).
		Where("id = ? AND status = ?", j.ID, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: the job must be %s", ErrInvalidJobState, from)
	}

	j.Status = to
	return nil
}
