package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurringInterval is the interval in which a recurring
// transaction template is due.
//
// swagger:enum RecurringInterval
type RecurringInterval string

const (
	IntervalWeekly    RecurringInterval = "WEEKLY"
	IntervalMonthly   RecurringInterval = "MONTHLY"
	IntervalQuarterly RecurringInterval = "QUARTERLY"
	IntervalYearly    RecurringInterval = "YEARLY"
)

var ErrInvalidRecurringInterval = errors.New("the recurring interval must be one of WEEKLY, MONTHLY, QUARTERLY, YEARLY")

// RecurringTransaction is a template from which transactions are
// created on a schedule, e.g. rent or salary.
type RecurringTransaction struct {
	DefaultModel
	Account        Account         `json:"-"`
	AccountID      uuid.UUID       `gorm:"index"`
	Amount         decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Name           string
	Description    string
	CategoryID     *uuid.UUID `gorm:"constraint:OnDelete:SET NULL"`
	CounterpartyID *uuid.UUID `gorm:"constraint:OnDelete:SET NULL"`
	Interval       RecurringInterval
	NextDate       time.Time
	EndDate        *time.Time
}

// BeforeSave validates the interval and trims whitespace.
func (r *RecurringTransaction) BeforeSave(_ *gorm.DB) error {
	switch r.Interval {
	case IntervalWeekly, IntervalMonthly, IntervalQuarterly, IntervalYearly:
	default:
		return ErrInvalidRecurringInterval
	}

	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)

	return nil
}

// BeforeCreate verifies that the account this template references exists.
func (r *RecurringTransaction) BeforeCreate(tx *gorm.DB) error {
	_ = r.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*RecurringTransaction)
	return tx.First(&Account{}, toSave.AccountID).Error
}

// Advance moves NextDate forward by one interval.
func (r *RecurringTransaction) Advance() {
	switch r.Interval {
	case IntervalWeekly:
		r.NextDate = r.NextDate.AddDate(0, 0, 7)
	case IntervalMonthly:
		r.NextDate = r.NextDate.AddDate(0, 1, 0)
	case IntervalQuarterly:
		r.NextDate = r.NextDate.AddDate(0, 3, 0)
	case IntervalYearly:
		r.NextDate = r.NextDate.AddDate(1, 0, 0)
	}
}
