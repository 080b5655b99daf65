package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction represents a single booking on an account.
//
// The amount is signed: positive amounts are income for the
// account, negative amounts are expenses.
type Transaction struct {
	DefaultModel
	Account        Account         `json:"-"`
	AccountID      uuid.UUID       `gorm:"index"`
	Amount         decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	ValueDate      time.Time
	ValueDateUntil *time.Time
	Name           string
	Description    string
	Category       *Category     `json:"-"`
	CategoryID     *uuid.UUID    `gorm:"constraint:OnDelete:SET NULL"`
	Counterparty   *Counterparty `json:"-"`
	CounterpartyID *uuid.UUID    `gorm:"constraint:OnDelete:SET NULL"`
	Tags           []Tag         `gorm:"many2many:transaction_tags"`

	// ImportJobID references the import job that created this transaction.
	// Deleting the job keeps the transaction, only the reference is cleared.
	ImportJobID *uuid.UUID `gorm:"constraint:OnDelete:SET NULL"`

	// ImportWarnings holds soft warnings from the import for user review,
	// one per line.
	ImportWarnings string
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	_ = t.DefaultModel.AfterFind(tx)

	t.ValueDate = t.ValueDate.In(time.UTC)
	if t.ValueDateUntil != nil {
		date := t.ValueDateUntil.In(time.UTC)
		t.ValueDateUntil = &date
	}

	return nil
}

// BeforeSave sets the timezone for the value date to UTC and
// trims whitespace from all strings.
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	if t.ValueDate.IsZero() {
		t.ValueDate = time.Now().In(time.UTC)
	} else {
		t.ValueDate = t.ValueDate.In(time.UTC)
	}

	t.Name = strings.TrimSpace(t.Name)
	t.Description = strings.TrimSpace(t.Description)

	return nil
}

// BeforeCreate verifies that the account this transaction references exists.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Transaction)
	return tx.First(&Account{}, toSave.AccountID).Error
}
