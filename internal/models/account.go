package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account represents an asset account, e.g. a bank account.
type Account struct {
	DefaultModel
	Household          Household `json:"-"`
	HouseholdID        uuid.UUID `gorm:"uniqueIndex:account_name_household_id"`
	Name               string    `gorm:"uniqueIndex:account_name_household_id"`
	Note               string
	InitialBalance     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	InitialBalanceDate *time.Time
	Archived           bool
}

// BeforeSave trims whitespace from all strings.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Note = strings.TrimSpace(a.Note)

	return nil
}

// BeforeCreate verifies that the household this account references exists.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Account)
	return tx.First(&Household{}, toSave.HouseholdID).Error
}

// Balance calculates the balance of the account at a specific point in time,
// including all transactions before it.
func (a Account) Balance(db *gorm.DB, at time.Time) (balance decimal.Decimal, err error) {
	var transactions []Transaction

	err = db.
		Where(&Transaction{AccountID: a.ID}).
		Where("datetime(transactions.value_date) < datetime(?)", at).
		Find(&transactions).Error
	if err != nil {
		return decimal.Zero, err
	}

	if a.InitialBalanceDate == nil || at.After(*a.InitialBalanceDate) {
		balance = a.InitialBalance
	}

	for _, t := range transactions {
		balance = balance.Add(t.Amount)
	}

	return
}
