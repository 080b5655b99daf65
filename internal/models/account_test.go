package models_test

import (
	"testing"
	"time"

	"github.com/kassenbuch/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestAccountTrimWhitespace() {
	household := suite.createTestHousehold(models.Household{})

	account := suite.createTestAccount(models.Account{
		HouseholdID: household.ID,
		Name:        " Girokonto ",
		Note:        " Main account\t",
	})

	assert.Equal(suite.T(), "Girokonto", account.Name)
	assert.Equal(suite.T(), "Main account", account.Note)
}

func (suite *TestSuiteStandard) TestAccountNameUniquePerHousehold() {
	household := suite.createTestHousehold(models.Household{})
	otherHousehold := suite.createTestHousehold(models.Household{Name: "Other"})

	_ = suite.createTestAccount(models.Account{HouseholdID: household.ID, Name: "Girokonto"})

	err := models.DB.Create(&models.Account{HouseholdID: household.ID, Name: "Girokonto"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrAccountNameNotUnique)

	// The same name in another household is fine
	err = models.DB.Create(&models.Account{HouseholdID: otherHousehold.ID, Name: "Girokonto"}).Error
	assert.NoError(suite.T(), err)
}

func (suite *TestSuiteStandard) TestAccountBalance() {
	household := suite.createTestHousehold(models.Household{})

	initialBalanceDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	account := suite.createTestAccount(models.Account{
		HouseholdID:        household.ID,
		Name:               "Balance test",
		InitialBalance:     decimal.NewFromFloat(100),
		InitialBalanceDate: &initialBalanceDate,
	})

	transactions := []models.Transaction{
		{AccountID: account.ID, Amount: decimal.NewFromFloat(-17.23), ValueDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), Name: "Groceries"},
		{AccountID: account.ID, Amount: decimal.NewFromFloat(2000), ValueDate: time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC), Name: "Salary"},
		{AccountID: account.ID, Amount: decimal.NewFromFloat(-50), ValueDate: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), Name: "Way in the future"},
	}
	for i := range transactions {
		err := models.DB.Create(&transactions[i]).Error
		assert.NoError(suite.T(), err)
	}

	tests := []struct {
		name    string
		at      time.Time
		balance float64
	}{
		{"Before the initial balance date", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 0},
		{"After the first transaction", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), 82.77},
		{"After the salary", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), 2082.77},
		{"All transactions", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 2032.77},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			balance, err := account.Balance(models.DB, tt.at)
			assert.NoError(t, err)
			assert.True(t, balance.Equal(decimal.NewFromFloat(tt.balance)), "balance is %s, expected %f", balance, tt.balance)
		})
	}
}
