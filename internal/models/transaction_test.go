package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/kassenbuch/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestTransactionNoAccount() {
	transaction := models.Transaction{
		AccountID: uuid.New(),
		Amount:    decimal.NewFromFloat(-12.99),
		Name:      "Orphan",
	}

	err := models.DB.Create(&transaction).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestTransactionDefaultsValueDate() {
	household := suite.createTestHousehold(models.Household{})
	account := suite.createTestAccount(models.Account{HouseholdID: household.ID, Name: "Girokonto"})

	transaction := models.Transaction{
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(-12.99),
		Name:      " Groceries ",
	}

	err := models.DB.Create(&transaction).Error
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), transaction.ValueDate.IsZero())
	assert.Equal(suite.T(), "Groceries", transaction.Name)
}

func (suite *TestSuiteStandard) TestTransactionTags() {
	household := suite.createTestHousehold(models.Household{})
	account := suite.createTestAccount(models.Account{HouseholdID: household.ID, Name: "Girokonto"})

	urlaub := models.Tag{HouseholdID: household.ID, Name: "Urlaub"}
	err := models.DB.Create(&urlaub).Error
	assert.NoError(suite.T(), err)

	transaction := models.Transaction{
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(-129.00),
		ValueDate: time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC),
		Name:      "Hotel",
		Tags:      []models.Tag{urlaub},
	}

	err = models.DB.Create(&transaction).Error
	assert.NoError(suite.T(), err)

	var reloaded models.Transaction
	err = models.DB.Preload("Tags").First(&reloaded, transaction.ID).Error
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), reloaded.Tags, 1)
	assert.Equal(suite.T(), "Urlaub", reloaded.Tags[0].Name)
}
