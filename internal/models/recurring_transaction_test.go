package models_test

import (
	"testing"
	"time"

	"github.com/kassenbuch/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestRecurringTransactionInterval() {
	household := suite.createTestHousehold(models.Household{})
	account := suite.createTestAccount(models.Account{HouseholdID: household.ID, Name: "Girokonto"})

	err := models.DB.Create(&models.RecurringTransaction{
		AccountID: account.ID,
		Name:      "Rent",
		Interval:  "FORTNIGHTLY",
		NextDate:  time.Now(),
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrInvalidRecurringInterval)

	err = models.DB.Create(&models.RecurringTransaction{
		AccountID: account.ID,
		Name:      "Rent",
		Interval:  models.IntervalMonthly,
		NextDate:  time.Now(),
	}).Error
	assert.NoError(suite.T(), err)
}

func (suite *TestSuiteStandard) TestRecurringTransactionAdvance() {
	start := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		interval models.RecurringInterval
		next     time.Time
	}{
		{"Weekly", models.IntervalWeekly, time.Date(2024, 2, 7, 0, 0, 0, 0, time.UTC)},
		{"Monthly", models.IntervalMonthly, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
		{"Quarterly", models.IntervalQuarterly, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"Yearly", models.IntervalYearly, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := models.RecurringTransaction{Interval: tt.interval, NextDate: start}
			r.Advance()
			assert.True(t, r.NextDate.Equal(tt.next), "next date is %s, expected %s", r.NextDate, tt.next)
		})
	}
}
