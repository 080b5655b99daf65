package models_test

import (
	"github.com/google/uuid"
	"github.com/kassenbuch/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCategorizationRuleReferences() {
	household := suite.createTestHousehold(models.Household{})
	category := suite.createTestCategory(models.Category{HouseholdID: household.ID, Name: "Groceries"})

	err := models.DB.Create(&models.CategorizationRule{
		HouseholdID: household.ID,
		Priority:    1,
		Match:       "EDEKA*",
		CategoryID:  uuid.New(),
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	err = models.DB.Create(&models.CategorizationRule{
		HouseholdID: household.ID,
		Priority:    1,
		Match:       "EDEKA*",
		CategoryID:  category.ID,
	}).Error
	assert.NoError(suite.T(), err)
}
