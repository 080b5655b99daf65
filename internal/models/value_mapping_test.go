package models_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/kassenbuch/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestValueMappingScope() {
	household := suite.createTestHousehold(models.Household{})
	job := suite.createTestImportJob(models.ImportJob{HouseholdID: household.ID, Name: "Scope test"})

	profile := models.MappingProfile{HouseholdID: household.ID, Name: "Sparkasse"}
	err := models.DB.Create(&profile).Error
	assert.NoError(suite.T(), err)

	tests := []struct {
		name      string
		jobID     *uuid.UUID
		profileID *uuid.UUID
		err       error
	}{
		{"Job scope", &job.ID, nil, nil},
		{"Profile scope", nil, &profile.ID, nil},
		{"No scope", nil, nil, models.ErrValueMappingScope},
		{"Both scopes", &job.ID, &profile.ID, models.ErrValueMappingScope},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			mapping := models.ValueMapping{
				ImportJobID:      tt.jobID,
				MappingProfileID: tt.profileID,
				SourceValue:      "EDEKA MARKT " + tt.name,
				TargetType:       models.TargetCounterparty,
				TargetID:         uuid.New(),
			}

			err := models.DB.Create(&mapping).Error
			if tt.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestValueMappingValidation() {
	household := suite.createTestHousehold(models.Household{})
	job := suite.createTestImportJob(models.ImportJob{HouseholdID: household.ID, Name: "Validation test"})

	suite.T().Run("Invalid target type", func(t *testing.T) {
		err := models.DB.Create(&models.ValueMapping{
			ImportJobID: &job.ID,
			SourceValue: "REWE",
			TargetType:  "merchant",
			TargetID:    uuid.New(),
		}).Error
		assert.ErrorIs(t, err, models.ErrInvalidTargetType)
	})

	suite.T().Run("Empty source value", func(t *testing.T) {
		err := models.DB.Create(&models.ValueMapping{
			ImportJobID: &job.ID,
			SourceValue: "",
			TargetType:  models.TargetCounterparty,
			TargetID:    uuid.New(),
		}).Error
		assert.ErrorIs(t, err, models.ErrValueMappingEmptyValue)
	})

	suite.T().Run("Non-existing job", func(t *testing.T) {
		id := uuid.New()
		err := models.DB.Create(&models.ValueMapping{
			ImportJobID: &id,
			SourceValue: "REWE",
			TargetType:  models.TargetCounterparty,
			TargetID:    uuid.New(),
		}).Error
		assert.ErrorIs(t, err, models.ErrResourceNotFound)
	})
}

// TestValueMappingUnique verifies that one source value cannot map to two
// targets of the same type within the same scope.
func (suite *TestSuiteStandard) TestValueMappingUnique() {
	household := suite.createTestHousehold(models.Household{})
	job := suite.createTestImportJob(models.ImportJob{HouseholdID: household.ID, Name: "Unique test"})

	mapping := models.ValueMapping{
		ImportJobID: &job.ID,
		SourceValue: "EDEKA MARKT 1234",
		TargetType:  models.TargetCounterparty,
		TargetID:    uuid.New(),
	}
	err := models.DB.Create(&mapping).Error
	assert.NoError(suite.T(), err)

	duplicate := models.ValueMapping{
		ImportJobID: &job.ID,
		SourceValue: "EDEKA MARKT 1234",
		TargetType:  models.TargetCounterparty,
		TargetID:    uuid.New(),
	}
	err = models.DB.Create(&duplicate).Error
	assert.ErrorIs(suite.T(), err, models.ErrValueMappingNotUnique)

	// The same source value for a different target type is allowed
	other := models.ValueMapping{
		ImportJobID: &job.ID,
		SourceValue: "EDEKA MARKT 1234",
		TargetType:  models.TargetCategory,
		TargetID:    uuid.New(),
	}
	err = models.DB.Create(&other).Error
	assert.NoError(suite.T(), err)
}
