package models_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/kassenbuch/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func (suite *TestSuiteStandard) TestImportJobSeparator() {
	household := suite.createTestHousehold(models.Household{})

	tests := []struct {
		name      string
		separator string
		err       error
	}{
		{"Default", "", nil},
		{"Comma", ",", nil},
		{"Semicolon", ";", nil},
		{"Tab", "\t", nil},
		{"Two characters", "ab", models.ErrInvalidSeparator},
		{"Word", "comma", models.ErrInvalidSeparator},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			job := models.ImportJob{
				HouseholdID: household.ID,
				Name:        "Separator test",
				Separator:   tt.separator,
			}

			err := models.DB.Create(&job).Error
			if tt.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestImportJobSeparatorRune() {
	job := models.ImportJob{Separator: ";"}
	assert.Equal(suite.T(), ';', job.SeparatorRune())
}

func (suite *TestSuiteStandard) TestImportJobLocale() {
	household := suite.createTestHousehold(models.Household{})

	tests := []struct {
		name   string
		locale string
		err    error
	}{
		{"Unset", "", nil},
		{"German", "de", nil},
		{"Austrian German", "de-AT", nil},
		{"American English", "en-US", nil},
		{"Garbage", "not a locale", models.ErrInvalidLocale},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			job := models.ImportJob{
				HouseholdID: household.ID,
				Name:        "Locale test",
				Locale:      tt.locale,
			}

			err := models.DB.Create(&job).Error
			if tt.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestImportJobLocaleTag() {
	assert.Equal(suite.T(), language.Und, models.ImportJob{}.LocaleTag())
	assert.Equal(suite.T(), language.MustParse("de"), models.ImportJob{Locale: "de"}.LocaleTag())
}

func (suite *TestSuiteStandard) TestImportJobDefaultsToDraft() {
	household := suite.createTestHousehold(models.Household{})
	job := suite.createTestImportJob(models.ImportJob{HouseholdID: household.ID, Name: "Defaults"})

	assert.Equal(suite.T(), models.ImportJobDraft, job.Status)
	assert.Equal(suite.T(), ",", job.Separator)
}

func (suite *TestSuiteStandard) TestImportJobNoHousehold() {
	job := models.ImportJob{
		HouseholdID: uuid.New(),
		Name:        "Orphan",
	}

	err := models.DB.Create(&job).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestImportJobTransition() {
	household := suite.createTestHousehold(models.Household{})
	job := suite.createTestImportJob(models.ImportJob{HouseholdID: household.ID, Name: "Transitions"})

	err := job.Transition(models.DB, models.ImportJobDraft, models.ImportJobPending)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ImportJobPending, job.Status)

	var reloaded models.ImportJob
	err = models.DB.First(&reloaded, job.ID).Error
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ImportJobPending, reloaded.Status)
}

// TestImportJobTransitionOnce verifies that of two transitions with the
// same precondition only the first succeeds. This is what makes starting
// a job an exactly-once operation.
func (suite *TestSuiteStandard) TestImportJobTransitionOnce() {
	household := suite.createTestHousehold(models.Household{})
	job := suite.createTestImportJob(models.ImportJob{HouseholdID: household.ID, Name: "Exactly once"})

	other := job

	err := job.Transition(models.DB, models.ImportJobDraft, models.ImportJobPending)
	assert.NoError(suite.T(), err)

	err = other.Transition(models.DB, models.ImportJobDraft, models.ImportJobPending)
	assert.ErrorIs(suite.T(), err, models.ErrInvalidJobState)
}

func (suite *TestSuiteStandard) TestImportJobTransitionWrongState() {
	household := suite.createTestHousehold(models.Household{})
	job := suite.createTestImportJob(models.ImportJob{HouseholdID: household.ID, Name: "Wrong state"})

	err := job.Transition(models.DB, models.ImportJobPending, models.ImportJobInProgress)
	assert.ErrorIs(suite.T(), err, models.ErrInvalidJobState)

	// The stored status is untouched
	var reloaded models.ImportJob
	err = models.DB.First(&reloaded, job.ID).Error
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ImportJobDraft, reloaded.Status)
}

// TestImportJobDeleteCascades verifies that deleting a job deletes its
// mappings, but keeps transactions that were created by it.
func (suite *TestSuiteStandard) TestImportJobDeleteCascades() {
	household := suite.createTestHousehold(models.Household{})
	job := suite.createTestImportJob(models.ImportJob{HouseholdID: household.ID, Name: "Cascade"})

	mapping := models.ColumnMapping{
		ImportJobID: job.ID,
		CSVHeader:   "Betrag",
		Field:       "amount",
	}
	err := models.DB.Create(&mapping).Error
	assert.NoError(suite.T(), err)

	err = models.DB.Delete(&job).Error
	assert.NoError(suite.T(), err)

	var count int64
	err = models.DB.Model(&models.ColumnMapping{}).Where("import_job_id = ?", job.ID).Count(&count).Error
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(0), count)
}
