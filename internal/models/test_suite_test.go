package models_test

import (
	"log"
	"os"
	"testing"

	"github.com/kassenbuch/backend/internal/models"
	"github.com/stretchr/testify/suite"
)

type TestSuiteStandard struct {
	suite.Suite
}

// Pseudo-Test run by go test that runs the test suite.
func TestSuite(t *testing.T) {
	suite.Run(t, new(TestSuiteStandard))
}

func (suite *TestSuiteStandard) SetupSuite() {
	os.Setenv("LOG_FORMAT", "human")
	os.Setenv("GIN_MODE", "debug")
}

// SetupTest is called before each test in the suite.
func (suite *TestSuiteStandard) SetupTest() {
	err := models.Connect(":memory:")
	if err != nil {
		log.Fatalf("Database connection failed with: %#v", err)
	}
}

// TearDownTest is called after each test in the suite.
func (suite *TestSuiteStandard) TearDownTest() {
	suite.CloseDB()
}

// CloseDB closes the database connection. This enables testing the
// handling of database errors.
func (suite *TestSuiteStandard) CloseDB() {
	sqlDB, err := models.DB.DB()
	if err != nil {
		suite.Assert().FailNowf("Failed to get database resource for teardown: %v", err.Error())
	}
	sqlDB.Close()
}

func (suite *TestSuiteStandard) createTestHousehold(household models.Household) models.Household {
	if household.Name == "" {
		household.Name = "Test Household"
	}

	err := models.DB.Create(&household).Error
	if err != nil {
		suite.Assert().FailNow("household could not be created", err)
	}

	return household
}

func (suite *TestSuiteStandard) createTestAccount(account models.Account) models.Account {
	err := models.DB.Create(&account).Error
	if err != nil {
		suite.Assert().FailNow("account could not be created", err)
	}

	return account
}

func (suite *TestSuiteStandard) createTestCategory(category models.Category) models.Category {
	err := models.DB.Create(&category).Error
	if err != nil {
		suite.Assert().FailNow("category could not be created", err)
	}

	return category
}

func (suite *TestSuiteStandard) createTestImportJob(job models.ImportJob) models.ImportJob {
	err := models.DB.Create(&job).Error
	if err != nil {
		suite.Assert().FailNow("import job could not be created", err)
	}

	return job
}
