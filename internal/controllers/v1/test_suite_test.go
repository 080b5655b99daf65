package v1_test

import (
	"bytes"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"testing"

	v1 "github.com/kassenbuch/backend/internal/controllers/v1"
	"github.com/kassenbuch/backend/internal/importer"
	"github.com/kassenbuch/backend/internal/models"
	"github.com/kassenbuch/backend/internal/storage"
	"github.com/kassenbuch/backend/test"
	"github.com/stretchr/testify/suite"
)

type TestSuiteStandard struct {
	suite.Suite
	orchestrator *importer.Orchestrator
}

// Pseudo-Test run by go test that runs the test suite.
func TestSuite(t *testing.T) {
	suite.Run(t, new(TestSuiteStandard))
}

func (suite *TestSuiteStandard) SetupSuite() {
	os.Setenv("LOG_FORMAT", "human")
	os.Setenv("GIN_MODE", "debug")
	os.Setenv("API_URL", "http://example.com")
}

// SetupTest is called before each test in the suite.
func (suite *TestSuiteStandard) SetupTest() {
	err := models.Connect(":memory:")
	if err != nil {
		log.Fatalf("Database connection failed with: %#v", err)
	}

	uploads, err := storage.NewLocal(suite.T().TempDir())
	if err != nil {
		log.Fatalf("Upload directory could not be created: %#v", err)
	}

	suite.orchestrator = &importer.Orchestrator{
		DB:      models.DB,
		Files:   uploads,
		Queue:   importer.NewQueue(16),
		Workers: 2,
	}

	v1.Configure(suite.orchestrator, uploads)
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

func (suite *TestSuiteStandard) createTestHousehold(t *testing.T, editable v1.HouseholdEditable) v1.HouseholdResponse {
	if editable.Name == "" {
		editable.Name = "Familie Muster"
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/households", []v1.HouseholdEditable{editable})
	test.AssertHTTPStatus(t, &r, http.StatusCreated)

	var res v1.HouseholdCreateResponse
	test.DecodeResponse(t, &r, &res)

	return res.Data[0]
}

func (suite *TestSuiteStandard) createTestAccount(t *testing.T, editable v1.AccountEditable) v1.AccountResponse {
	r := test.Request(t, http.MethodPost, "http://example.com/v1/accounts", []v1.AccountEditable{editable})
	test.AssertHTTPStatus(t, &r, http.StatusCreated)

	var res v1.AccountCreateResponse
	test.DecodeResponse(t, &r, &res)

	return res.Data[0]
}

func (suite *TestSuiteStandard) createTestCategory(t *testing.T, editable v1.CategoryEditable) v1.CategoryResponse {
	r := test.Request(t, http.MethodPost, "http://example.com/v1/categories", []v1.CategoryEditable{editable})
	test.AssertHTTPStatus(t, &r, http.StatusCreated)

	var res v1.CategoryCreateResponse
	test.DecodeResponse(t, &r, &res)

	return res.Data[0]
}

func (suite *TestSuiteStandard) createTestCounterparty(t *testing.T, editable v1.CounterpartyEditable) v1.CounterpartyResponse {
	r := test.Request(t, http.MethodPost, "http://example.com/v1/counterparties", []v1.CounterpartyEditable{editable})
	test.AssertHTTPStatus(t, &r, http.StatusCreated)

	var res v1.CounterpartyCreateResponse
	test.DecodeResponse(t, &r, &res)

	return res.Data[0]
}

// importJobForm builds the multipart body for the import job create
// endpoint.
func importJobForm(t *testing.T, fields map[string]string, fileName, fileContent string) (*bytes.Buffer, map[string]string) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for field, value := range fields {
		err := writer.WriteField(field, value)
		if err != nil {
			t.Fatalf("could not write form field: %v", err)
		}
	}

	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		if err != nil {
			t.Fatalf("could not create form file: %v", err)
		}

		_, err = part.Write([]byte(fileContent))
		if err != nil {
			t.Fatalf("could not write form file: %v", err)
		}
	}

	err := writer.Close()
	if err != nil {
		t.Fatalf("could not close multipart writer: %v", err)
	}

	return &body, map[string]string{"Content-Type": writer.FormDataContentType()}
}

func (suite *TestSuiteStandard) createTestImportJob(t *testing.T, fields map[string]string, fileContent string) v1.ImportJobResponse {
	body, headers := importJobForm(t, fields, "export.csv", fileContent)

	r := test.Request(t, http.MethodPost, "http://example.com/v1/import-jobs", body, headers)
	test.AssertHTTPStatus(t, &r, http.StatusCreated)

	var res v1.ImportJobResponse
	test.DecodeResponse(t, &r, &res)

	return res
}
