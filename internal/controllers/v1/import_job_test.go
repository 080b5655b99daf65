package v1_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/kassenbuch/backend/internal/controllers/v1"
	"github.com/kassenbuch/backend/internal/models"
	"github.com/kassenbuch/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFile = "Haushalt;Konto;Datum;Verwendungszweck;Betrag;Empfänger\n" +
	"Familie Muster;Girokonto;2024-02-01;Wocheneinkauf;-12,99;EDEKA MARKT 1234\n" +
	"Familie Muster;Girokonto;2024-02-02;Gehalt;2.000,00;\n"

// testColumnMappings maps the columns of testFile.
func testColumnMappings() []v1.ColumnMappingEditable {
	return []v1.ColumnMappingEditable{
		{CSVHeader: "Haushalt", Field: "household"},
		{CSVHeader: "Konto", Field: "account"},
		{CSVHeader: "Datum", Field: "valueDate"},
		{CSVHeader: "Verwendungszweck", Field: "name"},
		{CSVHeader: "Betrag", Field: "amount"},
	}
}

func (suite *TestSuiteStandard) TestImportJobCreate() {
	household := suite.createTestHousehold(suite.T(), v1.HouseholdEditable{})

	job := suite.createTestImportJob(suite.T(), map[string]string{
		"householdId": household.Data.ID.String(),
		"name":        "Kontoauszug Februar",
		"separator":   ";",
		"locale":      "de",
	}, testFile)

	assert.Equal(suite.T(), models.ImportJobDraft, job.Data.Status)
	assert.Equal(suite.T(), "Kontoauszug Februar", job.Data.Name)
	assert.Equal(suite.T(), "export.csv", job.Data.FileName)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/import-jobs/%s", job.Data.ID), job.Data.Links.Self)
}

func (suite *TestSuiteStandard) TestImportJobCreateFails() {
	household := suite.createTestHousehold(suite.T(), v1.HouseholdEditable{})

	tests := []struct {
		name     string
		fields   map[string]string
		fileName string
		status   int
	}{
		{
			"No file",
			map[string]string{"householdId": household.Data.ID.String()},
			"",
			http.StatusBadRequest,
		},
		{
			"Wrong file suffix",
			map[string]string{"householdId": household.Data.ID.String()},
			"export.json",
			http.StatusBadRequest,
		},
		{
			"Invalid separator",
			map[string]string{"householdId": household.Data.ID.String(), "separator": "ab"},
			"export.csv",
			http.StatusBadRequest,
		},
		{
			"Non-existing household",
			map[string]string{"householdId": "27ee4ba5-3fb8-4e52-9b2f-e51f4543d4b0"},
			"export.csv",
			http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			body, headers := importJobForm(t, tt.fields, tt.fileName, testFile)

			r := test.Request(t, http.MethodPost, "http://example.com/v1/import-jobs", body, headers)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestImportJobReadiness() {
	household := suite.createTestHousehold(suite.T(), v1.HouseholdEditable{})
	job := suite.createTestImportJob(suite.T(), map[string]string{
		"householdId": household.Data.ID.String(),
		"separator":   ";",
	}, testFile)

	var readiness v1.ReadinessResponse
	r := test.Request(suite.T(), http.MethodGet, job.Data.Links.Readiness, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &readiness)

	assert.False(suite.T(), readiness.Data.Ready)
	assert.Len(suite.T(), readiness.Data.MissingFields, 4)

	r = test.Request(suite.T(), http.MethodPost, job.Data.Links.ColumnMappings, testColumnMappings())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), http.MethodGet, job.Data.Links.Readiness, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &readiness)

	assert.True(suite.T(), readiness.Data.Ready)
	assert.Empty(suite.T(), readiness.Data.MissingFields)
}

func (suite *TestSuiteStandard) TestImportJobStartNotReady() {
	household := suite.createTestHousehold(suite.T(), v1.HouseholdEditable{})
	job := suite.createTestImportJob(suite.T(), map[string]string{
		"householdId": household.Data.ID.String(),
	}, testFile)

	r := test.Request(suite.T(), http.MethodPost, job.Data.Links.Start, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnprocessableEntity)

	// The job is still a draft, fixing the mappings makes it startable
	var res v1.ImportJobResponse
	r = test.Request(suite.T(), http.MethodGet, job.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &res)
	assert.Equal(suite.T(), models.ImportJobDraft, res.Data.Status)
}

// TestImportJobLifecycle drives one import end to end through the API:
// upload, mappings, start, background processing, results.
func (suite *TestSuiteStandard) TestImportJobLifecycle() {
	t := suite.T()

	household := suite.createTestHousehold(t, v1.HouseholdEditable{})
	_ = suite.createTestAccount(t, v1.AccountEditable{HouseholdID: household.Data.ID, Name: "Girokonto"})
	counterparty := suite.createTestCounterparty(t, v1.CounterpartyEditable{HouseholdID: household.Data.ID, Name: "EDEKA"})

	job := suite.createTestImportJob(t, map[string]string{
		"householdId": household.Data.ID.String(),
		"name":        "Kontoauszug Februar",
		"separator":   ";",
		"locale":      "de",
	}, testFile)

	// Map the columns, including the counterparty column
	mappings := append(testColumnMappings(), v1.ColumnMappingEditable{CSVHeader: "Empfänger", Field: "counterparty"})
	r := test.Request(t, http.MethodPost, job.Data.Links.ColumnMappings, mappings)
	test.AssertHTTPStatus(t, &r, http.StatusCreated)

	// Map the raw counterparty string to the existing counterparty
	r = test.Request(t, http.MethodPost, job.Data.Links.ValueMappings, []v1.ValueMappingEditable{
		{SourceValue: "EDEKA MARKT 1234", TargetType: models.TargetCounterparty, TargetID: counterparty.Data.ID},
	})
	test.AssertHTTPStatus(t, &r, http.StatusCreated)

	// Start the job
	var started v1.ImportJobResponse
	r = test.Request(t, http.MethodPost, job.Data.Links.Start, "")
	test.AssertHTTPStatus(t, &r, http.StatusAccepted)
	test.DecodeResponse(t, &r, &started)
	assert.Equal(t, models.ImportJobPending, started.Data.Status)

	// A started job is frozen
	r = test.Request(t, http.MethodPatch, job.Data.Links.Self, map[string]string{"name": "New name"})
	test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

	r = test.Request(t, http.MethodPost, job.Data.Links.ColumnMappings, testColumnMappings()[:1])
	test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

	// Run the processing that normally happens in the background worker
	result, err := suite.orchestrator.Process(context.Background(), job.Data.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Succeeded)

	// The job reports the outcome
	var finished v1.ImportJobResponse
	r = test.Request(t, http.MethodGet, job.Data.Links.Self, "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)
	test.DecodeResponse(t, &r, &finished)

	assert.Equal(t, models.ImportJobCompleted, finished.Data.Status)
	assert.Equal(t, 2, finished.Data.ProcessedRows)
	assert.Equal(t, 2, finished.Data.SucceededRows)
	assert.Equal(t, 0, finished.Data.FailedRows)

	// The transactions are linked to the job
	var transactions v1.TransactionListResponse
	r = test.Request(t, http.MethodGet, finished.Data.Links.Transactions, "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)
	test.DecodeResponse(t, &r, &transactions)
	assert.Len(t, transactions.Data, 2)

	// Starting again must not create duplicates
	r = test.Request(t, http.MethodPost, job.Data.Links.Start, "")
	test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestImportJobUpdate() {
	household := suite.createTestHousehold(suite.T(), v1.HouseholdEditable{})
	job := suite.createTestImportJob(suite.T(), map[string]string{
		"householdId": household.Data.ID.String(),
		"name":        "Kontoauszug",
	}, testFile)

	var res v1.ImportJobResponse
	r := test.Request(suite.T(), http.MethodPatch, job.Data.Links.Self, map[string]string{
		"name":      "Kontoauszug Februar",
		"separator": ";",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, job.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &res)

	assert.Equal(suite.T(), "Kontoauszug Februar", res.Data.Name)
	assert.Equal(suite.T(), ";", res.Data.Separator)
}

func (suite *TestSuiteStandard) TestImportJobDelete() {
	household := suite.createTestHousehold(suite.T(), v1.HouseholdEditable{})
	job := suite.createTestImportJob(suite.T(), map[string]string{
		"householdId": household.Data.ID.String(),
	}, testFile)

	r := test.Request(suite.T(), http.MethodDelete, job.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, job.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestImportJobGetFilter() {
	household := suite.createTestHousehold(suite.T(), v1.HouseholdEditable{})
	otherHousehold := suite.createTestHousehold(suite.T(), v1.HouseholdEditable{Name: "WG Sonnenstraße"})

	_ = suite.createTestImportJob(suite.T(), map[string]string{"householdId": household.Data.ID.String(), "name": "Februar"}, testFile)
	_ = suite.createTestImportJob(suite.T(), map[string]string{"householdId": household.Data.ID.String(), "name": "März"}, testFile)
	_ = suite.createTestImportJob(suite.T(), map[string]string{"householdId": otherHousehold.Data.ID.String(), "name": "Februar"}, testFile)

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"By household", fmt.Sprintf("household=%s", household.Data.ID), 2},
		{"By status", "status=DRAFT", 3},
		{"By status without match", "status=COMPLETED", 0},
		{"By name", "name=Februar", 2},
		{"Limit", "limit=1", 1},
		{"Offset", "offset=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var res v1.ImportJobListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/import-jobs?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &res)

			assert.Len(t, res.Data, tt.len)
		})
	}
}
