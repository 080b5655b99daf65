package importer_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/kassenbuch/backend/internal/importer"
	"github.com/kassenbuch/backend/internal/importer/reader"
	"github.com/kassenbuch/backend/internal/models"
	"github.com/kassenbuch/backend/internal/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	orchestrator *importer.Orchestrator
	household    models.Household
	account      models.Account
	category     models.Category
	job          models.ImportJob
}

// defaultMappings maps the columns of the fixture files.
func defaultMappings() []models.ColumnMapping {
	return []models.ColumnMapping{
		{CSVHeader: "Haushalt", Field: "household"},
		{CSVHeader: "Konto", Field: "account"},
		{CSVHeader: "Datum", Field: "valueDate"},
		{CSVHeader: "Verwendungszweck", Field: "name"},
		{CSVHeader: "Betrag", Field: "amount"},
		{CSVHeader: "Kategorie", Field: "category"},
	}
}

// setup creates a household with reference data, stores the file and
// creates a DRAFT job with the given column mappings.
func setup(t *testing.T, file string, mappings []models.ColumnMapping) fixture {
	t.Helper()

	err := models.Connect(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := models.DB.DB()
		sqlDB.Close()
	})

	files, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	path, err := files.Save(strings.NewReader(file))
	require.NoError(t, err)

	household := models.Household{Name: "Familie Muster"}
	require.NoError(t, models.DB.Create(&household).Error)

	account := models.Account{HouseholdID: household.ID, Name: "Girokonto"}
	require.NoError(t, models.DB.Create(&account).Error)

	category := models.Category{HouseholdID: household.ID, Name: "Groceries"}
	require.NoError(t, models.DB.Create(&category).Error)

	job := models.ImportJob{
		HouseholdID: household.ID,
		Name:        "Kontoauszug Februar",
		FileName:    "export.csv",
		FilePath:    path,
		Separator:   ";",
		Locale:      "de",
	}
	require.NoError(t, models.DB.Create(&job).Error)

	for _, m := range mappings {
		m.ImportJobID = job.ID
		require.NoError(t, models.DB.Create(&m).Error)
	}

	return fixture{
		orchestrator: &importer.Orchestrator{DB: models.DB, Files: files, Workers: 2},
		household:    household,
		account:      account,
		category:     category,
		job:          job,
	}
}

func (f fixture) reloadJob(t *testing.T) models.ImportJob {
	t.Helper()

	var job models.ImportJob
	require.NoError(t, models.DB.First(&job, f.job.ID).Error)
	return job
}

func TestProcess(t *testing.T) {
	file := "Haushalt;Konto;Datum;Verwendungszweck;Betrag;Kategorie\n" +
		"Familie Muster;Girokonto;2024-02-01;Wocheneinkauf;-12,99;Groceries\n" +
		"Familie Muster;Girokonto;2024-02-02;Gehalt;2.000,00;\n"

	f := setup(t, file, defaultMappings())

	require.NoError(t, f.orchestrator.Start(f.job.ID))

	result, err := f.orchestrator.Process(context.Background(), f.job.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 0, result.Failed)
	assert.Empty(t, result.Errors)

	job := f.reloadJob(t)
	assert.Equal(t, models.ImportJobCompleted, job.Status)
	assert.Equal(t, 2, job.ProcessedRows)
	assert.Equal(t, 2, job.SucceededRows)
	assert.Equal(t, 0, job.FailedRows)

	var transactions []models.Transaction
	require.NoError(t, models.DB.Where("import_job_id = ?", f.job.ID).Find(&transactions).Error)
	assert.Len(t, transactions, 2)
}

// TestProcessPartialFailure verifies that row failures reject only their
// row and that the job still completes.
func TestProcessPartialFailure(t *testing.T) {
	file := "Haushalt;Konto;Datum;Verwendungszweck;Betrag;Kategorie\n" +
		"Familie Muster;Girokonto;2024-02-01;Wocheneinkauf;-12,99;\n" +
		"Familie Muster;Girokonto;2024-02-02;Kaputt;zwölf;\n" +
		"Familie Muster;Girokonto;2024-02-03;Gehalt;2.000,00;\n"

	f := setup(t, file, defaultMappings())

	require.NoError(t, f.orchestrator.Start(f.job.ID))

	result, err := f.orchestrator.Process(context.Background(), f.job.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Processed)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.ErrorIs(t, result.Errors[0], importer.ErrInvalidAmount)

	job := f.reloadJob(t)
	assert.Equal(t, models.ImportJobCompleted, job.Status)
	assert.Equal(t, job.ProcessedRows, job.SucceededRows+job.FailedRows)
}

// TestProcessSoftWarnings verifies that unresolved optional references
// still create the transaction, with the warnings stored on it.
func TestProcessSoftWarnings(t *testing.T) {
	file := "Haushalt;Konto;Datum;Verwendungszweck;Betrag;Kategorie\n" +
		"Familie Muster;Girokonto;2024-02-01;Wocheneinkauf;-12,99;Vergnügen\n"

	f := setup(t, file, defaultMappings())

	require.NoError(t, f.orchestrator.Start(f.job.ID))

	result, err := f.orchestrator.Process(context.Background(), f.job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Succeeded)

	var transaction models.Transaction
	require.NoError(t, models.DB.Where("import_job_id = ?", f.job.ID).First(&transaction).Error)
	assert.Nil(t, transaction.CategoryID)
	assert.Contains(t, transaction.ImportWarnings, "Vergnügen")
}

func TestStartMissingMapping(t *testing.T) {
	f := setup(t, "Betrag\n-12,99\n", []models.ColumnMapping{
		{CSVHeader: "Betrag", Field: "amount"},
	})

	err := f.orchestrator.Start(f.job.ID)
	assert.ErrorIs(t, err, importer.ErrMissingMapping)

	// The job stays startable
	assert.Equal(t, models.ImportJobDraft, f.reloadJob(t).Status)
}

// TestStartTwice verifies that a job can only be started once.
func TestStartTwice(t *testing.T) {
	file := "Haushalt;Konto;Datum;Verwendungszweck;Betrag;Kategorie\n" +
		"Familie Muster;Girokonto;2024-02-01;Wocheneinkauf;-12,99;\n"

	f := setup(t, file, defaultMappings())

	require.NoError(t, f.orchestrator.Start(f.job.ID))

	err := f.orchestrator.Start(f.job.ID)
	assert.ErrorIs(t, err, models.ErrInvalidJobState)

	// Even after completion a second start must not create duplicates
	_, err = f.orchestrator.Process(context.Background(), f.job.ID)
	require.NoError(t, err)

	err = f.orchestrator.Start(f.job.ID)
	assert.ErrorIs(t, err, models.ErrInvalidJobState)

	var count int64
	require.NoError(t, models.DB.Model(&models.Transaction{}).Where("import_job_id = ?", f.job.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// TestStartQueueFull verifies that a full queue rolls the job back to
// DRAFT so that a later start can succeed.
func TestStartQueueFull(t *testing.T) {
	file := "Haushalt;Konto;Datum;Verwendungszweck;Betrag;Kategorie\n" +
		"Familie Muster;Girokonto;2024-02-01;Wocheneinkauf;-12,99;\n"

	f := setup(t, file, defaultMappings())
	f.orchestrator.Queue = importer.NewQueue(0)

	err := f.orchestrator.Start(f.job.ID)
	assert.ErrorIs(t, err, importer.ErrQueueFull)
	assert.Equal(t, models.ImportJobDraft, f.reloadJob(t).Status)

	f.orchestrator.Queue = importer.NewQueue(1)
	assert.NoError(t, f.orchestrator.Start(f.job.ID))
}

func TestProcessMalformedFile(t *testing.T) {
	f := setup(t, "", defaultMappings())

	require.NoError(t, f.orchestrator.Start(f.job.ID))

	_, err := f.orchestrator.Process(context.Background(), f.job.ID)
	assert.ErrorIs(t, err, reader.ErrMalformedInput)

	job := f.reloadJob(t)
	assert.Equal(t, models.ImportJobFailed, job.Status)
	assert.NotEmpty(t, job.Error)
}

// TestProcessMissingRequiredColumn verifies that a required field whose
// mapped column does not exist in the file fails the whole job.
func TestProcessMissingRequiredColumn(t *testing.T) {
	file := "Haushalt;Datum;Verwendungszweck;Betrag\n" +
		"Familie Muster;2024-02-01;Wocheneinkauf;-12,99\n"

	f := setup(t, file, defaultMappings())

	require.NoError(t, f.orchestrator.Start(f.job.ID))

	_, err := f.orchestrator.Process(context.Background(), f.job.ID)
	assert.ErrorIs(t, err, importer.ErrMissingMapping)
	assert.Equal(t, models.ImportJobFailed, f.reloadJob(t).Status)
}

// TestProcessCancelled verifies cooperative cancellation: a cancelled
// context stops row persistence and moves the job to CANCELLED.
func TestProcessCancelled(t *testing.T) {
	file := "Haushalt;Konto;Datum;Verwendungszweck;Betrag;Kategorie\n" +
		"Familie Muster;Girokonto;2024-02-01;Wocheneinkauf;-12,99;\n" +
		"Familie Muster;Girokonto;2024-02-02;Gehalt;2.000,00;\n"

	f := setup(t, file, defaultMappings())

	require.NoError(t, f.orchestrator.Start(f.job.ID))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := f.orchestrator.Process(ctx, f.job.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Succeeded)
	assert.Equal(t, models.ImportJobCancelled, f.reloadJob(t).Status)
}

// TestWork verifies that the background worker drains the queue.
func TestWork(t *testing.T) {
	file := "Haushalt;Konto;Datum;Verwendungszweck;Betrag;Kategorie\n" +
		"Familie Muster;Girokonto;2024-02-01;Wocheneinkauf;-12,99;\n"

	f := setup(t, file, defaultMappings())

	queue := importer.NewQueue(4)
	f.orchestrator.Queue = queue

	require.NoError(t, f.orchestrator.Start(f.job.ID))

	// Closing the queue makes Work return once it is drained
	queue.Close()
	f.orchestrator.Work(context.Background(), queue)

	assert.Equal(t, models.ImportJobCompleted, f.reloadJob(t).Status)
}

// TestWorkReportsRowErrors verifies that row failures of a job processed
// in the background end up in the log. The job record only carries the
// counts, so the log is the only place users can see which rows failed
// and why.
func TestWorkReportsRowErrors(t *testing.T) {
	file := "Haushalt;Konto;Datum;Verwendungszweck;Betrag;Kategorie\n" +
		"Familie Muster;Girokonto;2024-02-01;Wocheneinkauf;-12,99;\n" +
		"Familie Muster;Girokonto;2024-02-02;Kaputt;zwölf;\n"

	f := setup(t, file, defaultMappings())

	var logs bytes.Buffer
	defaultLogger := log.Logger
	log.Logger = zerolog.New(&logs)
	t.Cleanup(func() { log.Logger = defaultLogger })

	queue := importer.NewQueue(4)
	f.orchestrator.Queue = queue

	require.NoError(t, f.orchestrator.Start(f.job.ID))

	queue.Close()
	f.orchestrator.Work(context.Background(), queue)

	job := f.reloadJob(t)
	assert.Equal(t, models.ImportJobCompleted, job.Status)
	assert.Equal(t, 1, job.FailedRows)

	// The report names the row, the field and the offending value
	assert.Contains(t, logs.String(), "row 2")
	assert.Contains(t, logs.String(), "amount")
	assert.Contains(t, logs.String(), "zwölf")
}
