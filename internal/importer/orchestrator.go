package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/kassenbuch/backend/internal/importer/reader"
	"github.com/kassenbuch/backend/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// FileOpener is the file storage collaborator. Paths are opaque handles
// produced when the file was uploaded.
type FileOpener interface {
	Open(path string) (io.ReadCloser, error)
}

// Result is the outcome of one processed job.
//
// Errors are ordered by row index. The ordering is load-bearing for the
// user-facing report ("row 42: invalid amount").
type Result struct {
	Processed int        `json:"processed"` // Number of data rows in the file
	Succeeded int        `json:"succeeded"` // Number of transactions created
	Failed    int        `json:"failed"`    // Number of rows that were rejected
	Errors    []RowError `json:"errors"`
}

// Orchestrator drives the import pipeline for one job at a time.
//
// Process is synchronous and free of any queue coupling so that tests
// can call it directly. Production hands job IDs to it through a Queue.
type Orchestrator struct {
	DB    *gorm.DB
	Files FileOpener
	Queue *Queue

	// Workers bounds the number of concurrent row persistence calls.
	// Zero or one means sequential.
	Workers int
}

// Start moves a DRAFT job to PENDING and hands it to the queue.
//
// A job whose required fields are not all mapped cannot be started. A
// job in any other state than DRAFT cannot be started either, which is
// what prevents duplicate transactions from double-starts.
func (o *Orchestrator) Start(jobID uuid.UUID) error {
	var job models.ImportJob
	err := o.DB.First(&job, jobID).Error
	if err != nil {
		return err
	}

	missing, err := o.validateReadiness(job.ID)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return MissingMappingError{Fields: missing}
	}

	err = job.Transition(o.DB, models.ImportJobDraft, models.ImportJobPending)
	if err != nil {
		return err
	}

	if o.Queue != nil {
		err = o.Queue.Enqueue(job.ID)
		if err != nil {
			// Put the job back so that a later start can succeed. If
			// even that fails the job is stranded in PENDING, which
			// needs to be visible to the operator.
			rollbackErr := job.Transition(o.DB, models.ImportJobPending, models.ImportJobDraft)
			if rollbackErr != nil {
				log.Error().Str("job", job.ID.String()).Err(rollbackErr).Msg("job stuck in PENDING after failed enqueue")
			}

			return err
		}
	}

	return nil
}

// Process runs the whole pipeline for one PENDING job.
//
// Job level failures (missing mappings, unreadable or malformed file)
// move the job to FAILED before any row is touched. Row level failures
// only reject their row: the job still completes and reports them in
// the result. Partial success is the normal terminal state.
func (o *Orchestrator) Process(ctx context.Context, jobID uuid.UUID) (Result, error) {
	var job models.ImportJob
	err := o.DB.First(&job, jobID).Error
	if err != nil {
		return Result{}, err
	}

	// The conditional transition is the concurrency guard: of two
	// workers picking up the same job, only one gets past this line.
	err = job.Transition(o.DB, models.ImportJobPending, models.ImportJobInProgress)
	if err != nil {
		return Result{}, err
	}

	log.Info().Str("job", job.ID.String()).Str("file", job.FileName).Msg("import started")

	// Re-validate readiness. Mappings may have been deleted between
	// start and pickup, and in that case the file is not even read.
	missing, err := o.validateReadiness(job.ID)
	if err != nil {
		return Result{}, o.fail(&job, err)
	}
	if len(missing) > 0 {
		return Result{}, o.fail(&job, MissingMappingError{Fields: missing})
	}

	transformer, columnMappings, err := o.buildTransformer(&job)
	if err != nil {
		return Result{}, o.fail(&job, err)
	}

	file, err := o.readFile(&job)
	if err != nil {
		return Result{}, o.fail(&job, err)
	}

	transformer.Columns, err = ResolveColumns(file.Header, columnMappings)
	if err != nil {
		return Result{}, o.fail(&job, err)
	}

	// A required field whose mapped column does not exist in this file
	// would reject every single row. Treat it as a job level problem.
	if missing := transformer.Columns.MissingRequired(); len(missing) > 0 {
		return Result{}, o.fail(&job, MissingMappingError{Fields: missing})
	}

	result := Result{Processed: len(file.Rows)}

	var drafts []Draft
	for _, row := range file.Rows {
		draft, rowErrs := transformer.TransformRow(row)
		if len(rowErrs) > 0 {
			result.Errors = append(result.Errors, rowErrs...)
			continue
		}

		drafts = append(drafts, draft)
	}

	persisted, persistErrs, cancelled := o.persist(ctx, &job, drafts)
	result.Succeeded = persisted
	result.Errors = append(result.Errors, persistErrs...)

	// Rows may finish out of order under concurrency, the report must
	// not
	slices.SortStableFunc(result.Errors, func(a, b RowError) int {
		return a.Row - b.Row
	})

	failedRows := countFailedRows(result.Errors)
	result.Failed = failedRows

	status := models.ImportJobCompleted
	if cancelled {
		status = models.ImportJobCancelled
	}

	err = o.DB.Model(&job).
		Where("status = ?", models.ImportJobInProgress).
		Updates(map[string]any{
			"status":         status,
			"processed_rows": result.Processed,
			"succeeded_rows": result.Succeeded,
			"failed_rows":    result.Failed,
		}).Error
	if err != nil {
		return result, err
	}

	jobsProcessed.WithLabelValues(string(status)).Inc()

	// The job record only carries the counts. The per-row, per-field
	// report goes to the log so that it survives the async path.
	for _, rowErr := range result.Errors {
		log.Warn().Str("job", job.ID.String()).Str("file", job.FileName).Msg(rowErr.Error())
	}

	log.Info().
		Str("job", job.ID.String()).
		Int("processed", result.Processed).
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Msg("import finished")

	return result, nil
}

// validateReadiness loads the job's column mappings and returns the
// missing required fields.
func (o *Orchestrator) validateReadiness(jobID uuid.UUID) ([]Field, error) {
	var mappings []models.ColumnMapping
	err := o.DB.Where(&models.ColumnMapping{ImportJobID: jobID}).Find(&mappings).Error
	if err != nil {
		return nil, err
	}

	return ValidateReadiness(mappings)
}

// buildTransformer loads everything the transformer needs: column and
// value mappings, the reference data snapshot and the categorization
// rules. All of it is read once and held immutable for the run. The
// column table itself is resolved by the caller once the file header is
// known.
func (o *Orchestrator) buildTransformer(job *models.ImportJob) (*Transformer, []models.ColumnMapping, error) {
	var columnMappings []models.ColumnMapping
	err := o.DB.Where(&models.ColumnMapping{ImportJobID: job.ID}).Find(&columnMappings).Error
	if err != nil {
		return nil, nil, err
	}

	var valueMappings []models.ValueMapping
	err = o.DB.Where("import_job_id = ?", job.ID).Find(&valueMappings).Error
	if err != nil {
		return nil, nil, err
	}

	resolver, err := NewValueResolver(valueMappings)
	if err != nil {
		return nil, nil, err
	}

	if job.MappingProfileID != nil {
		var profileMappings []models.ValueMapping
		err = o.DB.Where("mapping_profile_id = ?", job.MappingProfileID).Find(&profileMappings).Error
		if err != nil {
			return nil, nil, err
		}

		err = resolver.Merge(profileMappings)
		if err != nil {
			return nil, nil, err
		}
	}

	refs, err := LoadReferenceData(o.DB, job.HouseholdID)
	if err != nil {
		return nil, nil, err
	}

	var rules []models.CategorizationRule
	err = o.DB.
		Where(&models.CategorizationRule{HouseholdID: job.HouseholdID}).
		Order("priority ASC, match ASC").
		Find(&rules).Error
	if err != nil {
		return nil, nil, err
	}

	transformer := &Transformer{
		Values: resolver,
		Refs:   refs,
		Rules:  rules,
		Locale: job.LocaleTag(),
	}

	return transformer, columnMappings, nil
}

// readFile opens and parses the job's file.
func (o *Orchestrator) readFile(job *models.ImportJob) (reader.File, error) {
	f, err := o.Files.Open(job.FilePath)
	if err != nil {
		return reader.File{}, fmt.Errorf("%w: %v", ErrFileUnreadable, err)
	}
	defer f.Close()

	return reader.Read(f, job.SeparatorRune())
}

// persist creates one transaction per draft. Each row is an independent
// unit of work: a persistence failure for one draft becomes a row error
// and the remaining drafts are still attempted. There is deliberately no
// surrounding database transaction.
//
// When ctx is cancelled, no new drafts are submitted but in-flight rows
// complete.
func (o *Orchestrator) persist(ctx context.Context, job *models.ImportJob, drafts []Draft) (succeeded int, errs []RowError, cancelled bool) {
	workers := o.Workers
	if workers < 1 {
		workers = 1
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for _, draft := range drafts {
		// Cooperative cancellation between rows, never mid-row
		if ctx.Err() != nil {
			cancelled = true
			break
		}

		sem <- struct{}{}
		wg.Add(1)

		go func(draft Draft) {
			defer wg.Done()
			defer func() { <-sem }()

			err := o.persistDraft(job, draft)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				errs = append(errs, RowError{Row: draft.Row, Err: err})
				rowsTotal.WithLabelValues("failed").Inc()
				return
			}

			succeeded++
			rowsTotal.WithLabelValues("imported").Inc()
		}(draft)
	}

	wg.Wait()
	return succeeded, errs, cancelled
}

// persistDraft creates the transaction for one draft and attaches its
// tags.
func (o *Orchestrator) persistDraft(job *models.ImportJob, draft Draft) error {
	transaction := draft.Transaction
	transaction.ImportJobID = &job.ID

	err := o.DB.Create(&transaction).Error
	if err != nil {
		return err
	}

	if len(draft.TagIDs) > 0 {
		tags := make([]models.Tag, 0, len(draft.TagIDs))
		for _, id := range draft.TagIDs {
			tags = append(tags, models.Tag{DefaultModel: models.DefaultModel{ID: id}})
		}

		err = o.DB.Model(&transaction).Association("Tags").Append(tags)
		if err != nil {
			return err
		}
	}

	return nil
}

// fail moves the job to FAILED with a job level error. No transactions
// exist at this point.
func (o *Orchestrator) fail(job *models.ImportJob, cause error) error {
	log.Error().Str("job", job.ID.String()).Err(cause).Msg("import failed")

	err := o.DB.Model(job).
		Where("status = ?", models.ImportJobInProgress).
		Updates(map[string]any{
			"status": models.ImportJobFailed,
			"error":  cause.Error(),
		}).Error
	if err != nil {
		return errors.Join(cause, err)
	}

	jobsProcessed.WithLabelValues(string(models.ImportJobFailed)).Inc()

	return cause
}

// countFailedRows counts distinct rows in the error list. One row can
// carry multiple field errors but fails only once.
func countFailedRows(errs []RowError) int {
	rows := make(map[int]bool, len(errs))
	for _, e := range errs {
		rows[e.Row] = true
	}
	return len(rows)
}
