package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kassenbuch/backend/internal/importer"
	"github.com/kassenbuch/backend/internal/models"
	kb_uuid "github.com/kassenbuch/backend/internal/uuid"
)

// ImportJobCreate holds the form fields for the multipart create
// request. The file itself is read from the "file" form field.
type ImportJobCreate struct {
	HouseholdID      uuid.UUID  `form:"householdId"`      // ID of the household the import belongs to
	Name             string     `form:"name"`             // Name of the import job
	Separator        string     `form:"separator"`        // Field separator of the file, defaults to ","
	Locale           string     `form:"locale"`           // BCP 47 tag controlling amount parsing, e.g. "de"
	MappingProfileID *uuid.UUID `form:"mappingProfileId"` // ID of a mapping profile to use as value mapping fallback
}

// ImportJobEditable represents the parameters that can be changed while
// the job is a draft
type ImportJobEditable struct {
	Name             string     `json:"name" example:"Kontoauszug Februar" default:""`                    // Name of the import job
	Separator        string     `json:"separator" example:";" default:","`                                // Field separator of the file
	Locale           string     `json:"locale" example:"de" default:""`                                   // BCP 47 tag controlling amount parsing
	MappingProfileID *uuid.UUID `json:"mappingProfileId" example:"00b52936-3a18-4803-8b32-1f30ef27fbc2"` // ID of a mapping profile to use as value mapping fallback
}

func (editable ImportJobEditable) model() models.ImportJob {
	return models.ImportJob{
		Name:             editable.Name,
		Separator:        editable.Separator,
		Locale:           editable.Locale,
		MappingProfileID: editable.MappingProfileID,
	}
}

type ImportJobLinks struct {
	Self           string `json:"self" example:"https://example.com/api/v1/import-jobs/27ee4ba5-3fb8-4e52-9b2f-e51f4543d4b0"`                           // The job itself
	ColumnMappings string `json:"columnMappings" example:"https://example.com/api/v1/import-jobs/27ee4ba5-3fb8-4e52-9b2f-e51f4543d4b0/column-mappings"` // Column mappings of this job
	ValueMappings  string `json:"valueMappings" example:"https://example.com/api/v1/import-jobs/27ee4ba5-3fb8-4e52-9b2f-e51f4543d4b0/value-mappings"`   // Value mappings of this job
	Readiness      string `json:"readiness" example:"https://example.com/api/v1/import-jobs/27ee4ba5-3fb8-4e52-9b2f-e51f4543d4b0/readiness"`            // Readiness check for this job
	Start          string `json:"start" example:"https://example.com/api/v1/import-jobs/27ee4ba5-3fb8-4e52-9b2f-e51f4543d4b0/start"`                    // Start endpoint for this job
	Transactions   string `json:"transactions" example:"https://example.com/api/v1/transactions?importJob=27ee4ba5-3fb8-4e52-9b2f-e51f4543d4b0"`        // Transactions created by this job
}

type ImportJob struct {
	models.DefaultModel
	ImportJobEditable
	HouseholdID   uuid.UUID              `json:"householdId"`   // ID of the household the import belongs to
	FileName      string                 `json:"fileName"`      // Name of the uploaded file
	Status        models.ImportJobStatus `json:"status"`        // Lifecycle state of the job
	ProcessedRows int                    `json:"processedRows"` // Number of data rows in the file
	SucceededRows int                    `json:"succeededRows"` // Number of transactions created
	FailedRows    int                    `json:"failedRows"`    // Number of rows that were rejected
	Error         string                 `json:"error"`         // Job level error message when the job failed
	Links         ImportJobLinks         `json:"links"`
}

func newImportJob(c *gin.Context, model models.ImportJob) ImportJob {
	url := c.GetString(string(models.DBContextURL))

	return ImportJob{
		DefaultModel: model.DefaultModel,
		ImportJobEditable: ImportJobEditable{
			Name:             model.Name,
			Separator:        model.Separator,
			Locale:           model.Locale,
			MappingProfileID: model.MappingProfileID,
		},
		HouseholdID:   model.HouseholdID,
		FileName:      model.FileName,
		Status:        model.Status,
		ProcessedRows: model.ProcessedRows,
		SucceededRows: model.SucceededRows,
		FailedRows:    model.FailedRows,
		Error:         model.Error,
		Links: ImportJobLinks{
			Self:           fmt.Sprintf("%s/v1/import-jobs/%s", url, model.ID),
			ColumnMappings: fmt.Sprintf("%s/v1/import-jobs/%s/column-mappings", url, model.ID),
			ValueMappings:  fmt.Sprintf("%s/v1/import-jobs/%s/value-mappings", url, model.ID),
			Readiness:      fmt.Sprintf("%s/v1/import-jobs/%s/readiness", url, model.ID),
			Start:          fmt.Sprintf("%s/v1/import-jobs/%s/start", url, model.ID),
			Transactions:   fmt.Sprintf("%s/v1/transactions?importJob=%s", url, model.ID),
		},
	}
}

type ImportJobListResponse struct {
	Data       []ImportJob `json:"data"`                                                          // List of import jobs
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ImportJobResponse struct {
	Data  *ImportJob `json:"data"`                                                          // Data for the import job
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ImportJobQueryFilter struct {
	HouseholdID kb_uuid.UUID           `form:"household"`                  // By ID of the Household
	Status      models.ImportJobStatus `form:"status"`                     // By lifecycle state
	Name        string                 `form:"name" filterField:"false"`   // By name
	Offset      uint                   `form:"offset" filterField:"false"` // The offset of the first job returned. Defaults to 0.
	Limit       int                    `form:"limit" filterField:"false"`  // Maximum number of jobs to return. Defaults to 50.
}

func (f ImportJobQueryFilter) model() (models.ImportJob, error) {
	return models.ImportJob{
		HouseholdID: f.HouseholdID.UUID,
		Status:      f.Status,
	}, nil
}

// ReadinessResponse reports whether a job can be started and which
// required fields still lack a column mapping.
type ReadinessResponse struct {
	Data  *Readiness `json:"data"`                                                          // Data for the readiness check
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type Readiness struct {
	Ready         bool             `json:"ready" example:"false"`          // Can the job be started?
	MissingFields []importer.Field `json:"missingFields" example:"amount"` // Required fields that have no column mapping
}
