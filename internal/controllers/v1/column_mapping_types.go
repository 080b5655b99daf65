package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kassenbuch/backend/internal/models"
)

// ColumnMappingEditable represents all user configurable parameters.
//
// The import job comes from the URL the mapping is posted to.
type ColumnMappingEditable struct {
	CSVHeader string `json:"csvHeader" example:"Betrag"`                      // Header of the CSV column, matched exactly
	Field     string `json:"field" example:"amount"`                          // Domain field the column is mapped to
	Format    string `json:"format" example:"02.01.2006" default:""`          // Optional format hint, e.g. a date layout
}

func (editable ColumnMappingEditable) model(jobID uuid.UUID) models.ColumnMapping {
	return models.ColumnMapping{
		ImportJobID: jobID,
		CSVHeader:   editable.CSVHeader,
		Field:       editable.Field,
		Format:      editable.Format,
	}
}

type ColumnMappingLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/column-mappings/bf24246f-0316-4dcf-9d32-11ae73091a3e"` // The column mapping itself
}

type ColumnMapping struct {
	models.DefaultModel
	ColumnMappingEditable
	ImportJobID uuid.UUID          `json:"importJobId"` // ID of the import job the mapping belongs to
	Links       ColumnMappingLinks `json:"links"`
}

func newColumnMapping(c *gin.Context, model models.ColumnMapping) ColumnMapping {
	url := c.GetString(string(models.DBContextURL))

	return ColumnMapping{
		DefaultModel: model.DefaultModel,
		ColumnMappingEditable: ColumnMappingEditable{
			CSVHeader: model.CSVHeader,
			Field:     model.Field,
			Format:    model.Format,
		},
		ImportJobID: model.ImportJobID,
		Links: ColumnMappingLinks{
			Self: fmt.Sprintf("%s/v1/column-mappings/%s", url, model.ID),
		},
	}
}

type ColumnMappingListResponse struct {
	Data  []ColumnMapping `json:"data"`                                                          // List of column mappings
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ColumnMappingCreateResponse struct {
	Data  []ColumnMappingResponse `json:"data"`                                                          // List of the created column mappings or their respective error
	Error *string                 `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *ColumnMappingCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, ColumnMappingResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ColumnMappingResponse struct {
	Data  *ColumnMapping `json:"data"`                                                          // Data for the column mapping
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
