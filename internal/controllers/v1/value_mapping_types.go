package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kassenbuch/backend/internal/models"
)

// ValueMappingEditable represents all user configurable parameters.
//
// The scope (import job or mapping profile) comes from the URL the
// mapping is posted to, not from the body.
type ValueMappingEditable struct {
	SourceValue string                 `json:"sourceValue" example:"EDEKA MARKT GMBH"`                   // Raw value from the CSV file, matched exactly
	TargetType  models.ValueTargetType `json:"targetType" example:"counterparty"`                        // Kind of resource the mapping points to
	TargetID    uuid.UUID              `json:"targetId" example:"d1e54e2b-b08e-46f4-9651-9d2d51eb86b9"` // ID of the target resource
}

type ValueMappingLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/value-mappings/ec85d699-9bb5-4274-a4ef-fcce6ab37c2e"` // The value mapping itself
}

type ValueMapping struct {
	models.DefaultModel
	ValueMappingEditable
	ImportJobID      *uuid.UUID `json:"importJobId"`      // ID of the import job the mapping belongs to, if any
	MappingProfileID *uuid.UUID `json:"mappingProfileId"` // ID of the mapping profile the mapping belongs to, if any
	Links            ValueMappingLinks `json:"links"`
}

func newValueMapping(c *gin.Context, model models.ValueMapping) ValueMapping {
	url := c.GetString(string(models.DBContextURL))

	return ValueMapping{
		DefaultModel: model.DefaultModel,
		ValueMappingEditable: ValueMappingEditable{
			SourceValue: model.SourceValue,
			TargetType:  model.TargetType,
			TargetID:    model.TargetID,
		},
		ImportJobID:      model.ImportJobID,
		MappingProfileID: model.MappingProfileID,
		Links: ValueMappingLinks{
			Self: fmt.Sprintf("%s/v1/value-mappings/%s", url, model.ID),
		},
	}
}

type ValueMappingListResponse struct {
	Data  []ValueMapping `json:"data"`                                                          // List of value mappings
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ValueMappingCreateResponse struct {
	Data  []ValueMappingResponse `json:"data"`                                                          // List of the created value mappings or their respective error
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *ValueMappingCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, ValueMappingResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ValueMappingResponse struct {
	Data  *ValueMapping `json:"data"`                                                          // Data for the value mapping
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
