package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kassenbuch/backend/internal/models"
	kb_uuid "github.com/kassenbuch/backend/internal/uuid"
)

// MappingProfileEditable represents all user configurable parameters
type MappingProfileEditable struct {
	Name        string    `json:"name" example:"Sparkasse Girokonto" default:""`              // Name of the mapping profile
	HouseholdID uuid.UUID `json:"householdId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // ID of the household the profile belongs to
	Note        string    `json:"note" example:"CSV exports from online banking" default:""`  // Notes about the profile
}

func (editable MappingProfileEditable) model() models.MappingProfile {
	return models.MappingProfile{
		Name:        editable.Name,
		HouseholdID: editable.HouseholdID,
		Note:        editable.Note,
	}
}

type MappingProfileLinks struct {
	Self          string `json:"self" example:"https://example.com/api/v1/mapping-profiles/00b52936-3a18-4803-8b32-1f30ef27fbc2"`                        // The profile itself
	ValueMappings string `json:"valueMappings" example:"https://example.com/api/v1/mapping-profiles/00b52936-3a18-4803-8b32-1f30ef27fbc2/value-mappings"` // Value mappings of this profile
}

type MappingProfile struct {
	models.DefaultModel
	MappingProfileEditable
	Links MappingProfileLinks `json:"links"`
}

func newMappingProfile(c *gin.Context, model models.MappingProfile) MappingProfile {
	url := c.GetString(string(models.DBContextURL))

	return MappingProfile{
		DefaultModel: model.DefaultModel,
		MappingProfileEditable: MappingProfileEditable{
			Name:        model.Name,
			HouseholdID: model.HouseholdID,
			Note:        model.Note,
		},
		Links: MappingProfileLinks{
			Self:          fmt.Sprintf("%s/v1/mapping-profiles/%s", url, model.ID),
			ValueMappings: fmt.Sprintf("%s/v1/mapping-profiles/%s/value-mappings", url, model.ID),
		},
	}
}

type MappingProfileListResponse struct {
	Data       []MappingProfile `json:"data"`                                                          // List of mapping profiles
	Error      *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination      `json:"pagination"`                                                    // Pagination information
}

type MappingProfileCreateResponse struct {
	Data  []MappingProfileResponse `json:"data"`                                                          // List of the created mapping profiles or their respective error
	Error *string                  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *MappingProfileCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, MappingProfileResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type MappingProfileResponse struct {
	Data  *MappingProfile `json:"data"`                                                          // Data for the mapping profile
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type MappingProfileQueryFilter struct {
	HouseholdID kb_uuid.UUID `form:"household"`                  // By ID of the Household
	Name        string       `form:"name" filterField:"false"`   // By name
	Note        string       `form:"note" filterField:"false"`   // By note
	Search      string       `form:"search" filterField:"false"` // By string in name or note
	Offset      uint         `form:"offset" filterField:"false"` // The offset of the first profile returned. Defaults to 0.
	Limit       int          `form:"limit" filterField:"false"`  // Maximum number of profiles to return. Defaults to 50.
}

func (f MappingProfileQueryFilter) model() (models.MappingProfile, error) {
	return models.MappingProfile{
		HouseholdID: f.HouseholdID.UUID,
	}, nil
}
