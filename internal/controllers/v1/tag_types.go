package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kassenbuch/backend/internal/models"
	kb_uuid "github.com/kassenbuch/backend/internal/uuid"
)

// TagEditable represents all user configurable parameters
type TagEditable struct {
	Name        string    `json:"name" example:"Urlaub 2026" default:""`                      // Name of the tag
	HouseholdID uuid.UUID `json:"householdId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // ID of the household the tag belongs to
}

func (editable TagEditable) model() models.Tag {
	return models.Tag{
		Name:        editable.Name,
		HouseholdID: editable.HouseholdID,
	}
}

type TagLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/tags/d70ae55f-3cf9-4326-a1c8-bec68dee363c"` // The tag itself
}

type Tag struct {
	models.DefaultModel
	TagEditable
	Links TagLinks `json:"links"`
}

func newTag(c *gin.Context, model models.Tag) Tag {
	url := c.GetString(string(models.DBContextURL))

	return Tag{
		DefaultModel: model.DefaultModel,
		TagEditable: TagEditable{
			Name:        model.Name,
			HouseholdID: model.HouseholdID,
		},
		Links: TagLinks{
			Self: fmt.Sprintf("%s/v1/tags/%s", url, model.ID),
		},
	}
}

type TagListResponse struct {
	Data       []Tag       `json:"data"`                                                          // List of Tags
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type TagCreateResponse struct {
	Data  []TagResponse `json:"data"`                                                          // List of the created Tags or their respective error
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *TagCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, TagResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TagResponse struct {
	Data  *Tag    `json:"data"`                                                          // Data for the Tag
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TagQueryFilter struct {
	HouseholdID kb_uuid.UUID `form:"household"`                  // By ID of the Household
	Name        string       `form:"name" filterField:"false"`   // By name
	Offset      uint         `form:"offset" filterField:"false"` // The offset of the first Tag returned. Defaults to 0.
	Limit       int          `form:"limit" filterField:"false"`  // Maximum number of Tags to return. Defaults to 50.
}

func (f TagQueryFilter) model() (models.Tag, error) {
	return models.Tag{
		HouseholdID: f.HouseholdID.UUID,
	}, nil
}
