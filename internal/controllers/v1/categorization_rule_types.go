package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kassenbuch/backend/internal/models"
	kb_uuid "github.com/kassenbuch/backend/internal/uuid"
)

// CategorizationRuleEditable represents all user configurable parameters
type CategorizationRuleEditable struct {
	HouseholdID uuid.UUID `json:"householdId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // ID of the household the rule belongs to
	Priority    uint      `json:"priority" example:"3"`                                       // Rules with lower priority are evaluated first
	Match       string    `json:"match" example:"EDEKA*"`                                     // Glob pattern that is matched against counterparty and transaction name
	CategoryID  uuid.UUID `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`  // ID of the category the rule assigns
}

func (editable CategorizationRuleEditable) model() models.CategorizationRule {
	return models.CategorizationRule{
		HouseholdID: editable.HouseholdID,
		Priority:    editable.Priority,
		Match:       editable.Match,
		CategoryID:  editable.CategoryID,
	}
}

type CategorizationRuleLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/categorization-rules/95685c82-53c6-455d-b235-f49960b73b21"` // The rule itself
}

type CategorizationRule struct {
	models.DefaultModel
	CategorizationRuleEditable
	Links CategorizationRuleLinks `json:"links"`
}

func newCategorizationRule(c *gin.Context, model models.CategorizationRule) CategorizationRule {
	url := c.GetString(string(models.DBContextURL))

	return CategorizationRule{
		DefaultModel: model.DefaultModel,
		CategorizationRuleEditable: CategorizationRuleEditable{
			HouseholdID: model.HouseholdID,
			Priority:    model.Priority,
			Match:       model.Match,
			CategoryID:  model.CategoryID,
		},
		Links: CategorizationRuleLinks{
			Self: fmt.Sprintf("%s/v1/categorization-rules/%s", url, model.ID),
		},
	}
}

type CategorizationRuleListResponse struct {
	Data       []CategorizationRule `json:"data"`                                                          // List of rules
	Error      *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination          `json:"pagination"`                                                    // Pagination information
}

type CategorizationRuleCreateResponse struct {
	Data  []CategorizationRuleResponse `json:"data"`                                                          // List of the created rules or their respective error
	Error *string                      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *CategorizationRuleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, CategorizationRuleResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategorizationRuleResponse struct {
	Data  *CategorizationRule `json:"data"`                                                          // Data for the rule
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategorizationRuleQueryFilter struct {
	HouseholdID kb_uuid.UUID `form:"household"`                  // By ID of the Household
	CategoryID  kb_uuid.UUID `form:"category"`                   // By ID of the Category the rule assigns
	Match       string       `form:"match" filterField:"false"`  // By match pattern
	Offset      uint         `form:"offset" filterField:"false"` // The offset of the first rule returned. Defaults to 0.
	Limit       int          `form:"limit" filterField:"false"`  // Maximum number of rules to return. Defaults to 50.
}

func (f CategorizationRuleQueryFilter) model() (models.CategorizationRule, error) {
	return models.CategorizationRule{
		HouseholdID: f.HouseholdID.UUID,
		CategoryID:  f.CategoryID.UUID,
	}, nil
}
