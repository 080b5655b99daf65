package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/kassenbuch/backend/internal/models"
)

// HouseholdEditable represents all user configurable parameters
type HouseholdEditable struct {
	Name     string `json:"name" example:"Familie Schmidt" default:""`        // Name of the household
	Note     string `json:"note" example:"Our shared finances" default:""`   // Notes about the household
	Currency string `json:"currency" example:"EUR" default:""`               // Currency all amounts are denominated in
}

func (editable HouseholdEditable) model() models.Household {
	return models.Household{
		Name:     editable.Name,
		Note:     editable.Note,
		Currency: editable.Currency,
	}
}

type HouseholdLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/households/550dc009-cea6-4c12-b2a5-03446eb7b7cf"`                  // The household itself
	Accounts     string `json:"accounts" example:"https://example.com/api/v1/accounts?household=550dc009-cea6-4c12-b2a5-03446eb7b7cf"`      // Accounts for this household
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions"`                                             // Transactions for this household
	ImportJobs   string `json:"importJobs" example:"https://example.com/api/v1/import-jobs?household=550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // Import jobs for this household
}

type Household struct {
	models.DefaultModel
	HouseholdEditable
	Links HouseholdLinks `json:"links"`
}

func newHousehold(c *gin.Context, model models.Household) Household {
	url := c.GetString(string(models.DBContextURL))

	return Household{
		DefaultModel: model.DefaultModel,
		HouseholdEditable: HouseholdEditable{
			Name:     model.Name,
			Note:     model.Note,
			Currency: model.Currency,
		},
		Links: HouseholdLinks{
			Self:         fmt.Sprintf("%s/v1/households/%s", url, model.ID),
			Accounts:     fmt.Sprintf("%s/v1/accounts?household=%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions", url),
			ImportJobs:   fmt.Sprintf("%s/v1/import-jobs?household=%s", url, model.ID),
		},
	}
}

type HouseholdListResponse struct {
	Data       []Household `json:"data"`                                                          // List of Households
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type HouseholdCreateResponse struct {
	Data  []HouseholdResponse `json:"data"`                                                          // List of the created Households or their respective error
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (h *HouseholdCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	h.Data = append(h.Data, HouseholdResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type HouseholdResponse struct {
	Data  *Household `json:"data"`                                                          // Data for the Household
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type HouseholdQueryFilter struct {
	Name     string `form:"name" filterField:"false"`     // By name
	Note     string `form:"note" filterField:"false"`     // By note
	Currency string `form:"currency"`                     // By currency
	Search   string `form:"search" filterField:"false"`   // By string in name or note
	Offset   uint   `form:"offset" filterField:"false"`   // The offset of the first Household returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`    // Maximum number of Households to return. Defaults to 50.
}

func (f HouseholdQueryFilter) model() (models.Household, error) {
	return models.Household{
		Currency: f.Currency,
	}, nil
}
