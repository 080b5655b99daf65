package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kassenbuch/backend/internal/models"
	kb_uuid "github.com/kassenbuch/backend/internal/uuid"
)

// CounterpartyEditable represents all user configurable parameters
type CounterpartyEditable struct {
	Name        string    `json:"name" example:"EDEKA" default:""`                            // Name of the counterparty
	HouseholdID uuid.UUID `json:"householdId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // ID of the household the counterparty belongs to
	Note        string    `json:"note" example:"Supermarket around the corner" default:""`    // Notes about the counterparty
}

func (editable CounterpartyEditable) model() models.Counterparty {
	return models.Counterparty{
		Name:        editable.Name,
		HouseholdID: editable.HouseholdID,
		Note:        editable.Note,
	}
}

type CounterpartyLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/counterparties/d1e54e2b-b08e-46f4-9651-9d2d51eb86b9"`                      // The counterparty itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?counterparty=d1e54e2b-b08e-46f4-9651-9d2d51eb86b9"` // Transactions with this counterparty
}

type Counterparty struct {
	models.DefaultModel
	CounterpartyEditable
	Links CounterpartyLinks `json:"links"`
}

func newCounterparty(c *gin.Context, model models.Counterparty) Counterparty {
	url := c.GetString(string(models.DBContextURL))

	return Counterparty{
		DefaultModel: model.DefaultModel,
		CounterpartyEditable: CounterpartyEditable{
			Name:        model.Name,
			HouseholdID: model.HouseholdID,
			Note:        model.Note,
		},
		Links: CounterpartyLinks{
			Self:         fmt.Sprintf("%s/v1/counterparties/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?counterparty=%s", url, model.ID),
		},
	}
}

type CounterpartyListResponse struct {
	Data       []Counterparty `json:"data"`                                                          // List of Counterparties
	Error      *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination    `json:"pagination"`                                                    // Pagination information
}

type CounterpartyCreateResponse struct {
	Data  []CounterpartyResponse `json:"data"`                                                          // List of the created Counterparties or their respective error
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *CounterpartyCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, CounterpartyResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CounterpartyResponse struct {
	Data  *Counterparty `json:"data"`                                                          // Data for the Counterparty
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CounterpartyQueryFilter struct {
	HouseholdID kb_uuid.UUID `form:"household"`                  // By ID of the Household
	Name        string       `form:"name" filterField:"false"`   // By name
	Note        string       `form:"note" filterField:"false"`   // By note
	Search      string       `form:"search" filterField:"false"` // By string in name or note
	Offset      uint         `form:"offset" filterField:"false"` // The offset of the first Counterparty returned. Defaults to 0.
	Limit       int          `form:"limit" filterField:"false"`  // Maximum number of Counterparties to return. Defaults to 50.
}

func (f CounterpartyQueryFilter) model() (models.Counterparty, error) {
	return models.Counterparty{
		HouseholdID: f.HouseholdID.UUID,
	}, nil
}
