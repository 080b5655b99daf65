package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kassenbuch/backend/internal/models"
	kb_uuid "github.com/kassenbuch/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// RecurringTransactionEditable represents all user configurable parameters
type RecurringTransactionEditable struct {
	AccountID      uuid.UUID                `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`  // ID of the account the transactions are created for
	Amount         decimal.Decimal          `json:"amount" example:"-840.00"`                                  // Amount of each created transaction
	Name           string                   `json:"name" example:"Miete" default:""`                           // Name of the created transactions
	Description    string                   `json:"description" example:"" default:""`                         // Description of the created transactions
	CategoryID     *uuid.UUID               `json:"categoryId" default:"null"`                                 // ID of the category, optional
	CounterpartyID *uuid.UUID               `json:"counterpartyId" default:"null"`                             // ID of the counterparty, optional
	Interval       models.RecurringInterval `json:"interval" example:"MONTHLY"`                                // How often a transaction is created
	NextDate       time.Time                `json:"nextDate" example:"2026-09-01T00:00:00Z"`                   // Date the next transaction is due
	EndDate        *time.Time               `json:"endDate" example:"2027-08-31T00:00:00Z" default:"null"`     // Date after which no more transactions are created
}

func (editable RecurringTransactionEditable) model() models.RecurringTransaction {
	return models.RecurringTransaction{
		AccountID:      editable.AccountID,
		Amount:         editable.Amount,
		Name:           editable.Name,
		Description:    editable.Description,
		CategoryID:     editable.CategoryID,
		CounterpartyID: editable.CounterpartyID,
		Interval:       editable.Interval,
		NextDate:       editable.NextDate,
		EndDate:        editable.EndDate,
	}
}

type RecurringTransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/recurring-transactions/c6fe8461-05b4-4e9a-b4d3-920c54846b31"` // The recurring transaction itself
}

type RecurringTransaction struct {
	models.DefaultModel
	RecurringTransactionEditable
	Links RecurringTransactionLinks `json:"links"`
}

func newRecurringTransaction(c *gin.Context, model models.RecurringTransaction) RecurringTransaction {
	url := c.GetString(string(models.DBContextURL))

	return RecurringTransaction{
		DefaultModel: model.DefaultModel,
		RecurringTransactionEditable: RecurringTransactionEditable{
			AccountID:      model.AccountID,
			Amount:         model.Amount,
			Name:           model.Name,
			Description:    model.Description,
			CategoryID:     model.CategoryID,
			CounterpartyID: model.CounterpartyID,
			Interval:       model.Interval,
			NextDate:       model.NextDate,
			EndDate:        model.EndDate,
		},
		Links: RecurringTransactionLinks{
			Self: fmt.Sprintf("%s/v1/recurring-transactions/%s", url, model.ID),
		},
	}
}

type RecurringTransactionListResponse struct {
	Data       []RecurringTransaction `json:"data"`                                                          // List of recurring transactions
	Error      *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination            `json:"pagination"`                                                    // Pagination information
}

type RecurringTransactionCreateResponse struct {
	Data  []RecurringTransactionResponse `json:"data"`                                                          // List of the created recurring transactions or their respective error
	Error *string                        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *RecurringTransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, RecurringTransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RecurringTransactionResponse struct {
	Data  *RecurringTransaction `json:"data"`                                                          // Data for the recurring transaction
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RecurringTransactionQueryFilter struct {
	AccountID kb_uuid.UUID             `form:"account"`                    // By ID of the Account
	Interval  models.RecurringInterval `form:"interval"`                   // By interval
	Offset    uint                     `form:"offset" filterField:"false"` // The offset of the first resource returned. Defaults to 0.
	Limit     int                      `form:"limit" filterField:"false"`  // Maximum number of resources to return. Defaults to 50.
}

func (f RecurringTransactionQueryFilter) model() (models.RecurringTransaction, error) {
	return models.RecurringTransaction{
		AccountID: f.AccountID.UUID,
		Interval:  f.Interval,
	}, nil
}
