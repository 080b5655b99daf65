package v1

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kassenbuch/backend/internal/models"
	kb_uuid "github.com/kassenbuch/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	AccountID      uuid.UUID       `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`                   // ID of the account the transaction belongs to
	Amount         decimal.Decimal `json:"amount" example:"-14.37"`                                                    // Amount of the transaction. Income is positive, expenses are negative
	ValueDate      time.Time       `json:"valueDate" example:"2026-02-23T00:00:00Z"`                                   // Date the transaction took effect
	ValueDateUntil *time.Time      `json:"valueDateUntil" example:"2026-02-28T00:00:00Z"`                              // End of the date range for transactions that span multiple days
	Name           string          `json:"name" example:"Weekly groceries" default:""`                                 // Name of the transaction
	Description    string          `json:"description" example:"Groceries for the whole week" default:""`              // Description of the transaction
	CategoryID     *uuid.UUID      `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f" default:"null"`   // ID of the category, optional
	CounterpartyID *uuid.UUID      `json:"counterpartyId" example:"d1e54e2b-b08e-46f4-9651-9d2d51eb86b9" default:"null"` // ID of the counterparty, optional
	TagIDs         []uuid.UUID     `json:"tagIds"`                                                                     // IDs of the tags for this transaction
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		AccountID:      editable.AccountID,
		Amount:         editable.Amount,
		ValueDate:      editable.ValueDate,
		ValueDateUntil: editable.ValueDateUntil,
		Name:           editable.Name,
		Description:    editable.Description,
		CategoryID:     editable.CategoryID,
		CounterpartyID: editable.CounterpartyID,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Links TransactionLinks `json:"links"`

	// These fields are computed
	ImportJobID    *uuid.UUID `json:"importJobId"`    // ID of the import job that created this transaction, if any
	ImportWarnings []string   `json:"importWarnings"` // Warnings attached by the import, one per entry
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	tagIDs := make([]uuid.UUID, 0, len(model.Tags))
	for _, tag := range model.Tags {
		tagIDs = append(tagIDs, tag.ID)
	}

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			AccountID:      model.AccountID,
			Amount:         model.Amount,
			ValueDate:      model.ValueDate,
			ValueDateUntil: model.ValueDateUntil,
			Name:           model.Name,
			Description:    model.Description,
			CategoryID:     model.CategoryID,
			CounterpartyID: model.CounterpartyID,
			TagIDs:         tagIDs,
		},
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
		ImportJobID:    model.ImportJobID,
		ImportWarnings: splitWarnings(model.ImportWarnings),
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of Transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Data  []TransactionResponse `json:"data"`                                                          // List of the created Transactions or their respective error
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the Transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	AccountID      kb_uuid.UUID    `form:"account"`                        // By ID of the Account
	CategoryID     kb_uuid.UUID    `form:"category" filterField:"false"`   // By ID of the Category
	CounterpartyID kb_uuid.UUID    `form:"counterparty" filterField:"false"` // By ID of the Counterparty
	ImportJobID    kb_uuid.UUID    `form:"importJob" filterField:"false"`  // By ID of the Import Job that created the transaction
	Name           string          `form:"name" filterField:"false"`       // By name
	Description    string          `form:"description" filterField:"false"` // By description
	Search         string          `form:"search" filterField:"false"`     // By string in name or description
	AmountMoreOrEqual *decimal.Decimal `form:"amountMoreOrEqual" filterField:"false"` // Amount of the transaction is greater than or equal to this
	AmountLessOrEqual *decimal.Decimal `form:"amountLessOrEqual" filterField:"false"` // Amount of the transaction is less than or equal to this
	FromDate       time.Time       `form:"fromDate" filterField:"false" time_format:"2006-01-02"`  // Value date is this date or later
	UntilDate      time.Time       `form:"untilDate" filterField:"false" time_format:"2006-01-02"` // Value date is this date or earlier
	Offset         uint            `form:"offset" filterField:"false"`     // The offset of the first Transaction returned. Defaults to 0.
	Limit          int             `form:"limit" filterField:"false"`      // Maximum number of Transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() (models.Transaction, error) {
	return models.Transaction{
		AccountID: f.AccountID.UUID,
	}, nil
}

// splitWarnings turns the stored warnings into a list, one warning per
// entry. No warnings become an empty list, not null.
func splitWarnings(stored string) []string {
	if stored == "" {
		return []string{}
	}

	return strings.Split(stored, "\n")
}
