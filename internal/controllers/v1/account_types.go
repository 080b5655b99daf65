package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kassenbuch/backend/internal/models"
	kb_uuid "github.com/kassenbuch/backend/internal/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountEditable represents all user configurable parameters
type AccountEditable struct {
	Name               string          `json:"name" example:"Girokonto" default:""`                           // Name of the account
	HouseholdID        uuid.UUID       `json:"householdId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"`    // ID of the household this account belongs to
	Note               string          `json:"note" example:"Main checking account" default:""`               // Notes about the account
	InitialBalance     decimal.Decimal `json:"initialBalance" example:"173.12" default:"0"`                   // Balance of the account before any transactions were recorded
	InitialBalanceDate *time.Time      `json:"initialBalanceDate" example:"2017-05-12T00:00:00Z"`             // Date of the initial balance
	Archived           bool            `json:"archived" example:"true" default:"false"`                       // Is the account archived?
}

func (editable AccountEditable) model() models.Account {
	return models.Account{
		Name:               editable.Name,
		HouseholdID:        editable.HouseholdID,
		Note:               editable.Note,
		InitialBalance:     editable.InitialBalance,
		InitialBalanceDate: editable.InitialBalanceDate,
		Archived:           editable.Archived,
	}
}

type AccountLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`                      // The account itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?account=af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // Transactions for this account
}

type Account struct {
	models.DefaultModel
	AccountEditable
	Links AccountLinks `json:"links"`

	// These fields are computed
	Balance decimal.Decimal `json:"balance" example:"2735.17"` // Balance of the account, including all transactions
}

func newAccount(c *gin.Context, db *gorm.DB, model models.Account) (Account, error) {
	url := c.GetString(string(models.DBContextURL))

	balance, err := model.Balance(db, time.Now())
	if err != nil {
		return Account{}, err
	}

	return Account{
		DefaultModel: model.DefaultModel,
		AccountEditable: AccountEditable{
			Name:               model.Name,
			HouseholdID:        model.HouseholdID,
			Note:               model.Note,
			InitialBalance:     model.InitialBalance,
			InitialBalanceDate: model.InitialBalanceDate,
			Archived:           model.Archived,
		},
		Links: AccountLinks{
			Self:         fmt.Sprintf("%s/v1/accounts/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?account=%s", url, model.ID),
		},
		Balance: balance,
	}, nil
}

type AccountListResponse struct {
	Data       []Account   `json:"data"`                                                          // List of Accounts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type AccountCreateResponse struct {
	Data  []AccountResponse `json:"data"`                                                          // List of the created Accounts or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (a *AccountCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, AccountResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AccountResponse struct {
	Data  *Account `json:"data"`                                                          // Data for the Account
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AccountQueryFilter struct {
	HouseholdID kb_uuid.UUID `form:"household"`                  // By ID of the Household
	Name        string       `form:"name" filterField:"false"`   // By name
	Note        string       `form:"note" filterField:"false"`   // By note
	Archived    bool         `form:"archived"`                   // Is the Account archived?
	Search      string       `form:"search" filterField:"false"` // By string in name or note
	Offset      uint         `form:"offset" filterField:"false"` // The offset of the first Account returned. Defaults to 0.
	Limit       int          `form:"limit" filterField:"false"`  // Maximum number of Accounts to return. Defaults to 50.
}

func (f AccountQueryFilter) model() (models.Account, error) {
	return models.Account{
		HouseholdID: f.HouseholdID.UUID,
		Archived:    f.Archived,
	}, nil
}
