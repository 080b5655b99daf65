package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kassenbuch/backend/internal/httputil"
	"github.com/kassenbuch/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterRecurringTransactionRoutes registers the routes for recurring
// transactions with the RouterGroup that is passed.
func RegisterRecurringTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRecurringTransactionList)
		r.GET("", GetRecurringTransactions)
		r.POST("", CreateRecurringTransactions)
	}

	// Recurring transaction with ID
	{
		r.OPTIONS("/:id", OptionsRecurringTransactionDetail)
		r.GET("/:id", GetRecurringTransaction)
		r.PATCH("/:id", UpdateRecurringTransaction)
		r.DELETE("/:id", DeleteRecurringTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecurringTransactions
// @Success		204
// @Router			/v1/recurring-transactions [options]
func OptionsRecurringTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecurringTransactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-transactions/{id} [options]
func OptionsRecurringTransactionDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.RecurringTransaction{})
}

// @Summary		Create recurring transaction
// @Description	Creates a new recurring transaction
// @Tags			RecurringTransactions
// @Produce		json
// @Success		201						{object}	RecurringTransactionCreateResponse
// @Failure		400						{object}	RecurringTransactionCreateResponse
// @Failure		404						{object}	RecurringTransactionCreateResponse
// @Failure		500						{object}	RecurringTransactionCreateResponse
// @Param			recurringTransactions	body		[]RecurringTransactionEditable	true	"Recurring transactions"
// @Router			/v1/recurring-transactions [post]
func CreateRecurringTransactions(c *gin.Context) {
	var editables []RecurringTransactionEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := RecurringTransactionCreateResponse{}

	for _, editable := range editables {
		recurring := editable.model()

		err = models.DB.Create(&recurring).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newRecurringTransaction(c, recurring)
		r.Data = append(r.Data, RecurringTransactionResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get recurring transactions
// @Description	Returns a list of recurring transactions
// @Tags			RecurringTransactions
// @Produce		json
// @Success		200	{object}	RecurringTransactionListResponse
// @Failure		400	{object}	RecurringTransactionListResponse
// @Failure		500	{object}	RecurringTransactionListResponse
// @Router			/v1/recurring-transactions [get]
// @Param			account		query	string	false	"Filter by account ID"
// @Param			interval	query	string	false	"Filter by interval"
// @Param			offset		query	uint	false	"The offset of the first resource returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of resources to return. Defaults to 50."
func GetRecurringTransactions(c *gin.Context) {
	var filter RecurringTransactionQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("datetime(next_date) ASC").
		Where(&filterModel, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 resources and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var recurring []models.RecurringTransaction
	err = q.Find(&recurring).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionListResponse{
			Error: &e,
		})
		return
	}

	data := make([]RecurringTransaction, 0)
	for _, r := range recurring {
		data = append(data, newRecurringTransaction(c, r))
	}

	c.JSON(http.StatusOK, RecurringTransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get recurring transaction
// @Description	Returns a specific recurring transaction
// @Tags			RecurringTransactions
// @Produce		json
// @Success		200	{object}	RecurringTransactionResponse
// @Failure		400	{object}	RecurringTransactionResponse
// @Failure		404	{object}	RecurringTransactionResponse
// @Failure		500	{object}	RecurringTransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-transactions/{id} [get]
func GetRecurringTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &s,
		})
		return
	}

	var recurring models.RecurringTransaction
	err = models.DB.First(&recurring, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &s,
		})
		return
	}

	data := newRecurringTransaction(c, recurring)
	c.JSON(http.StatusOK, RecurringTransactionResponse{Data: &data})
}

// @Summary		Update recurring transaction
// @Description	Updates an existing recurring transaction. Only values to be updated need to be specified.
// @Tags			RecurringTransactions
// @Accept			json
// @Produce		json
// @Success		200						{object}	RecurringTransactionResponse
// @Failure		400						{object}	RecurringTransactionResponse
// @Failure		404						{object}	RecurringTransactionResponse
// @Failure		500						{object}	RecurringTransactionResponse
// @Param			id						path		URIID							true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			recurringTransaction	body		RecurringTransactionEditable	true	"Recurring transaction"
// @Router			/v1/recurring-transactions/{id} [patch]
func UpdateRecurringTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &s,
		})
		return
	}

	var recurring models.RecurringTransaction
	err = models.DB.First(&recurring, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, RecurringTransactionEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &s,
		})
		return
	}

	var data RecurringTransactionEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&recurring).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &s,
		})
		return
	}

	r := newRecurringTransaction(c, recurring)
	c.JSON(http.StatusOK, RecurringTransactionResponse{Data: &r})
}

// @Summary		Delete recurring transaction
// @Description	Deletes a recurring transaction. Transactions it already created are kept.
// @Tags			RecurringTransactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-transactions/{id} [delete]
func DeleteRecurringTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var recurring models.RecurringTransaction
	err = models.DB.First(&recurring, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&recurring).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
