package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kassenbuch/backend/internal/httputil"
	"github.com/kassenbuch/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterCounterpartyRoutes registers the routes for counterparties
// with the RouterGroup that is passed.
func RegisterCounterpartyRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCounterpartyList)
		r.GET("", GetCounterparties)
		r.POST("", CreateCounterparties)
	}

	// Counterparty with ID
	{
		r.OPTIONS("/:id", OptionsCounterpartyDetail)
		r.GET("/:id", GetCounterparty)
		r.PATCH("/:id", UpdateCounterparty)
		r.DELETE("/:id", DeleteCounterparty)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Counterparties
// @Success		204
// @Router			/v1/counterparties [options]
func OptionsCounterpartyList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Counterparties
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/counterparties/{id} [options]
func OptionsCounterpartyDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Counterparty{})
}

// @Summary		Create counterparty
// @Description	Creates a new counterparty
// @Tags			Counterparties
// @Produce		json
// @Success		201				{object}	CounterpartyCreateResponse
// @Failure		400				{object}	CounterpartyCreateResponse
// @Failure		404				{object}	CounterpartyCreateResponse
// @Failure		500				{object}	CounterpartyCreateResponse
// @Param			counterparties	body		[]CounterpartyEditable	true	"Counterparties"
// @Router			/v1/counterparties [post]
func CreateCounterparties(c *gin.Context) {
	var editables []CounterpartyEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CounterpartyCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := CounterpartyCreateResponse{}

	for _, editable := range editables {
		counterparty := editable.model()

		err = models.DB.Create(&counterparty).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newCounterparty(c, counterparty)
		r.Data = append(r.Data, CounterpartyResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get counterparties
// @Description	Returns a list of counterparties
// @Tags			Counterparties
// @Produce		json
// @Success		200	{object}	CounterpartyListResponse
// @Failure		400	{object}	CounterpartyListResponse
// @Failure		500	{object}	CounterpartyListResponse
// @Router			/v1/counterparties [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			note		query	string	false	"Filter by note"
// @Param			household	query	string	false	"Filter by household ID"
// @Param			search		query	string	false	"Search for this text in name and note"
// @Param			offset		query	uint	false	"The offset of the first Counterparty returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Counterparties to return. Defaults to 50."
func GetCounterparties(c *gin.Context) {
	var filter CounterpartyQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CounterpartyListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("name ASC").
		Where(&filterModel, queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 counterparties and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var counterparties []models.Counterparty
	err = q.Find(&counterparties).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CounterpartyListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CounterpartyListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Counterparty, 0)
	for _, counterparty := range counterparties {
		data = append(data, newCounterparty(c, counterparty))
	}

	c.JSON(http.StatusOK, CounterpartyListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get counterparty
// @Description	Returns a specific counterparty
// @Tags			Counterparties
// @Produce		json
// @Success		200	{object}	CounterpartyResponse
// @Failure		400	{object}	CounterpartyResponse
// @Failure		404	{object}	CounterpartyResponse
// @Failure		500	{object}	CounterpartyResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/counterparties/{id} [get]
func GetCounterparty(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CounterpartyResponse{
			Error: &s,
		})
		return
	}

	var counterparty models.Counterparty
	err = models.DB.First(&counterparty, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CounterpartyResponse{
			Error: &s,
		})
		return
	}

	data := newCounterparty(c, counterparty)
	c.JSON(http.StatusOK, CounterpartyResponse{Data: &data})
}

// @Summary		Update counterparty
// @Description	Update an existing counterparty. Only values to be updated need to be specified.
// @Tags			Counterparties
// @Accept			json
// @Produce		json
// @Success		200				{object}	CounterpartyResponse
// @Failure		400				{object}	CounterpartyResponse
// @Failure		404				{object}	CounterpartyResponse
// @Failure		500				{object}	CounterpartyResponse
// @Param			id				path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			counterparty	body		CounterpartyEditable	true	"Counterparty"
// @Router			/v1/counterparties/{id} [patch]
func UpdateCounterparty(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CounterpartyResponse{
			Error: &s,
		})
		return
	}

	var counterparty models.Counterparty
	err = models.DB.First(&counterparty, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CounterpartyResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CounterpartyEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CounterpartyResponse{
			Error: &s,
		})
		return
	}

	var data CounterpartyEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CounterpartyResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&counterparty).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CounterpartyResponse{
			Error: &s,
		})
		return
	}

	r := newCounterparty(c, counterparty)
	c.JSON(http.StatusOK, CounterpartyResponse{Data: &r})
}

// @Summary		Delete counterparty
// @Description	Deletes a counterparty
// @Tags			Counterparties
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/counterparties/{id} [delete]
func DeleteCounterparty(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var counterparty models.Counterparty
	err = models.DB.First(&counterparty, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&counterparty).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
