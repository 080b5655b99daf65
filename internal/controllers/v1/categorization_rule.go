package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kassenbuch/backend/internal/httputil"
	"github.com/kassenbuch/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterCategorizationRuleRoutes registers the routes for
// categorization rules with the RouterGroup that is passed.
func RegisterCategorizationRuleRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCategorizationRuleList)
		r.GET("", GetCategorizationRules)
		r.POST("", CreateCategorizationRules)
	}

	// Rule with ID
	{
		r.OPTIONS("/:id", OptionsCategorizationRuleDetail)
		r.GET("/:id", GetCategorizationRule)
		r.PATCH("/:id", UpdateCategorizationRule)
		r.DELETE("/:id", DeleteCategorizationRule)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			CategorizationRules
// @Success		204
// @Router			/v1/categorization-rules [options]
func OptionsCategorizationRuleList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			CategorizationRules
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categorization-rules/{id} [options]
func OptionsCategorizationRuleDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.CategorizationRule{})
}

// @Summary		Create categorization rule
// @Description	Creates a new categorization rule
// @Tags			CategorizationRules
// @Produce		json
// @Success		201		{object}	CategorizationRuleCreateResponse
// @Failure		400		{object}	CategorizationRuleCreateResponse
// @Failure		404		{object}	CategorizationRuleCreateResponse
// @Failure		500		{object}	CategorizationRuleCreateResponse
// @Param			rules	body		[]CategorizationRuleEditable	true	"Categorization rules"
// @Router			/v1/categorization-rules [post]
func CreateCategorizationRules(c *gin.Context) {
	var editables []CategorizationRuleEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategorizationRuleCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := CategorizationRuleCreateResponse{}

	for _, editable := range editables {
		rule := editable.model()

		err = models.DB.Create(&rule).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newCategorizationRule(c, rule)
		r.Data = append(r.Data, CategorizationRuleResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get categorization rules
// @Description	Returns a list of categorization rules
// @Tags			CategorizationRules
// @Produce		json
// @Success		200	{object}	CategorizationRuleListResponse
// @Failure		400	{object}	CategorizationRuleListResponse
// @Failure		500	{object}	CategorizationRuleListResponse
// @Router			/v1/categorization-rules [get]
// @Param			household	query	string	false	"Filter by household ID"
// @Param			category	query	string	false	"Filter by assigned category ID"
// @Param			match		query	string	false	"Filter by match pattern"
// @Param			offset		query	uint	false	"The offset of the first rule returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of rules to return. Defaults to 50."
func GetCategorizationRules(c *gin.Context) {
	var filter CategorizationRuleQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategorizationRuleListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("priority ASC, match ASC").
		Where(&filterModel, queryFields...)

	if filter.Match != "" {
		q = q.Where("match LIKE ?", fmt.Sprintf("%%%s%%", filter.Match))
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 rules and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var rules []models.CategorizationRule
	err = q.Find(&rules).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategorizationRuleListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategorizationRuleListResponse{
			Error: &e,
		})
		return
	}

	data := make([]CategorizationRule, 0)
	for _, rule := range rules {
		data = append(data, newCategorizationRule(c, rule))
	}

	c.JSON(http.StatusOK, CategorizationRuleListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get categorization rule
// @Description	Returns a specific categorization rule
// @Tags			CategorizationRules
// @Produce		json
// @Success		200	{object}	CategorizationRuleResponse
// @Failure		400	{object}	CategorizationRuleResponse
// @Failure		404	{object}	CategorizationRuleResponse
// @Failure		500	{object}	CategorizationRuleResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categorization-rules/{id} [get]
func GetCategorizationRule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategorizationRuleResponse{
			Error: &s,
		})
		return
	}

	var rule models.CategorizationRule
	err = models.DB.First(&rule, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategorizationRuleResponse{
			Error: &s,
		})
		return
	}

	data := newCategorizationRule(c, rule)
	c.JSON(http.StatusOK, CategorizationRuleResponse{Data: &data})
}

// @Summary		Update categorization rule
// @Description	Updates an existing categorization rule. Only values to be updated need to be specified.
// @Tags			CategorizationRules
// @Accept			json
// @Produce		json
// @Success		200		{object}	CategorizationRuleResponse
// @Failure		400		{object}	CategorizationRuleResponse
// @Failure		404		{object}	CategorizationRuleResponse
// @Failure		500		{object}	CategorizationRuleResponse
// @Param			id		path		URIID						true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			rule	body		CategorizationRuleEditable	true	"Categorization rule"
// @Router			/v1/categorization-rules/{id} [patch]
func UpdateCategorizationRule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategorizationRuleResponse{
			Error: &s,
		})
		return
	}

	var rule models.CategorizationRule
	err = models.DB.First(&rule, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategorizationRuleResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CategorizationRuleEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategorizationRuleResponse{
			Error: &s,
		})
		return
	}

	var data CategorizationRuleEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategorizationRuleResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&rule).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategorizationRuleResponse{
			Error: &s,
		})
		return
	}

	r := newCategorizationRule(c, rule)
	c.JSON(http.StatusOK, CategorizationRuleResponse{Data: &r})
}

// @Summary		Delete categorization rule
// @Description	Deletes a categorization rule
// @Tags			CategorizationRules
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categorization-rules/{id} [delete]
func DeleteCategorizationRule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var rule models.CategorizationRule
	err = models.DB.First(&rule, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&rule).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
