package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kassenbuch/backend/internal/models"
)

// RegisterColumnMappingRoutes registers the detail routes for column
// mappings with the RouterGroup that is passed. Column mappings are
// created through their import job.
func RegisterColumnMappingRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:id", OptionsColumnMappingDetail)
	r.GET("/:id", GetColumnMapping)
	r.DELETE("/:id", DeleteColumnMapping)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			ColumnMappings
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/column-mappings/{id} [options]
func OptionsColumnMappingDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.ColumnMapping{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Header("allow", "GET, DELETE")
	c.Status(http.StatusNoContent)
}

// @Summary		Get column mapping
// @Description	Returns a specific column mapping
// @Tags			ColumnMappings
// @Produce		json
// @Success		200	{object}	ColumnMappingResponse
// @Failure		400	{object}	ColumnMappingResponse
// @Failure		404	{object}	ColumnMappingResponse
// @Failure		500	{object}	ColumnMappingResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/column-mappings/{id} [get]
func GetColumnMapping(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ColumnMappingResponse{
			Error: &s,
		})
		return
	}

	var mapping models.ColumnMapping
	err = models.DB.First(&mapping, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ColumnMappingResponse{
			Error: &s,
		})
		return
	}

	data := newColumnMapping(c, mapping)
	c.JSON(http.StatusOK, ColumnMappingResponse{Data: &data})
}

// @Summary		Delete column mapping
// @Description	Deletes a column mapping. Only mappings of draft jobs can be deleted.
// @Tags			ColumnMappings
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/column-mappings/{id} [delete]
func DeleteColumnMapping(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var mapping models.ColumnMapping
	err = models.DB.First(&mapping, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	// Mappings of a started job are frozen, the run must stay
	// reproducible from its inputs
	var job models.ImportJob
	err = models.DB.First(&job, mapping.ImportJobID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if job.Status != models.ImportJobDraft {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errJobNotDraft.Error(),
		})
		return
	}

	err = models.DB.Delete(&mapping).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
