package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kassenbuch/backend/internal/httputil"
	"github.com/kassenbuch/backend/internal/models"
)

// RegisterValueMappingRoutes registers the detail routes for value
// mappings with the RouterGroup that is passed. Value mappings are
// created through their import job or mapping profile.
func RegisterValueMappingRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:id", OptionsValueMappingDetail)
	r.GET("/:id", GetValueMapping)
	r.DELETE("/:id", DeleteValueMapping)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			ValueMappings
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/value-mappings/{id} [options]
func OptionsValueMappingDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.ValueMapping{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Header("allow", "GET, DELETE")
	c.Status(http.StatusNoContent)
}

// @Summary		Get value mapping
// @Description	Returns a specific value mapping
// @Tags			ValueMappings
// @Produce		json
// @Success		200	{object}	ValueMappingResponse
// @Failure		400	{object}	ValueMappingResponse
// @Failure		404	{object}	ValueMappingResponse
// @Failure		500	{object}	ValueMappingResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/value-mappings/{id} [get]
func GetValueMapping(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ValueMappingResponse{
			Error: &s,
		})
		return
	}

	var mapping models.ValueMapping
	err = models.DB.First(&mapping, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ValueMappingResponse{
			Error: &s,
		})
		return
	}

	data := newValueMapping(c, mapping)
	c.JSON(http.StatusOK, ValueMappingResponse{Data: &data})
}

// @Summary		Delete value mapping
// @Description	Deletes a value mapping
// @Tags			ValueMappings
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/value-mappings/{id} [delete]
func DeleteValueMapping(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var mapping models.ValueMapping
	err = models.DB.First(&mapping, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	// Mappings of a started job are frozen, the run must stay
	// reproducible from its inputs
	if mapping.ImportJobID != nil {
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

// createValueMappings is the shared implementation for posting value
// mappings to an import job or a mapping profile. Exactly one of the
// two IDs is set.
func createValueMappings(c *gin.Context, scope models.ValueMapping) {
	var editables []ValueMappingEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ValueMappingCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ValueMappingCreateResponse{}

	for _, editable := range editables {
		mapping := models.ValueMapping{
			ImportJobID:      scope.ImportJobID,
			MappingProfileID: scope.MappingProfileID,
			SourceValue:      editable.SourceValue,
			TargetType:       editable.TargetType,
			TargetID:         editable.TargetID,
		}

		err = models.DB.Create(&mapping).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newValueMapping(c, mapping)
		r.Data = append(r.Data, ValueMappingResponse{Data: &data})
	}

	c.JSON(status, r)
}

// listValueMappings returns all value mappings for one scope.
func listValueMappings(c *gin.Context, scope models.ValueMapping) {
	q := models.DB.Order("source_value ASC")
	if scope.ImportJobID != nil {
		q = q.Where("import_job_id = ?", scope.ImportJobID)
	} else {
		q = q.Where("mapping_profile_id = ?", scope.MappingProfileID)
	}

	var mappings []models.ValueMapping
	err := q.Find(&mappings).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ValueMappingListResponse{
			Error: &s,
		})
		return
	}

	data := make([]ValueMapping, 0)
	for _, mapping := range mappings {
		data = append(data, newValueMapping(c, mapping))
	}

	c.JSON(http.StatusOK, ValueMappingListResponse{Data: data})
}
