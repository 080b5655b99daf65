package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/kassenbuch/backend/internal/httputil"
	"github.com/kassenbuch/backend/internal/models"
)

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS request for a specific resource.
//
// Note: This function only works for resources with an ID, not for nested collections (like column mappings)
func resourceOptionsDetail[R models.Household | models.Account | models.Category | models.Counterparty | models.Tag | models.Transaction | models.RecurringTransaction | models.CategorizationRule | models.MappingProfile | models.ImportJob](c *gin.Context, resource R) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&resource, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}
