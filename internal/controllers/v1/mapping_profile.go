package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kassenbuch/backend/internal/httputil"
	"github.com/kassenbuch/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterMappingProfileRoutes registers the routes for mapping
// profiles with the RouterGroup that is passed.
func RegisterMappingProfileRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsMappingProfileList)
		r.GET("", GetMappingProfiles)
		r.POST("", CreateMappingProfiles)
	}

	// Mapping profile with ID
	{
		r.OPTIONS("/:id", OptionsMappingProfileDetail)
		r.GET("/:id", GetMappingProfile)
		r.PATCH("/:id", UpdateMappingProfile)
		r.DELETE("/:id", DeleteMappingProfile)
	}

	// Value mappings of the profile
	{
		r.OPTIONS("/:id/value-mappings", httputil.OptionsGetPost)
		r.GET("/:id/value-mappings", GetMappingProfileValueMappings)
		r.POST("/:id/value-mappings", CreateMappingProfileValueMappings)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			MappingProfiles
// @Success		204
// @Router			/v1/mapping-profiles [options]
func OptionsMappingProfileList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			MappingProfiles
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/mapping-profiles/{id} [options]
func OptionsMappingProfileDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.MappingProfile{})
}

// @Summary		Create mapping profile
// @Description	Creates a new mapping profile
// @Tags			MappingProfiles
// @Produce		json
// @Success		201			{object}	MappingProfileCreateResponse
// @Failure		400			{object}	MappingProfileCreateResponse
// @Failure		404			{object}	MappingProfileCreateResponse
// @Failure		500			{object}	MappingProfileCreateResponse
// @Param			profiles	body		[]MappingProfileEditable	true	"Mapping profiles"
// @Router			/v1/mapping-profiles [post]
func CreateMappingProfiles(c *gin.Context) {
	var editables []MappingProfileEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MappingProfileCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := MappingProfileCreateResponse{}

	for _, editable := range editables {
		profile := editable.model()

		err = models.DB.Create(&profile).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newMappingProfile(c, profile)
		r.Data = append(r.Data, MappingProfileResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get mapping profiles
// @Description	Returns a list of mapping profiles
// @Tags			MappingProfiles
// @Produce		json
// @Success		200	{object}	MappingProfileListResponse
// @Failure		400	{object}	MappingProfileListResponse
// @Failure		500	{object}	MappingProfileListResponse
// @Router			/v1/mapping-profiles [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			note		query	string	false	"Filter by note"
// @Param			household	query	string	false	"Filter by household ID"
// @Param			search		query	string	false	"Search for this text in name and note"
// @Param			offset		query	uint	false	"The offset of the first profile returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of profiles to return. Defaults to 50."
func GetMappingProfiles(c *gin.Context) {
	var filter MappingProfileQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MappingProfileListResponse{
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

	// Default to 50 profiles and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var profiles []models.MappingProfile
	err = q.Find(&profiles).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MappingProfileListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MappingProfileListResponse{
			Error: &e,
		})
		return
	}

	data := make([]MappingProfile, 0)
	for _, profile := range profiles {
		data = append(data, newMappingProfile(c, profile))
	}

	c.JSON(http.StatusOK, MappingProfileListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get mapping profile
// @Description	Returns a specific mapping profile
// @Tags			MappingProfiles
// @Produce		json
// @Success		200	{object}	MappingProfileResponse
// @Failure		400	{object}	MappingProfileResponse
// @Failure		404	{object}	MappingProfileResponse
// @Failure		500	{object}	MappingProfileResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/mapping-profiles/{id} [get]
func GetMappingProfile(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MappingProfileResponse{
			Error: &s,
		})
		return
	}

	var profile models.MappingProfile
	err = models.DB.First(&profile, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MappingProfileResponse{
			Error: &s,
		})
		return
	}

	data := newMappingProfile(c, profile)
	c.JSON(http.StatusOK, MappingProfileResponse{Data: &data})
}

// @Summary		Update mapping profile
// @Description	Updates an existing mapping profile. Only values to be updated need to be specified.
// @Tags			MappingProfiles
// @Accept			json
// @Produce		json
// @Success		200		{object}	MappingProfileResponse
// @Failure		400		{object}	MappingProfileResponse
// @Failure		404		{object}	MappingProfileResponse
// @Failure		500		{object}	MappingProfileResponse
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			profile	body		MappingProfileEditable	true	"Mapping profile"
// @Router			/v1/mapping-profiles/{id} [patch]
func UpdateMappingProfile(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MappingProfileResponse{
			Error: &s,
		})
		return
	}

	var profile models.MappingProfile
	err = models.DB.First(&profile, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MappingProfileResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, MappingProfileEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MappingProfileResponse{
			Error: &s,
		})
		return
	}

	var data MappingProfileEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MappingProfileResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&profile).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MappingProfileResponse{
			Error: &s,
		})
		return
	}

	r := newMappingProfile(c, profile)
	c.JSON(http.StatusOK, MappingProfileResponse{Data: &r})
}

// @Summary		Delete mapping profile
// @Description	Deletes a mapping profile with all its value mappings
// @Tags			MappingProfiles
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/mapping-profiles/{id} [delete]
func DeleteMappingProfile(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var profile models.MappingProfile
	err = models.DB.First(&profile, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&profile).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Get value mappings of a profile
// @Description	Returns the value mappings of a specific mapping profile
// @Tags			MappingProfiles
// @Produce		json
// @Success		200	{object}	ValueMappingListResponse
// @Failure		400	{object}	ValueMappingListResponse
// @Failure		404	{object}	ValueMappingListResponse
// @Failure		500	{object}	ValueMappingListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/mapping-profiles/{id}/value-mappings [get]
func GetMappingProfileValueMappings(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ValueMappingListResponse{
			Error: &s,
		})
		return
	}

	var profile models.MappingProfile
	err = models.DB.First(&profile, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ValueMappingListResponse{
			Error: &s,
		})
		return
	}

	listValueMappings(c, models.ValueMapping{MappingProfileID: &profile.ID})
}

// @Summary		Create value mappings for a profile
// @Description	Creates value mappings for a specific mapping profile
// @Tags			MappingProfiles
// @Produce		json
// @Success		201			{object}	ValueMappingCreateResponse
// @Failure		400			{object}	ValueMappingCreateResponse
// @Failure		404			{object}	ValueMappingCreateResponse
// @Failure		500			{object}	ValueMappingCreateResponse
// @Param			id			path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			mappings	body		[]ValueMappingEditable	true	"Value mappings"
// @Router			/v1/mapping-profiles/{id}/value-mappings [post]
func CreateMappingProfileValueMappings(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ValueMappingCreateResponse{
			Error: &s,
		})
		return
	}

	var profile models.MappingProfile
	err = models.DB.First(&profile, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ValueMappingCreateResponse{
			Error: &s,
		})
		return
	}

	createValueMappings(c, models.ValueMapping{MappingProfileID: &profile.ID})
}
