package v1

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kassenbuch/backend/internal/httputil"
	"github.com/kassenbuch/backend/internal/importer"
	"github.com/kassenbuch/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterImportJobRoutes registers the routes for import jobs with
// the RouterGroup that is passed.
func RegisterImportJobRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsImportJobList)
		r.GET("", GetImportJobs)
		r.POST("", CreateImportJob)
	}

	// Import job with ID
	{
		r.OPTIONS("/:id", OptionsImportJobDetail)
		r.GET("/:id", GetImportJob)
		r.PATCH("/:id", UpdateImportJob)
		r.DELETE("/:id", DeleteImportJob)
	}

	// Mappings, readiness and start
	{
		r.OPTIONS("/:id/column-mappings", httputil.OptionsGetPost)
		r.GET("/:id/column-mappings", GetImportJobColumnMappings)
		r.POST("/:id/column-mappings", CreateImportJobColumnMappings)

		r.OPTIONS("/:id/value-mappings", httputil.OptionsGetPost)
		r.GET("/:id/value-mappings", GetImportJobValueMappings)
		r.POST("/:id/value-mappings", CreateImportJobValueMappings)

		r.OPTIONS("/:id/readiness", httputil.OptionsGet)
		r.GET("/:id/readiness", GetImportJobReadiness)

		r.OPTIONS("/:id/start", httputil.OptionsPost)
		r.POST("/:id/start", StartImportJob)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			ImportJobs
// @Success		204
// @Router			/v1/import-jobs [options]
func OptionsImportJobList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			ImportJobs
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/import-jobs/{id} [options]
func OptionsImportJobDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.ImportJob{})
}

// @Summary		Create import job
// @Description	Creates a new import job from an uploaded CSV file. The job starts as a draft, mappings are added separately.
// @Tags			ImportJobs
// @Accept			multipart/form-data
// @Produce		json
// @Success		201			{object}	ImportJobResponse
// @Failure		400			{object}	ImportJobResponse
// @Failure		404			{object}	ImportJobResponse
// @Failure		500			{object}	ImportJobResponse
// @Param			file		formData	file			true	"CSV file to import"
// @Param			householdId	query		ImportJobCreate	false	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/import-jobs [post]
func CreateImportJob(c *gin.Context) {
	var create ImportJobCreate
	if err := c.ShouldBind(&create); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ImportJobResponse{
			Error: &s,
		})
		return
	}

	formFile, err := c.FormFile("file")
	if formFile == nil {
		s := errNoFilePost.Error()
		c.JSON(http.StatusBadRequest, ImportJobResponse{
			Error: &s,
		})
		return
	}
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ImportJobResponse{
			Error: &s,
		})
		return
	}

	if !strings.HasSuffix(formFile.Filename, ".csv") {
		s := fmt.Sprintf("%v: .csv", errWrongFileSuffix)
		c.JSON(http.StatusBadRequest, ImportJobResponse{
			Error: &s,
		})
		return
	}

	f, err := formFile.Open()
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ImportJobResponse{
			Error: &s,
		})
		return
	}
	defer f.Close()

	path, err := uploads.Save(f)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, ImportJobResponse{
			Error: &s,
		})
		return
	}

	job := models.ImportJob{
		HouseholdID:      create.HouseholdID,
		Name:             create.Name,
		FileName:         formFile.Filename,
		FilePath:         path,
		Separator:        create.Separator,
		Locale:           create.Locale,
		MappingProfileID: create.MappingProfileID,
		Status:           models.ImportJobDraft,
	}

	err = models.DB.Create(&job).Error
	if err != nil {
		// The job was not created, the stored file would be orphaned
		_ = uploads.Remove(path)

		s := err.Error()
		c.JSON(status(err), ImportJobResponse{
			Error: &s,
		})
		return
	}

	data := newImportJob(c, job)
	c.JSON(http.StatusCreated, ImportJobResponse{Data: &data})
}

// @Summary		Get import jobs
// @Description	Returns a list of import jobs
// @Tags			ImportJobs
// @Produce		json
// @Success		200	{object}	ImportJobListResponse
// @Failure		400	{object}	ImportJobListResponse
// @Failure		500	{object}	ImportJobListResponse
// @Router			/v1/import-jobs [get]
// @Param			household	query	string	false	"Filter by household ID"
// @Param			status		query	string	false	"Filter by lifecycle state"
// @Param			name		query	string	false	"Filter by name"
// @Param			offset		query	uint	false	"The offset of the first job returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of jobs to return. Defaults to 50."
func GetImportJobs(c *gin.Context) {
	var filter ImportJobQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportJobListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("datetime(created_at) DESC").
		Where(&filterModel, queryFields...)

	if filter.Name != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 jobs and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var jobs []models.ImportJob
	err = q.Find(&jobs).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportJobListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ImportJobListResponse{
			Error: &e,
		})
		return
	}

	data := make([]ImportJob, 0)
	for _, job := range jobs {
		data = append(data, newImportJob(c, job))
	}

	c.JSON(http.StatusOK, ImportJobListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get import job
// @Description	Returns a specific import job
// @Tags			ImportJobs
// @Produce		json
// @Success		200	{object}	ImportJobResponse
// @Failure		400	{object}	ImportJobResponse
// @Failure		404	{object}	ImportJobResponse
// @Failure		500	{object}	ImportJobResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/import-jobs/{id} [get]
func GetImportJob(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportJobResponse{
			Error: &s,
		})
		return
	}

	var job models.ImportJob
	err = models.DB.First(&job, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportJobResponse{
			Error: &s,
		})
		return
	}

	data := newImportJob(c, job)
	c.JSON(http.StatusOK, ImportJobResponse{Data: &data})
}

// @Summary		Update import job
// @Description	Updates an import job. Only draft jobs can be updated, and only values to be updated need to be specified.
// @Tags			ImportJobs
// @Accept			json
// @Produce		json
// @Success		200	{object}	ImportJobResponse
// @Failure		400	{object}	ImportJobResponse
// @Failure		404	{object}	ImportJobResponse
// @Failure		500	{object}	ImportJobResponse
// @Param			id	path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			job	path		ImportJobEditable	true	"Import job"
// @Router			/v1/import-jobs/{id} [patch]
func UpdateImportJob(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportJobResponse{
			Error: &s,
		})
		return
	}

	var job models.ImportJob
	err = models.DB.First(&job, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportJobResponse{
			Error: &s,
		})
		return
	}

	if job.Status != models.ImportJobDraft {
		s := errJobNotDraft.Error()
		c.JSON(http.StatusBadRequest, ImportJobResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ImportJobEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportJobResponse{
			Error: &s,
		})
		return
	}

	var data ImportJobEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportJobResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&job).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportJobResponse{
			Error: &s,
		})
		return
	}

	r := newImportJob(c, job)
	c.JSON(http.StatusOK, ImportJobResponse{Data: &r})
}

// @Summary		Delete import job
// @Description	Deletes an import job with its mappings and stored file. Transactions it created are kept, only their job reference is cleared.
// @Tags			ImportJobs
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/import-jobs/{id} [delete]
func DeleteImportJob(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var job models.ImportJob
	err = models.DB.First(&job, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&job).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_ = uploads.Remove(job.FilePath)

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Get column mappings
// @Description	Returns the column mappings of a specific import job
// @Tags			ImportJobs
// @Produce		json
// @Success		200	{object}	ColumnMappingListResponse
// @Failure		400	{object}	ColumnMappingListResponse
// @Failure		404	{object}	ColumnMappingListResponse
// @Failure		500	{object}	ColumnMappingListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/import-jobs/{id}/column-mappings [get]
func GetImportJobColumnMappings(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ColumnMappingListResponse{
			Error: &s,
		})
		return
	}

	var job models.ImportJob
	err = models.DB.First(&job, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ColumnMappingListResponse{
			Error: &s,
		})
		return
	}

	var mappings []models.ColumnMapping
	err = models.DB.
		Where(&models.ColumnMapping{ImportJobID: job.ID}).
		Order("csv_header ASC").
		Find(&mappings).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ColumnMappingListResponse{
			Error: &s,
		})
		return
	}

	data := make([]ColumnMapping, 0)
	for _, mapping := range mappings {
		data = append(data, newColumnMapping(c, mapping))
	}

	c.JSON(http.StatusOK, ColumnMappingListResponse{Data: data})
}

// @Summary		Create column mappings
// @Description	Creates column mappings for a specific import job. Only draft jobs can be modified.
// @Tags			ImportJobs
// @Produce		json
// @Success		201			{object}	ColumnMappingCreateResponse
// @Failure		400			{object}	ColumnMappingCreateResponse
// @Failure		404			{object}	ColumnMappingCreateResponse
// @Failure		500			{object}	ColumnMappingCreateResponse
// @Param			id			path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			mappings	body		[]ColumnMappingEditable	true	"Column mappings"
// @Router			/v1/import-jobs/{id}/column-mappings [post]
func CreateImportJobColumnMappings(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ColumnMappingCreateResponse{
			Error: &s,
		})
		return
	}

	var job models.ImportJob
	err = models.DB.First(&job, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ColumnMappingCreateResponse{
			Error: &s,
		})
		return
	}

	if job.Status != models.ImportJobDraft {
		s := errJobNotDraft.Error()
		c.JSON(http.StatusBadRequest, ColumnMappingCreateResponse{
			Error: &s,
		})
		return
	}

	var editables []ColumnMappingEditable

	// Bind data and return error if not possible
	err = httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ColumnMappingCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ColumnMappingCreateResponse{}

	for _, editable := range editables {
		mapping := editable.model(job.ID)

		err = models.DB.Create(&mapping).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newColumnMapping(c, mapping)
		r.Data = append(r.Data, ColumnMappingResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get value mappings
// @Description	Returns the value mappings of a specific import job
// @Tags			ImportJobs
// @Produce		json
// @Success		200	{object}	ValueMappingListResponse
// @Failure		400	{object}	ValueMappingListResponse
// @Failure		404	{object}	ValueMappingListResponse
// @Failure		500	{object}	ValueMappingListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/import-jobs/{id}/value-mappings [get]
func GetImportJobValueMappings(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ValueMappingListResponse{
			Error: &s,
		})
		return
	}

	var job models.ImportJob
	err = models.DB.First(&job, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ValueMappingListResponse{
			Error: &s,
		})
		return
	}

	listValueMappings(c, models.ValueMapping{ImportJobID: &job.ID})
}

// @Summary		Create value mappings
// @Description	Creates value mappings for a specific import job. Only draft jobs can be modified.
// @Tags			ImportJobs
// @Produce		json
// @Success		201			{object}	ValueMappingCreateResponse
// @Failure		400			{object}	ValueMappingCreateResponse
// @Failure		404			{object}	ValueMappingCreateResponse
// @Failure		500			{object}	ValueMappingCreateResponse
// @Param			id			path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			mappings	body		[]ValueMappingEditable	true	"Value mappings"
// @Router			/v1/import-jobs/{id}/value-mappings [post]
func CreateImportJobValueMappings(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ValueMappingCreateResponse{
			Error: &s,
		})
		return
	}

	var job models.ImportJob
	err = models.DB.First(&job, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ValueMappingCreateResponse{
			Error: &s,
		})
		return
	}

	if job.Status != models.ImportJobDraft {
		s := errJobNotDraft.Error()
		c.JSON(http.StatusBadRequest, ValueMappingCreateResponse{
			Error: &s,
		})
		return
	}

	createValueMappings(c, models.ValueMapping{ImportJobID: &job.ID})
}

// @Summary		Check import job readiness
// @Description	Reports whether the job can be started and which required fields still lack a column mapping
// @Tags			ImportJobs
// @Produce		json
// @Success		200	{object}	ReadinessResponse
// @Failure		400	{object}	ReadinessResponse
// @Failure		404	{object}	ReadinessResponse
// @Failure		500	{object}	ReadinessResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/import-jobs/{id}/readiness [get]
func GetImportJobReadiness(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReadinessResponse{
			Error: &s,
		})
		return
	}

	var job models.ImportJob
	err = models.DB.First(&job, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReadinessResponse{
			Error: &s,
		})
		return
	}

	var mappings []models.ColumnMapping
	err = models.DB.Where(&models.ColumnMapping{ImportJobID: job.ID}).Find(&mappings).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReadinessResponse{
			Error: &s,
		})
		return
	}

	missing, err := importer.ValidateReadiness(mappings)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReadinessResponse{
			Error: &s,
		})
		return
	}

	if missing == nil {
		missing = []importer.Field{}
	}

	c.JSON(http.StatusOK, ReadinessResponse{
		Data: &Readiness{
			Ready:         len(missing) == 0,
			MissingFields: missing,
		},
	})
}

// @Summary		Start import job
// @Description	Starts a draft import job. The actual processing happens in the background, poll the job to see the outcome.
// @Tags			ImportJobs
// @Produce		json
// @Success		202	{object}	ImportJobResponse
// @Failure		400	{object}	ImportJobResponse
// @Failure		404	{object}	ImportJobResponse
// @Failure		422	{object}	ImportJobResponse
// @Failure		500	{object}	ImportJobResponse
// @Failure		503	{object}	ImportJobResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/import-jobs/{id}/start [post]
func StartImportJob(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportJobResponse{
			Error: &s,
		})
		return
	}

	err = imports.Start(uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(startStatus(err), ImportJobResponse{
			Error: &s,
		})
		return
	}

	var job models.ImportJob
	err = models.DB.First(&job, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportJobResponse{
			Error: &s,
		})
		return
	}

	data := newImportJob(c, job)
	c.JSON(http.StatusAccepted, ImportJobResponse{Data: &data})
}
