package v1

import (
	"errors"
	"net/http"

	"github.com/kassenbuch/backend/internal/importer"
	"github.com/kassenbuch/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Import errors
var (
	errNoFilePost      = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix = errors.New("this endpoint only supports files of the following types")
	errJobNotDraft     = errors.New("the import job can only be modified while it is a draft")
)

// startStatus returns the appropriate status for errors from starting
// an import job.
//
// Jobs that are not ready get a 422 since the request itself is fine,
// the job just lacks required mappings.
func startStatus(err error) int {
	if errors.Is(err, importer.ErrMissingMapping) {
		return http.StatusUnprocessableEntity
	}

	if errors.Is(err, models.ErrInvalidJobState) {
		return http.StatusBadRequest
	}

	if errors.Is(err, importer.ErrQueueFull) {
		return http.StatusServiceUnavailable
	}

	return status(err)
}
