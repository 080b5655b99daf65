package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrAccountNameNotUnique      = errors.New("the account name must be unique for the household")
	ErrCategoryNameNotUnique     = errors.New("the category name must be unique for the household")
	ErrCounterpartyNameNotUnique = errors.New("the counterparty name must be unique for the household")
	ErrTagNameNotUnique          = errors.New("the tag name must be unique for the household")
	ErrValueMappingNotUnique     = errors.New("a value mapping for this source value and target type already exists")

	// ErrInvalidJobState is returned when an import job is started or
	// processed in a state that does not allow it.
	ErrInvalidJobState = errors.New("the import job is not in a state that allows this transition")
)
