package importer

import (
	"errors"
	"fmt"
)

// Job level errors. Any of these aborts the whole run before a single
// row is persisted.
var (
	ErrMissingMapping = errors.New("required fields are not mapped")
	ErrFileUnreadable = errors.New("the import file could not be read")

	// ErrConflictingMapping indicates two value mappings for the same
	// source value and target type with different targets. This is a data
	// integrity problem that must never be resolved by picking one.
	ErrConflictingMapping = errors.New("conflicting value mappings")

	ErrUnknownField = errors.New("unknown domain field in column mapping")

	// ErrDuplicateColumnMapping indicates two column mappings binding
	// different headers to the same domain field. Like conflicting value
	// mappings, this must never be resolved by picking one.
	ErrDuplicateColumnMapping = errors.New("multiple columns are mapped to the same field")
)

// Row level errors. They reject a single row and leave the rest of the
// job untouched.
var (
	ErrInvalidAmount       = errors.New("could not parse as an amount")
	ErrInvalidDate         = errors.New("could not parse as a date")
	ErrUnresolvedReference = errors.New("could not be resolved")
)

// MissingMappingError carries the set of required fields that have no
// column mapping.
type MissingMappingError struct {
	Fields []Field
}

func (e MissingMappingError) Error() string {
	return fmt.Sprintf("%v: %v", ErrMissingMapping, e.Fields)
}

func (e MissingMappingError) Unwrap() error {
	return ErrMissingMapping
}

// RowError is a failure confined to one row of the file.
type RowError struct {
	Row   int    `json:"row"`             // 1-based row index, header is row 0
	Field Field  `json:"field,omitempty"` // The field the error occurred on, empty for whole-row failures
	Value string `json:"value,omitempty"` // The raw value that caused the error
	Err   error  `json:"-"`
}

func (e RowError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	}

	return fmt.Sprintf("row %d: %s: %q %v", e.Row, e.Field, e.Value, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}
