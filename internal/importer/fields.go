package importer

import (
	"fmt"

	"github.com/kassenbuch/backend/internal/models"
	"github.com/rs/zerolog/log"
)

// Field is a domain field of a transaction that a CSV column can be
// mapped to.
type Field string

const (
	FieldHousehold      Field = "household"
	FieldAccount        Field = "account"
	FieldValueDate      Field = "valueDate"
	FieldValueDateUntil Field = "valueDateUntil"
	FieldName           Field = "name"
	FieldDescription    Field = "description"
	FieldAmount         Field = "amount"
	FieldCategory       Field = "category"
	FieldCounterparty   Field = "counterparty"
	FieldTags           Field = "tags"
)

// Fields lists all mappable domain fields.
var Fields = []Field{
	FieldHousehold,
	FieldAccount,
	FieldValueDate,
	FieldValueDateUntil,
	FieldName,
	FieldDescription,
	FieldAmount,
	FieldCategory,
	FieldCounterparty,
	FieldTags,
}

// RequiredFields must all be mapped before a job can be started.
var RequiredFields = []Field{
	FieldHousehold,
	FieldAccount,
	FieldValueDate,
	FieldName,
}

func knownField(f Field) bool {
	for _, field := range Fields {
		if field == f {
			return true
		}
	}
	return false
}

// Column is the resolved source of one domain field: the CSV header it
// comes from and an optional format hint.
type Column struct {
	Header string
	Format string
}

// ColumnTable maps domain fields to their resolved columns.
type ColumnTable map[Field]Column

// ValidateReadiness returns the required fields that have no column
// mapping. An empty return value means the job is startable.
//
// This works on the stored mappings alone, the file is not consulted.
func ValidateReadiness(mappings []models.ColumnMapping) ([]Field, error) {
	mapped := make(map[Field]bool, len(mappings))
	for _, m := range mappings {
		field := Field(m.Field)
		if !knownField(field) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, m.Field)
		}
		if mapped[field] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumnMapping, field)
		}
		mapped[field] = true
	}

	var missing []Field
	for _, field := range RequiredFields {
		if !mapped[field] {
			missing = append(missing, field)
		}
	}

	return missing, nil
}

// ResolveColumns builds the column table for a parsed file.
//
// Mappings whose CSV header does not occur in the file are skipped. For
// required fields this surfaces later as a missing field, for optional
// fields the column is simply absent from this import. Two columns of
// the file resolving to the same field make the mapping ambiguous.
func ResolveColumns(header []string, mappings []models.ColumnMapping) (ColumnTable, error) {
	inFile := make(map[string]bool, len(header))
	for _, name := range header {
		inFile[name] = true
	}

	table := make(ColumnTable, len(mappings))
	for _, m := range mappings {
		field := Field(m.Field)
		if !knownField(field) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, m.Field)
		}

		if !inFile[m.CSVHeader] {
			log.Warn().Str("header", m.CSVHeader).Str("field", m.Field).Msg("mapped column does not exist in the file")
			continue
		}

		if _, ok := table[field]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumnMapping, field)
		}

		table[field] = Column{Header: m.CSVHeader, Format: m.Format}
	}

	return table, nil
}

// MissingRequired returns the required fields that did not resolve to a
// column of the file.
func (t ColumnTable) MissingRequired() []Field {
	var missing []Field
	for _, field := range RequiredFields {
		if _, ok := t[field]; !ok {
			missing = append(missing, field)
		}
	}
	return missing
}
