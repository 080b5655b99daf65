package importer_test

import (
	"testing"

	"github.com/kassenbuch/backend/internal/importer"
	"github.com/kassenbuch/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateReadiness(t *testing.T) {
	tests := []struct {
		name     string
		mappings []models.ColumnMapping
		missing  []importer.Field
	}{
		{
			"No mappings",
			nil,
			[]importer.Field{importer.FieldHousehold, importer.FieldAccount, importer.FieldValueDate, importer.FieldName},
		},
		{
			"All required mapped",
			[]models.ColumnMapping{
				{CSVHeader: "Haushalt", Field: "household"},
				{CSVHeader: "Konto", Field: "account"},
				{CSVHeader: "Datum", Field: "valueDate"},
				{CSVHeader: "Verwendungszweck", Field: "name"},
			},
			nil,
		},
		{
			"Date missing",
			[]models.ColumnMapping{
				{CSVHeader: "Haushalt", Field: "household"},
				{CSVHeader: "Konto", Field: "account"},
				{CSVHeader: "Verwendungszweck", Field: "name"},
				{CSVHeader: "Betrag", Field: "amount"},
			},
			[]importer.Field{importer.FieldValueDate},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			missing, err := importer.ValidateReadiness(tt.mappings)
			require.NoError(t, err)
			assert.Equal(t, tt.missing, missing)
		})
	}
}

// TestValidateReadinessDuplicateField verifies that two headers bound to
// the same field are rejected instead of one silently winning.
func TestValidateReadinessDuplicateField(t *testing.T) {
	_, err := importer.ValidateReadiness([]models.ColumnMapping{
		{CSVHeader: "Betrag", Field: "amount"},
		{CSVHeader: "Umsatz", Field: "amount"},
	})
	assert.ErrorIs(t, err, importer.ErrDuplicateColumnMapping)
}

func TestValidateReadinessUnknownField(t *testing.T) {
	_, err := importer.ValidateReadiness([]models.ColumnMapping{
		{CSVHeader: "Betrag", Field: "ammount"},
	})
	assert.ErrorIs(t, err, importer.ErrUnknownField)
}

func TestResolveColumns(t *testing.T) {
	header := []string{"Datum", "Betrag", "Verwendungszweck"}

	table, err := importer.ResolveColumns(header, []models.ColumnMapping{
		{CSVHeader: "Datum", Field: "valueDate", Format: "02.01.2006"},
		{CSVHeader: "Betrag", Field: "amount"},
		// Mapped, but the column does not exist in this file
		{CSVHeader: "Konto", Field: "account"},
	})
	require.NoError(t, err)

	assert.Equal(t, importer.Column{Header: "Datum", Format: "02.01.2006"}, table[importer.FieldValueDate])
	assert.Equal(t, importer.Column{Header: "Betrag"}, table[importer.FieldAmount])

	_, ok := table[importer.FieldAccount]
	assert.False(t, ok)

	// account did not resolve, so it is reported as missing
	assert.Contains(t, table.MissingRequired(), importer.FieldAccount)
}

func TestResolveColumnsDuplicateField(t *testing.T) {
	header := []string{"Betrag", "Umsatz"}

	_, err := importer.ResolveColumns(header, []models.ColumnMapping{
		{CSVHeader: "Betrag", Field: "amount"},
		{CSVHeader: "Umsatz", Field: "amount"},
	})
	assert.ErrorIs(t, err, importer.ErrDuplicateColumnMapping)
}
