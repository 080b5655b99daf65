package reader_test

import (
	"strings"
	"testing"

	"github.com/kassenbuch/backend/internal/importer/reader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEmptyFile(t *testing.T) {
	_, err := reader.Read(strings.NewReader(""), ',')
	assert.ErrorIs(t, err, reader.ErrMalformedInput)
}

func TestReadHeaderWithoutNames(t *testing.T) {
	_, err := reader.Read(strings.NewReader(";;;\n1;2;3\n"), ';')
	assert.ErrorIs(t, err, reader.ErrMalformedInput)
}

func TestReadHeaderOnly(t *testing.T) {
	file, err := reader.Read(strings.NewReader("Datum,Betrag,Name\n"), ',')
	require.NoError(t, err)

	assert.Equal(t, []string{"Datum", "Betrag", "Name"}, file.Header)
	assert.Empty(t, file.Rows)
}

func TestRead(t *testing.T) {
	input := "Datum;Betrag;Name\n" +
		"01.02.2024;-12,99;EDEKA\n" +
		"02.02.2024;2.000,00;Gehalt\n"

	file, err := reader.Read(strings.NewReader(input), ';')
	require.NoError(t, err)

	require.Len(t, file.Rows, 2)

	// Row indexes are 1-based, the header is row 0
	assert.Equal(t, 1, file.Rows[0].Index)
	assert.Equal(t, 2, file.Rows[1].Index)

	assert.Equal(t, "EDEKA", file.Rows[0].Values["Name"])
	assert.Equal(t, "-12,99", file.Rows[0].Values["Betrag"])
	assert.Equal(t, "2.000,00", file.Rows[1].Values["Betrag"])
}

func TestReadQuotedFields(t *testing.T) {
	input := "Name,Note\n" +
		"\"Müller, Klaus\",\"He said \"\"hi\"\"\"\n"

	file, err := reader.Read(strings.NewReader(input), ',')
	require.NoError(t, err)

	require.Len(t, file.Rows, 1)
	assert.Equal(t, "Müller, Klaus", file.Rows[0].Values["Name"])
	assert.Equal(t, `He said "hi"`, file.Rows[0].Values["Note"])
}

// TestReadRaggedRows verifies that rows with a deviating field count are
// tolerated: short rows are padded, long rows are truncated.
func TestReadRaggedRows(t *testing.T) {
	input := "A;B;C\n" +
		"1;2\n" +
		"1;2;3;4\n"

	file, err := reader.Read(strings.NewReader(input), ';')
	require.NoError(t, err)

	require.Len(t, file.Rows, 2)
	assert.Equal(t, "", file.Rows[0].Values["C"])
	assert.Equal(t, "3", file.Rows[1].Values["C"])
}

// TestReadBlankLines verifies that blank lines produce no rows but keep
// their line number, so indexes below them still match the file.
func TestReadBlankLines(t *testing.T) {
	input := "A;B\n" +
		"1;2\n" +
		"\n" +
		";\n" +
		"3;4\n"

	file, err := reader.Read(strings.NewReader(input), ';')
	require.NoError(t, err)

	require.Len(t, file.Rows, 2)
	assert.Equal(t, 1, file.Rows[0].Index)
	assert.Equal(t, 4, file.Rows[1].Index)
}
