// Package reader parses delimited text files into raw, untyped rows.
//
// This is the only place in the import pipeline that deals with the file
// format itself. Everything downstream works on header-keyed string values.
package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrMalformedInput is returned when the file cannot be used at all:
// it is empty or its header yields no usable field names.
var ErrMalformedInput = errors.New("the file is not a usable delimited text file")

// Row is one data row of the file.
//
// Values is keyed by header name. Index is 1-based with the header at
// row 0. Blank lines keep their number, so an index always maps back to
// the physical line users see in their editor.
type Row struct {
	Index  int
	Values map[string]string
}

// File is the parsed representation of one delimited text file.
type File struct {
	Header []string
	Rows   []Row
}

// Read parses the input with the given field separator.
//
// The first line is the header. Rows with fewer fields than headers are
// padded with empty strings, rows with more fields are truncated. Both
// are tolerated since bank exports are rarely strictly rectangular.
func Read(r io.Reader, separator rune) (File, error) {
	cr := csv.NewReader(r)
	cr.Comma = separator

	// Rows with a deviating field count are handled below, not by the
	// csv package
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return File{}, fmt.Errorf("%w: the file is empty", ErrMalformedInput)
	}
	if err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	usable := false
	for _, name := range header {
		if strings.TrimSpace(name) != "" {
			usable = true
			break
		}
	}

	if !usable || (len(header) == 1 && strings.TrimSpace(header[0]) == "") {
		return File{}, fmt.Errorf("%w: the header contains no usable field names", ErrMalformedInput)
	}

	file := File{Header: header}

	headerLine, _ := cr.FieldPos(0)

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return File{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}

		// encoding/csv already skips fully empty lines, but a line of
		// separators produces a record of empty fields. Skip those, too.
		if blank(record) {
			continue
		}

		// Indexes follow the physical line so that skipped lines do not
		// shift the numbering of everything below them
		line, _ := cr.FieldPos(0)
		index := line - headerLine

		if len(record) > len(header) {
			log.Warn().Int("row", index).Int("fields", len(record)).Int("headers", len(header)).Msg("row has more fields than the header, dropping extra fields")
		}

		values := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				values[name] = record[i]
			} else {
				values[name] = ""
			}
		}

		file.Rows = append(file.Rows, Row{Index: index, Values: values})
	}

	return file, nil
}

func blank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
