package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Row represents one record of tabular input, keyed by column header.
type Row map[string]string

// Value returns the row's value for the given header, or an empty string
// when the column is absent.
func (r Row) Value(header string) string {
	return r[header]
}

// Table holds parsed tabular data with headers in file order.
type Table struct {
	Headers []string
	Rows    []Row
}

// FirstHeader returns the first column header, or an empty string for a
// headerless table.
func (t *Table) FirstHeader() string {
	if t == nil || len(t.Headers) == 0 {
		return ""
	}
	return t.Headers[0]
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Parse reads delimited text with a header row and returns the records in
// file order. Records shorter than the header row are padded with empty
// strings; extra trailing values without a header are dropped.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // header determines the column set
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse tabular data: %w", err)
	}

	if len(records) == 0 {
		return &Table{}, nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	table := &Table{Headers: headers}
	for _, record := range records[1:] {
		row := make(Row, len(headers))
		for i, header := range headers {
			if i < len(record) {
				row[header] = record[i]
			} else {
				row[header] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// ParseBytes parses an in-memory tabular data buffer.
func ParseBytes(data []byte) (*Table, error) {
	return Parse(bytes.NewReader(data))
}
