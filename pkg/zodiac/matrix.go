package zodiac

import (
	"fmt"
	"strings"
)

// Matrix is the compatibility table built from one scrape: rows are the
// fixed percentage bands, columns are capitalized sign labels, and each
// cell holds the comma-joined names of the people compatible with the
// column's sign at the row's band. Built once per run, read-only after.
type Matrix struct {
	columns []string
	cells   map[cellKey]string
}

type cellKey struct {
	band   Band
	column string
}

// BuildMatrix converts raw per-sign cell lists into a Matrix. Each
// sign's list must hold exactly one cell per band, positionally aligned
// to the fixed band order. Cell tokens are matched against the registry
// after trimming and lower-casing; tokens naming unknown signs, or
// signs with no registered people, are dropped silently.
func BuildMatrix(raw map[Sign][]string, reg Registry) (*Matrix, error) {
	bands := AllBands()
	lookup := reg.lookup()

	m := &Matrix{cells: make(map[cellKey]string)}

	for _, sign := range AllSigns() {
		values, ok := raw[sign]
		if !ok {
			continue
		}
		if len(values) != len(bands) {
			return nil, fmt.Errorf("sign %q: got %d cells, want %d", sign, len(values), len(bands))
		}

		column := sign.Column()
		m.columns = append(m.columns, column)

		for i, value := range values {
			var groups []string
			for _, token := range strings.Split(value, ",") {
				token = strings.ToLower(strings.TrimSpace(token))
				if names := lookup[token]; len(names) > 0 {
					groups = append(groups, strings.Join(names, ", "))
				}
			}
			m.cells[cellKey{bands[i], column}] = strings.Join(groups, ", ")
		}
	}

	return m, nil
}

// Columns returns the capitalized column labels in their fixed order.
func (m *Matrix) Columns() []string {
	return m.columns
}

// Cell returns the value at the given band and column. Missing columns
// and empty cells both read as the empty string.
func (m *Matrix) Cell(band Band, column string) string {
	return m.cells[cellKey{band, column}]
}

// HasColumn reports whether the matrix holds data for the given column.
func (m *Matrix) HasColumn(column string) bool {
	for _, c := range m.columns {
		if c == column {
			return true
		}
	}
	return false
}

// Row returns the cell values of one band across all columns, in
// column order.
func (m *Matrix) Row(band Band) []string {
	row := make([]string, len(m.columns))
	for i, column := range m.columns {
		row[i] = m.cells[cellKey{band, column}]
	}
	return row
}
