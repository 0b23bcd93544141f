package entities

import (
	"strconv"
	"strings"
)

// RawRow maps a column name to its original text cell
type RawRow map[string]string

// Number parses the named cell as a locale-tolerant number, stripping
// thousands-separator commas and embedded whitespace. The second return
// value is false for absent, empty, or unparseable cells.
func (r RawRow) Number(column string) (float64, bool) {
	cell, exists := r[column]
	if !exists {
		return 0, false
	}
	cleaned := strings.TrimSpace(cell)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if cleaned == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// Clone returns an independent copy of the row
func (r RawRow) Clone() RawRow {
	clone := make(RawRow, len(r))
	for column, cell := range r {
		clone[column] = cell
	}
	return clone
}

// RawTable is the ordered, untyped view of the source worksheet. Column
// order is part of the contract: exports must preserve it.
type RawTable struct {
	Columns []string
	Rows    []RawRow
}

// NewRawTable creates a raw table from a header and rows
func NewRawTable(columns []string, rows []RawRow) *RawTable {
	return &RawTable{Columns: columns, Rows: rows}
}

// DayColumns returns the demand-observation columns matching the given
// name prefix, in header order
func (t *RawTable) DayColumns(prefix string) []string {
	var dayColumns []string
	for _, column := range t.Columns {
		if strings.HasPrefix(column, prefix) {
			dayColumns = append(dayColumns, column)
		}
	}
	return dayColumns
}

// HasColumn reports whether the table header contains the named column
func (t *RawTable) HasColumn(name string) bool {
	for _, column := range t.Columns {
		if column == name {
			return true
		}
	}
	return false
}
