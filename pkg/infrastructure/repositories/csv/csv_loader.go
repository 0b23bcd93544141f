// Package csv loads the raw sales worksheet. Cells stay text; numeric
// normalization is the pipeline's job, so a malformed cell here is data,
// not an error.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"abcplan/pkg/domain/entities"
)

// Loader handles loading sales tables from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadSalesTable loads the per-product daily sales table. The first record
// is the header; its column order is preserved on the returned table. A file
// with a header but no data rows yields an empty table (the pipeline decides
// whether that is fatal). Duplicate header names keep the first occurrence.
func (l *Loader) LoadSalesTable(filename string) (*entities.RawTable, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open sales file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // sheets commonly have ragged trailing cells
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read sales CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("sales CSV must have a header row")
	}

	header := make([]string, 0, len(records[0]))
	seen := make(map[string]bool, len(records[0]))
	for _, column := range records[0] {
		column = strings.TrimSpace(column)
		if column == "" || seen[column] {
			continue
		}
		seen[column] = true
		header = append(header, column)
	}

	rows := make([]entities.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(entities.RawRow, len(header))
		for i, column := range records[0] {
			column = strings.TrimSpace(column)
			if column == "" || i >= len(record) {
				continue
			}
			if _, exists := row[column]; exists {
				continue
			}
			row[column] = record[i]
		}
		rows = append(rows, row)
	}

	return entities.NewRawTable(header, rows), nil
}
