package memory

import (
	"fmt"

	"abcplan/pkg/domain/entities"
	"abcplan/pkg/domain/repositories"
)

// ProductRepository provides in-memory storage for the raw sales table
type ProductRepository struct {
	table *entities.RawTable
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Verify interface compliance
var _ repositories.ProductRepository = (*ProductRepository)(nil)

// LoadTable stores an independent copy of the table so later pipeline
// stages can never observe mutations of the caller's rows
func (r *ProductRepository) LoadTable(table *entities.RawTable) error {
	if table == nil {
		return fmt.Errorf("table cannot be nil")
	}

	columns := append([]string(nil), table.Columns...)
	rows := make([]entities.RawRow, 0, len(table.Rows))
	for _, row := range table.Rows {
		rows = append(rows, row.Clone())
	}

	r.table = entities.NewRawTable(columns, rows)
	return nil
}

// GetTable returns the stored table
func (r *ProductRepository) GetTable() (*entities.RawTable, error) {
	if r.table == nil {
		return nil, fmt.Errorf("no table loaded")
	}
	return r.table, nil
}

// RowCount returns the number of data rows loaded
func (r *ProductRepository) RowCount() int {
	if r.table == nil {
		return 0
	}
	return len(r.table.Rows)
}
