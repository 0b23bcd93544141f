package repositories

import "abcplan/pkg/domain/entities"

// ProductRepository provides access to the raw sales table for a run
type ProductRepository interface {
	LoadTable(table *entities.RawTable) error
	GetTable() (*entities.RawTable, error)
	RowCount() int
}
