// Package normalize implements the numeric-normalization stage. It turns the
// untyped source table into fully-populated product records: every cell
// either parses or falls back to its defined sentinel, so no parse failure
// escapes this stage.
package normalize

import (
	"fmt"

	"github.com/shopspring/decimal"

	"abcplan/pkg/domain/entities"
)

// Config names the source-table columns the normalizer recognizes. The day
// columns are selected by prefix; everything else is optional and falls back
// to a sentinel when absent or unparseable.
type Config struct {
	CodeColumn         string
	NameColumn         string
	DemandColumnPrefix string
	UnitCostColumn     string
	SalesValueColumn   string
	TotalColumn        string
	MeanColumn         string
	StdDevColumn       string
	LeadTimeColumn     string
	StockColumn        string
}

// DefaultConfig returns the column names of the distributor sales worksheet
func DefaultConfig() Config {
	return Config{
		CodeColumn:         "codigo",
		NameColumn:         "nombre",
		DemandColumnPrefix: "Dia_",
		UnitCostColumn:     "Costo_unitario",
		SalesValueColumn:   "Dinero_Ventas",
		TotalColumn:        "total_mes",
		MeanColumn:         "d_Promedio",
		StdDevColumn:       "Variacion_D",
		LeadTimeColumn:     "Lead_Time",
		StockColumn:        "Stock_actual",
	}
}

// Service implements the numeric-normalization stage
type Service struct {
	config Config
}

// NewService creates a normalizer for the given column configuration
func NewService(config Config) *Service {
	if config.DemandColumnPrefix == "" {
		config.DemandColumnPrefix = DefaultConfig().DemandColumnPrefix
	}
	return &Service{config: config}
}

// Normalize converts the raw table into canonical product records. Demand
// cells that fail to parse (or parse negative) become 0; the optional
// cost/value/lead-time/stock cells become nil, which downstream stages treat
// as "missing" rather than zero. The input table is not mutated.
func (s *Service) Normalize(table *entities.RawTable) []*entities.ProductRecord {
	dayColumns := table.DayColumns(s.config.DemandColumnPrefix)

	records := make([]*entities.ProductRecord, 0, len(table.Rows))
	for i, row := range table.Rows {
		records = append(records, s.normalizeRow(i, row, dayColumns))
	}
	return records
}

// normalizeRow produces the canonical record shape for a single source row
func (s *Service) normalizeRow(index int, row entities.RawRow, dayColumns []string) *entities.ProductRecord {
	code := entities.ProductCode(row[s.config.CodeColumn])
	if code == "" {
		// Rows without an identifier still flow through the pipeline.
		code = entities.ProductCode(fmt.Sprintf("ROW_%d", index+1))
	}

	observations := make([]float64, len(dayColumns))
	for j, column := range dayColumns {
		value, ok := row.Number(column)
		if !ok || value < 0 {
			value = 0
		}
		observations[j] = value
	}

	record := &entities.ProductRecord{
		Code:         code,
		Name:         row[s.config.NameColumn],
		Observations: observations,
		Raw:          row.Clone(),
	}

	if value, ok := row.Number(s.config.UnitCostColumn); ok {
		cost := decimal.NewFromFloat(value)
		record.UnitCost = &cost
	}
	if value, ok := row.Number(s.config.SalesValueColumn); ok {
		sales := decimal.NewFromFloat(value)
		record.SalesValue = &sales
	}
	if value, ok := row.Number(s.config.StockColumn); ok {
		record.CurrentStock = &value
	}
	if value, ok := row.Number(s.config.LeadTimeColumn); ok {
		record.LeadTime = &value
	}
	if value, ok := row.Number(s.config.TotalColumn); ok {
		record.SuppliedTotal = &value
	}
	if value, ok := row.Number(s.config.MeanColumn); ok {
		record.SuppliedMean = &value
	}
	if value, ok := row.Number(s.config.StdDevColumn); ok {
		record.SuppliedStdDev = &value
	}

	return record
}
