package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductCode represents a unique SKU identifier
type ProductCode string

// Quantity represents an integer quantity of sellable units
type Quantity int64

// Tier represents the ABC classification tier
type Tier int

const (
	TierA Tier = iota
	TierB
	TierC
)

// MarshalJSON serializes the tier as its letter label
func (t Tier) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// String method for Tier enum
func (t Tier) String() string {
	switch t {
	case TierA:
		return "A"
	case TierB:
		return "B"
	case TierC:
		return "C"
	default:
		return "Unknown"
	}
}

// ProductRecord is one evaluation-run row for a single SKU. The normalizer
// produces the input fields in canonical form, the summarizer and classifier
// fill in the derived fields. Optional source columns are pointers so that
// "missing" stays distinguishable from zero downstream.
type ProductRecord struct {
	Code         ProductCode `json:"code"`
	Name         string      `json:"name"`
	Observations []float64   `json:"observations"` // one entry per day column, non-negative

	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	SalesValue   *decimal.Decimal `json:"sales_value,omitempty"`
	CurrentStock *float64         `json:"current_stock,omitempty"` // nil = unknown, 0 = known empty
	LeadTime     *float64         `json:"lead_time,omitempty"`

	// Aggregates already present in the source table take precedence over
	// the derived ones.
	SuppliedTotal  *float64 `json:"-"`
	SuppliedMean   *float64 `json:"-"`
	SuppliedStdDev *float64 `json:"-"`

	// Raw holds the original source cells so the output table can carry
	// every input column through unchanged.
	Raw RawRow `json:"-"`

	// Derived by the pipeline stages.
	LeadTimeDays         float64         `json:"lead_time_days"`
	TotalDemand          float64         `json:"total_demand"`
	MeanDailyDemand      float64         `json:"mean_daily_demand"`
	DailyDemandStdDev    float64         `json:"daily_demand_stddev"`
	ValueShare           decimal.Decimal `json:"value_share"`
	CumulativeValueShare decimal.Decimal `json:"cumulative_value_share"`
	Tier                 Tier            `json:"abc_tier"`
}

// NewProductRecord creates a validated product record
func NewProductRecord(code ProductCode, name string, observations []float64) (*ProductRecord, error) {
	if code == "" {
		return nil, fmt.Errorf("product code cannot be empty")
	}
	for i, obs := range observations {
		if obs < 0 {
			return nil, fmt.Errorf("demand observation %d cannot be negative, got %v", i, obs)
		}
	}
	return &ProductRecord{
		Code:         code,
		Name:         name,
		Observations: observations,
	}, nil
}

// Clone returns a copy of the record. Stages operate on copies so that no
// stage mutates the table a prior stage produced.
func (p *ProductRecord) Clone() *ProductRecord {
	clone := *p
	clone.Observations = append([]float64(nil), p.Observations...)
	return &clone
}

// StockKnown reports whether the current stock level was supplied
func (p *ProductRecord) StockKnown() bool {
	return p.CurrentStock != nil
}
