// Package classify implements ABC tiering: products are ranked by a value
// measure, their cumulative contribution is accumulated in sorted order, and
// tier labels are assigned under the configured cutoffs.
package classify

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"abcplan/pkg/domain/entities"
)

// Config holds the classification parameters. ValueColumn selects the value
// measure: the derived monthly total (default), the sales-value column, or
// any other numeric source column by name.
type Config struct {
	ValueColumn string
	ACutoff     float64
	BCutoff     float64
}

// DefaultConfig returns the classic 80/95 Pareto cutoffs over monthly demand
func DefaultConfig() Config {
	return Config{
		ValueColumn: "total_mes",
		ACutoff:     0.80,
		BCutoff:     0.95,
	}
}

// Service implements the ABC classification stage
type Service struct {
	config           Config
	salesValueColumn string
	aCut             decimal.Decimal
	bCut             decimal.Decimal
}

// NewService creates a classifier, validating the cutoff invariant
// 0 < a_cutoff < b_cutoff <= 1
func NewService(config Config) (*Service, error) {
	if config.ACutoff <= 0 {
		return nil, fmt.Errorf("a_cutoff must be positive, got %v", config.ACutoff)
	}
	if config.BCutoff > 1 {
		return nil, fmt.Errorf("b_cutoff cannot exceed 1, got %v", config.BCutoff)
	}
	if config.ACutoff >= config.BCutoff {
		return nil, fmt.Errorf(
			"a_cutoff (%v) must be less than b_cutoff (%v)",
			config.ACutoff, config.BCutoff,
		)
	}
	if config.ValueColumn == "" {
		config.ValueColumn = DefaultConfig().ValueColumn
	}
	return &Service{
		config:           config,
		salesValueColumn: "Dinero_Ventas",
		aCut:             decimal.NewFromFloat(config.ACutoff),
		bCut:             decimal.NewFromFloat(config.BCutoff),
	}, nil
}

// Classify sorts the records descending by value (stable, so ties keep their
// original order), computes each record's fractional share and running
// cumulative share, and assigns tiers. A cumulative share landing exactly on
// a cutoff belongs to the lower-letter tier. A zero total value defines every
// share as zero instead of dividing. The returned slice is in sorted order;
// that ordering is part of the contract. Input records are not mutated.
func (s *Service) Classify(records []*entities.ProductRecord) []*entities.ProductRecord {
	sorted := make([]*entities.ProductRecord, 0, len(records))
	for _, record := range records {
		sorted = append(sorted, record.Clone())
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return s.valueOf(sorted[i]).GreaterThan(s.valueOf(sorted[j]))
	})

	total := decimal.Zero
	for _, record := range sorted {
		total = total.Add(s.valueOf(record))
	}

	cumulative := decimal.Zero
	for _, record := range sorted {
		if total.IsZero() {
			record.ValueShare = decimal.Zero
		} else {
			record.ValueShare = s.valueOf(record).Div(total)
		}
		cumulative = cumulative.Add(record.ValueShare)
		record.CumulativeValueShare = cumulative
		record.Tier = s.tierFor(cumulative)
	}

	return sorted
}

// TotalValue sums the configured value measure across the records
func (s *Service) TotalValue(records []*entities.ProductRecord) decimal.Decimal {
	total := decimal.Zero
	for _, record := range records {
		total = total.Add(s.valueOf(record))
	}
	return total
}

func (s *Service) valueOf(record *entities.ProductRecord) decimal.Decimal {
	switch s.config.ValueColumn {
	case "total_mes":
		return decimal.NewFromFloat(record.TotalDemand)
	case s.salesValueColumn:
		if record.SalesValue != nil {
			return *record.SalesValue
		}
		return decimal.Zero
	default:
		if value, ok := record.Raw.Number(s.config.ValueColumn); ok {
			return decimal.NewFromFloat(value)
		}
		return decimal.Zero
	}
}

func (s *Service) tierFor(cumulative decimal.Decimal) entities.Tier {
	switch {
	case cumulative.Cmp(s.aCut) <= 0:
		return entities.TierA
	case cumulative.Cmp(s.bCut) <= 0:
		return entities.TierB
	default:
		return entities.TierC
	}
}
