package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"abcplan/pkg/domain/entities"
)

// RunResult contains the complete output of one classification-and-policy
// run. Products and Policies are parallel slices in the classified
// (value-descending) order, which groups tier A first, then B, then C.
type RunResult struct {
	RunID      string                    `json:"run_id"`
	Columns    []string                  `json:"columns"`
	Products   []*entities.ProductRecord `json:"products"`
	Policies   []*entities.PolicyResult  `json:"policies"`
	TierCounts map[string]int            `json:"tier_counts"`
	TotalValue decimal.Decimal           `json:"total_value"`
	Elapsed    time.Duration             `json:"elapsed"`
}
