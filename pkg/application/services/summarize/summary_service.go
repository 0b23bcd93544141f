// Package summarize implements the demand-summary stage: per-product total,
// mean daily demand, and daily demand dispersion over the observed horizon.
package summarize

import (
	"math"

	"abcplan/pkg/domain/entities"
)

// DefaultLeadTimeDays is applied when the source table carries no lead time
const DefaultLeadTimeDays = 3.0

// Service implements the demand-summary stage
type Service struct {
	defaultLeadTimeDays float64
}

// NewService creates a summarizer. A non-positive default lead time falls
// back to DefaultLeadTimeDays.
func NewService(defaultLeadTimeDays float64) *Service {
	if defaultLeadTimeDays <= 0 {
		defaultLeadTimeDays = DefaultLeadTimeDays
	}
	return &Service{defaultLeadTimeDays: defaultLeadTimeDays}
}

// Summarize derives the per-product demand aggregates. Aggregates already
// supplied by the source table win over the derived ones. An empty
// observation set yields zeros, never an error. Returns a new slice of
// copies; the input records are not mutated.
func (s *Service) Summarize(records []*entities.ProductRecord) []*entities.ProductRecord {
	summarized := make([]*entities.ProductRecord, 0, len(records))
	for _, record := range records {
		summarized = append(summarized, s.summarizeRecord(record))
	}
	return summarized
}

func (s *Service) summarizeRecord(record *entities.ProductRecord) *entities.ProductRecord {
	out := record.Clone()

	if record.SuppliedTotal != nil {
		out.TotalDemand = *record.SuppliedTotal
	} else {
		out.TotalDemand = sum(record.Observations)
	}

	if record.SuppliedMean != nil {
		out.MeanDailyDemand = *record.SuppliedMean
	} else {
		out.MeanDailyDemand = mean(record.Observations)
	}

	if record.SuppliedStdDev != nil {
		out.DailyDemandStdDev = *record.SuppliedStdDev
	} else {
		out.DailyDemandStdDev = sampleStdDev(record.Observations)
	}

	if record.LeadTime != nil {
		out.LeadTimeDays = *record.LeadTime
	} else {
		out.LeadTimeDays = s.defaultLeadTimeDays
	}

	return out
}

func sum(observations []float64) float64 {
	total := 0.0
	for _, obs := range observations {
		total += obs
	}
	return total
}

func mean(observations []float64) float64 {
	if len(observations) == 0 {
		return 0
	}
	return sum(observations) / float64(len(observations))
}

// sampleStdDev computes the sample standard deviation (n-1 denominator).
// Fewer than two observations yield 0.
func sampleStdDev(observations []float64) float64 {
	n := len(observations)
	if n < 2 {
		return 0
	}
	m := mean(observations)
	sumSquares := 0.0
	for _, obs := range observations {
		deviation := obs - m
		sumSquares += deviation * deviation
	}
	return math.Sqrt(sumSquares / float64(n-1))
}
