package summarize

import (
	"math"
	"testing"

	"abcplan/pkg/domain/entities"
)

func TestSummarize_DerivedAggregates(t *testing.T) {
	record, err := entities.NewProductRecord("P001", "Harina", []float64{2, 4, 6, 8})
	if err != nil {
		t.Fatalf("Failed to create record: %v", err)
	}

	out := NewService(DefaultLeadTimeDays).Summarize([]*entities.ProductRecord{record})[0]

	if out.TotalDemand != 20 {
		t.Errorf("Expected total demand 20, got %v", out.TotalDemand)
	}
	if out.MeanDailyDemand != 5 {
		t.Errorf("Expected mean daily demand 5, got %v", out.MeanDailyDemand)
	}
	// Sample stddev of {2,4,6,8} with n-1 denominator.
	expected := math.Sqrt(20.0 / 3.0)
	if math.Abs(out.DailyDemandStdDev-expected) > 1e-12 {
		t.Errorf("Expected stddev %v, got %v", expected, out.DailyDemandStdDev)
	}
}

func TestSummarize_EdgeObservationCounts(t *testing.T) {
	testCases := []struct {
		name           string
		observations   []float64
		expectedTotal  float64
		expectedMean   float64
		expectedStdDev float64
	}{
		{"no observations", []float64{}, 0, 0, 0},
		{"single observation", []float64{7}, 7, 7, 0},
		{"constant demand", []float64{5, 5, 5}, 15, 5, 0},
	}

	service := NewService(DefaultLeadTimeDays)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			record, err := entities.NewProductRecord("P001", "test", tc.observations)
			if err != nil {
				t.Fatalf("Failed to create record: %v", err)
			}

			out := service.Summarize([]*entities.ProductRecord{record})[0]
			if out.TotalDemand != tc.expectedTotal {
				t.Errorf("Total = %v, expected %v", out.TotalDemand, tc.expectedTotal)
			}
			if out.MeanDailyDemand != tc.expectedMean {
				t.Errorf("Mean = %v, expected %v", out.MeanDailyDemand, tc.expectedMean)
			}
			if out.DailyDemandStdDev != tc.expectedStdDev {
				t.Errorf("StdDev = %v, expected %v", out.DailyDemandStdDev, tc.expectedStdDev)
			}
		})
	}
}

func TestSummarize_SuppliedAggregatesWin(t *testing.T) {
	record, _ := entities.NewProductRecord("P001", "Harina", []float64{1, 2, 3})
	total, mean, stddev := 300.0, 10.0, 2.5
	record.SuppliedTotal = &total
	record.SuppliedMean = &mean
	record.SuppliedStdDev = &stddev

	out := NewService(DefaultLeadTimeDays).Summarize([]*entities.ProductRecord{record})[0]

	if out.TotalDemand != 300 {
		t.Errorf("Supplied total must win over derived, got %v", out.TotalDemand)
	}
	if out.MeanDailyDemand != 10 {
		t.Errorf("Supplied mean must win over derived, got %v", out.MeanDailyDemand)
	}
	if out.DailyDemandStdDev != 2.5 {
		t.Errorf("Supplied stddev must win over derived, got %v", out.DailyDemandStdDev)
	}
}

func TestSummarize_LeadTimeDefault(t *testing.T) {
	withLeadTime, _ := entities.NewProductRecord("P001", "a", []float64{1})
	leadTime := 6.0
	withLeadTime.LeadTime = &leadTime

	withoutLeadTime, _ := entities.NewProductRecord("P002", "b", []float64{1})

	out := NewService(DefaultLeadTimeDays).Summarize(
		[]*entities.ProductRecord{withLeadTime, withoutLeadTime},
	)

	if out[0].LeadTimeDays != 6 {
		t.Errorf("Expected supplied lead time 6, got %v", out[0].LeadTimeDays)
	}
	if out[1].LeadTimeDays != DefaultLeadTimeDays {
		t.Errorf("Expected default lead time %v, got %v", DefaultLeadTimeDays, out[1].LeadTimeDays)
	}
}

func TestSummarize_InputNotMutated(t *testing.T) {
	record, _ := entities.NewProductRecord("P001", "Harina", []float64{1, 2})

	NewService(DefaultLeadTimeDays).Summarize([]*entities.ProductRecord{record})

	if record.TotalDemand != 0 || record.MeanDailyDemand != 0 {
		t.Errorf("Summarize must not mutate its input records")
	}
}
