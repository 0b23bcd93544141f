package classify

import (
	"testing"

	"github.com/shopspring/decimal"

	"abcplan/pkg/domain/entities"
)

func demandRecord(code entities.ProductCode, totalDemand float64) *entities.ProductRecord {
	return &entities.ProductRecord{Code: code, TotalDemand: totalDemand}
}

func classifyAll(t *testing.T, records ...*entities.ProductRecord) []*entities.ProductRecord {
	t.Helper()
	service, err := NewService(DefaultConfig())
	if err != nil {
		t.Fatalf("Failed to create classifier: %v", err)
	}
	return service.Classify(records)
}

func TestClassify_CanonicalParetoSplit(t *testing.T) {
	// Cumulative shares land exactly on the cutoffs: 0.80, 0.95, 1.0.
	// A boundary hit belongs to the lower-letter tier.
	sorted := classifyAll(t,
		demandRecord("P_LOW", 5),
		demandRecord("P_HIGH", 80),
		demandRecord("P_MID", 15),
	)

	expected := []struct {
		code entities.ProductCode
		tier entities.Tier
	}{
		{"P_HIGH", entities.TierA},
		{"P_MID", entities.TierB},
		{"P_LOW", entities.TierC},
	}

	for i, exp := range expected {
		if sorted[i].Code != exp.code {
			t.Errorf("Position %d: expected %s, got %s (must sort descending by value)", i, exp.code, sorted[i].Code)
		}
		if sorted[i].Tier != exp.tier {
			t.Errorf("%s: expected tier %s, got %s", sorted[i].Code, exp.tier, sorted[i].Tier)
		}
	}
}

func TestClassify_ConcentratedDemand(t *testing.T) {
	// One product at 50/55 of the value overshoots the A cutoff on the
	// first cumulative step, so it lands in tier B.
	sorted := classifyAll(t,
		demandRecord("P1", 50),
		demandRecord("P2", 5),
		demandRecord("P3", 0),
	)

	if sorted[0].Code != "P1" || sorted[0].Tier != entities.TierB {
		t.Errorf("P1: expected tier B at position 0, got %s tier %s", sorted[0].Code, sorted[0].Tier)
	}
	if sorted[1].Code != "P2" || sorted[1].Tier != entities.TierC {
		t.Errorf("P2: expected tier C, got %s tier %s", sorted[1].Code, sorted[1].Tier)
	}
	if sorted[2].Code != "P3" || sorted[2].Tier != entities.TierC {
		t.Errorf("P3: expected tier C, got %s tier %s", sorted[2].Code, sorted[2].Tier)
	}
	if !sorted[2].CumulativeValueShare.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Last cumulative share must be 1, got %s", sorted[2].CumulativeValueShare)
	}
}

func TestClassify_ZeroTotalValue(t *testing.T) {
	sorted := classifyAll(t,
		demandRecord("P1", 0),
		demandRecord("P2", 0),
	)

	for _, record := range sorted {
		if !record.ValueShare.IsZero() {
			t.Errorf("%s: zero total must define every share as 0, got %s", record.Code, record.ValueShare)
		}
		if record.Tier != entities.TierA {
			t.Errorf("%s: zero cumulative share sits at or below the A cutoff, got tier %s", record.Code, record.Tier)
		}
	}
}

func TestClassify_StableTieOrder(t *testing.T) {
	sorted := classifyAll(t,
		demandRecord("FIRST", 10),
		demandRecord("SECOND", 10),
		demandRecord("THIRD", 10),
	)

	expected := []entities.ProductCode{"FIRST", "SECOND", "THIRD"}
	for i, code := range expected {
		if sorted[i].Code != code {
			t.Errorf("Position %d: expected %s, got %s (ties must keep input order)", i, code, sorted[i].Code)
		}
	}
}

func TestClassify_SalesValueColumn(t *testing.T) {
	service, err := NewService(Config{ValueColumn: "Dinero_Ventas", ACutoff: 0.80, BCutoff: 0.95})
	if err != nil {
		t.Fatalf("Failed to create classifier: %v", err)
	}

	high := decimal.NewFromInt(9000)
	low := decimal.NewFromInt(1000)
	records := []*entities.ProductRecord{
		{Code: "CHEAP", TotalDemand: 500, SalesValue: &low},
		{Code: "PRICEY", TotalDemand: 10, SalesValue: &high},
		{Code: "NOVALUE", TotalDemand: 999},
	}

	sorted := service.Classify(records)
	if sorted[0].Code != "PRICEY" {
		t.Errorf("Expected PRICEY ranked first by sales value, got %s", sorted[0].Code)
	}
	if sorted[2].Code != "NOVALUE" {
		t.Errorf("A missing sales value must rank as zero, got %s last", sorted[2].Code)
	}
}

func TestClassify_InputNotMutated(t *testing.T) {
	record := demandRecord("P1", 10)
	classifyAll(t, record)

	if !record.CumulativeValueShare.IsZero() {
		t.Errorf("Classify must not mutate its input records")
	}
}

func TestNewService_Validation(t *testing.T) {
	testCases := []struct {
		name        string
		config      Config
		expectError string
	}{
		{"zero a_cutoff", Config{ACutoff: 0, BCutoff: 0.95}, "a_cutoff must be positive, got 0"},
		{"b_cutoff above one", Config{ACutoff: 0.8, BCutoff: 1.5}, "b_cutoff cannot exceed 1, got 1.5"},
		{"inverted cutoffs", Config{ACutoff: 0.95, BCutoff: 0.8}, "a_cutoff (0.95) must be less than b_cutoff (0.8)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewService(tc.config)
			if err == nil {
				t.Fatalf("Expected error %q, got nil", tc.expectError)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error %q, got %q", tc.expectError, err.Error())
			}
		})
	}
}
