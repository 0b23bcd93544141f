package orchestration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"abcplan/pkg/domain/entities"
	"abcplan/pkg/infrastructure/events"
)

func decimalFromInt(value int64) decimal.Decimal {
	return decimal.NewFromInt(value)
}

func salesTable() *entities.RawTable {
	columns := []string{"codigo", "nombre", "Dia_1", "Dia_2", "Dia_3", "Dia_4", "Dia_5", "Lead_Time", "Stock_actual"}
	rows := [][]string{
		{"P1", "Harina", "10", "10", "10", "10", "10", "3", "40"},
		{"P2", "Azucar", "1", "1", "1", "1", "1", "2", "5"},
		{"P3", "Sal", "0", "0", "0", "0", "0", "2", ""},
	}

	rawRows := make([]entities.RawRow, 0, len(rows))
	for _, row := range rows {
		raw := make(entities.RawRow, len(columns))
		for i, column := range columns {
			raw[column] = row[i]
		}
		rawRows = append(rawRows, raw)
	}
	return entities.NewRawTable(columns, rawRows)
}

func newOrchestrator(t *testing.T, store events.EventStore) *PlanningOrchestrator {
	t.Helper()
	orchestrator, err := NewPlanningOrchestrator(DefaultConfig(), store, nil)
	if err != nil {
		t.Fatalf("Failed to create orchestrator: %v", err)
	}
	return orchestrator
}

func TestRun_FullPipeline(t *testing.T) {
	orchestrator := newOrchestrator(t, nil)

	result, err := orchestrator.Run(context.Background(), salesTable())
	if err != nil {
		t.Fatalf("Expected run to succeed: %v", err)
	}

	if result.RunID == "" {
		t.Errorf("Expected a run ID to be assigned")
	}
	if len(result.Products) != 3 || len(result.Policies) != 3 {
		t.Fatalf("Expected 3 products and 3 policies, got %d and %d",
			len(result.Products), len(result.Policies))
	}

	// P1 carries 50/55 of the value: its first cumulative step overshoots
	// the 0.80 cutoff, so it lands in tier B; the rest is tier C.
	expectedTiers := map[entities.ProductCode]entities.Tier{
		"P1": entities.TierB,
		"P2": entities.TierC,
		"P3": entities.TierC,
	}
	for _, product := range result.Products {
		if product.Tier != expectedTiers[product.Code] {
			t.Errorf("%s: expected tier %s, got %s", product.Code, expectedTiers[product.Code], product.Tier)
		}
	}

	if result.TierCounts["A"] != 0 || result.TierCounts["B"] != 1 || result.TierCounts["C"] != 2 {
		t.Errorf("Expected tier counts A:0 B:1 C:2, got %v", result.TierCounts)
	}
	if !result.TotalValue.Equal(decimalFromInt(55)) {
		t.Errorf("Expected total value 55, got %s", result.TotalValue)
	}

	// Products and policies are parallel slices in classified order.
	for i, product := range result.Products {
		if result.Policies[i].Code != product.Code {
			t.Errorf("Policy %d is for %s, expected %s", i, result.Policies[i].Code, product.Code)
		}
	}

	// A zero-demand tier C product still gets the minimum lot of 1.
	for i, product := range result.Products {
		if product.Code == "P3" && result.Policies[i].OrderQty != 1 {
			t.Errorf("P3: expected minimum order qty 1, got %d", result.Policies[i].OrderQty)
		}
	}
}

func TestRun_EmptyTable(t *testing.T) {
	orchestrator := newOrchestrator(t, nil)

	_, err := orchestrator.Run(context.Background(), entities.NewRawTable([]string{"codigo"}, nil))
	if err != ErrEmptyTable {
		t.Errorf("Expected ErrEmptyTable, got %v", err)
	}
}

func TestRun_Idempotence(t *testing.T) {
	orchestrator := newOrchestrator(t, nil)
	table := salesTable()

	first, err := orchestrator.Run(context.Background(), table)
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	second, err := orchestrator.Run(context.Background(), table)
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	for i := range first.Products {
		if first.Products[i].Code != second.Products[i].Code {
			t.Errorf("Run order differs at %d: %s vs %s", i, first.Products[i].Code, second.Products[i].Code)
		}
		if first.Products[i].Tier != second.Products[i].Tier {
			t.Errorf("%s: tier differs between runs", first.Products[i].Code)
		}
		if first.Policies[i].OrderQty != second.Policies[i].OrderQty {
			t.Errorf("%s: order qty differs between runs", first.Products[i].Code)
		}
	}

	// The source table must still be untouched raw text.
	if table.Rows[0]["Dia_1"] != "10" {
		t.Errorf("Run must not mutate the input table")
	}
}

func TestRun_RecordsAuditEvents(t *testing.T) {
	store := events.NewInMemoryEventStore()
	orchestrator := newOrchestrator(t, store)

	result, err := orchestrator.Run(context.Background(), salesTable())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	recorded, err := store.ReadEvents(result.RunID)
	if err != nil {
		t.Fatalf("Failed to read events: %v", err)
	}

	// started + 4 stages + completed
	expectedTypes := []string{
		events.RunStartedEvent,
		events.StageCompletedEvent,
		events.StageCompletedEvent,
		events.StageCompletedEvent,
		events.StageCompletedEvent,
		events.RunCompletedEvent,
	}
	if len(recorded) != len(expectedTypes) {
		t.Fatalf("Expected %d events, got %d", len(expectedTypes), len(recorded))
	}
	for i, eventType := range expectedTypes {
		if recorded[i].Type() != eventType {
			t.Errorf("Event %d: expected %s, got %s", i, eventType, recorded[i].Type())
		}
		if recorded[i].Version() != i+1 {
			t.Errorf("Event %d: expected version %d, got %d", i, i+1, recorded[i].Version())
		}
	}
}

func TestRun_CancelledContext(t *testing.T) {
	orchestrator := newOrchestrator(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := orchestrator.Run(ctx, salesTable())
	if err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
