package main

import (
	"context"
	"fmt"

	"abcplan/pkg/application/services/orchestration"
	"abcplan/pkg/domain/entities"
	"abcplan/pkg/infrastructure/events"
)

func main() {
	ctx := context.Background()

	// Build a small sales table in memory. In a real deployment this comes
	// from the CSV loader instead.
	table := buildSalesTable()

	orchestrator, err := orchestration.NewPlanningOrchestrator(
		orchestration.DefaultConfig(),
		events.NewInMemoryEventStore(),
		nil,
	)
	if err != nil {
		fmt.Printf("❌ Setup failed: %v\n", err)
		return
	}

	fmt.Println("🚀 Running ABC classification and policy computation...")
	fmt.Printf("Products: %d | Demand days: 5\n", len(table.Rows))
	fmt.Println()

	result, err := orchestrator.Run(ctx, table)
	if err != nil {
		fmt.Printf("❌ Pipeline failed: %v\n", err)
		return
	}

	fmt.Println("📊 Classification Results:")
	fmt.Printf("  Total demand value: %s\n", result.TotalValue.String())
	for _, tier := range []string{"A", "B", "C"} {
		fmt.Printf("  Tier %s products: %d\n", tier, result.TierCounts[tier])
	}
	fmt.Println()

	fmt.Println("📝 Replenishment Policies:")
	for i, product := range result.Products {
		policy := result.Policies[i]
		fmt.Printf("  %s (%s) tier %s → %s\n",
			product.Code, product.Name, product.Tier, policy.Kind)
		fmt.Printf("    order qty: %d", policy.OrderQty)
		if policy.ReorderPoint != nil {
			fmt.Printf(" | reorder point: %d", *policy.ReorderPoint)
		}
		if policy.SafetyStock != nil {
			fmt.Printf(" | safety stock: %d", *policy.SafetyStock)
		}
		fmt.Printf(" | alert: %s\n", policy.Alert)
	}
	fmt.Println()

	fmt.Printf("✅ Analysis complete in %v\n", result.Elapsed)
}

func buildSalesTable() *entities.RawTable {
	columns := []string{
		"codigo", "nombre",
		"Dia_1", "Dia_2", "Dia_3", "Dia_4", "Dia_5",
		"Costo_unitario", "Lead_Time", "Stock_actual",
	}
	rows := [][]string{
		{"P001", "Harina 1kg", "12", "9", "14", "11", "10", "1200", "3", "40"},
		{"P002", "Azucar 1kg", "4", "6", "5", "3", "7", "950", "2", "18"},
		{"P003", "Aceite 1L", "2", "1", "0", "3", "1", "2100", "4", "9"},
		{"P004", "Sal 500g", "1", "0", "1", "0", "0", "400", "2", ""},
		{"P005", "Arroz 1kg", "8", "10", "7", "9", "12", "1100", "3", "25"},
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
