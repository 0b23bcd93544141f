package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"abcplan/pkg/application/dto"
	"abcplan/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
}

// Generate creates output in the specified format
func Generate(result *dto.RunResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output. The policy table is
// already in tier-then-value order because classification sorts by value
// descending and tiers follow the cumulative share.
func generateTextOutput(result *dto.RunResult, config Config) error {
	fmt.Printf("📊 ABC Classification & Policy Summary\n")
	fmt.Printf("======================================\n\n")

	fmt.Printf("Products: %d\n", len(result.Products))
	fmt.Printf("Total value: %s\n", result.TotalValue.String())
	fmt.Printf("Tier A: %d   Tier B: %d   Tier C: %d\n",
		result.TierCounts["A"], result.TierCounts["B"], result.TierCounts["C"])
	fmt.Printf("Run time: %v\n\n", result.Elapsed.Round(time.Microsecond))

	fmt.Printf("⚙️  Suggested policies:\n")
	fmt.Printf("%-12s %-20s %-4s %-10s %-8s %-14s %-8s %-6s %-6s %-8s %-18s\n",
		"Code", "Name", "ABC", "Total", "Mean/d", "Policy", "Q/S", "ROP", "SS", "Review", "Alert")
	fmt.Printf("%-12s %-20s %-4s %-10s %-8s %-14s %-8s %-6s %-6s %-8s %-18s\n",
		"------------", "--------------------", "----", "----------", "--------",
		"--------------", "--------", "------", "------", "--------", "------------------")

	for i, product := range result.Products {
		policy := result.Policies[i]
		fmt.Printf("%-12s %-20s %-4s %-10.0f %-8.2f %-14s %-8d %-6s %-6s %-8s %-18s\n",
			product.Code,
			truncate(product.Name, 20),
			product.Tier.String(),
			product.TotalDemand,
			product.MeanDailyDemand,
			policy.Kind.String(),
			policy.OrderQty,
			quantityCell(policy.ReorderPoint),
			quantityCell(policy.SafetyStock),
			quantityCell(policy.ReviewOrderQty),
			policy.Alert.String())
	}
	fmt.Println()

	if config.OutputDir != "" {
		return generateCSVOutput(result, config)
	}
	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *dto.RunResult, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "abc_policies.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Printf("💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput writes the full lossless output table
func generateCSVOutput(result *dto.RunResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("csv output requires an output directory")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "abc_policies.csv")
	if err := WritePolicyTable(result, filename); err != nil {
		return err
	}

	if config.Verbose {
		fmt.Printf("💾 CSV results saved to: %s\n", filename)
	}
	return nil
}

func quantityCell(q *entities.Quantity) string {
	if q == nil {
		return ""
	}
	return fmt.Sprintf("%d", *q)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
