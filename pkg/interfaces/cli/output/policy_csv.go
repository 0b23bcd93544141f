package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"abcplan/pkg/application/dto"
	"abcplan/pkg/domain/entities"
)

// DerivedColumns are the columns the pipeline appends to the input schema,
// in their fixed export order
var DerivedColumns = []string{
	"total_demand",
	"mean_daily_demand",
	"daily_demand_stddev",
	"value_share",
	"cumulative_value_share",
	"abc_tier",
	"policy_kind",
	"order_qty_or_review_target",
	"reorder_point",
	"safety_stock",
	"review_order_quantity",
	"alert_code",
}

// WritePolicyTable serializes the output table losslessly: every input
// column first, in input header order with the original cells, then the
// derived columns. Optional fields that do not apply to a row's tier are
// written as empty cells.
func WritePolicyTable(result *dto.RunResult, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", filename, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := append(append([]string(nil), result.Columns...), DerivedColumns...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, product := range result.Products {
		if err := writer.Write(policyRow(result.Columns, product, result.Policies[i])); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", product.Code, err)
		}
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return nil
}

func policyRow(columns []string, product *entities.ProductRecord, policy *entities.PolicyResult) []string {
	row := make([]string, 0, len(columns)+len(DerivedColumns))
	for _, column := range columns {
		row = append(row, product.Raw[column])
	}

	row = append(row,
		formatFloat(product.TotalDemand),
		formatFloat(product.MeanDailyDemand),
		formatFloat(product.DailyDemandStdDev),
		product.ValueShare.String(),
		product.CumulativeValueShare.String(),
		product.Tier.String(),
		policy.Kind.String(),
		strconv.FormatInt(int64(policy.OrderQty), 10),
		formatQuantity(policy.ReorderPoint),
		formatQuantity(policy.SafetyStock),
		formatQuantity(policy.ReviewOrderQty),
		policy.Alert.String(),
	)
	return row
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatQuantity(q *entities.Quantity) string {
	if q == nil {
		return ""
	}
	return strconv.FormatInt(int64(*q), 10)
}
