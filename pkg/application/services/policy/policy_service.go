// Package policy implements the tier-specific replenishment policy engine:
// continuous-review (Q, ROP) for tier A, periodic-review order-up-to for
// tier B, and simplified min-max for tier C.
package policy

import (
	"fmt"
	"math"
	"sync"

	"abcplan/pkg/domain/entities"
)

const daysPerYear = 365

// Params holds the policy computation parameters. ZScoreA/ZScoreB, when set
// non-zero, are used directly and the service-level quantile derivation is
// bypassed.
type Params struct {
	OrderingCost      float64
	HoldingRate       float64
	ServiceLevelA     float64
	ServiceLevelB     float64
	ZScoreA           float64
	ZScoreB           float64
	ReviewPeriodBDays float64
	// Parallelism bounds the worker count for the per-row computation.
	// Values below 2 select the sequential path; output is identical
	// either way.
	Parallelism int
}

// DefaultParams returns the standard configuration surface
func DefaultParams() Params {
	return Params{
		OrderingCost:      30000,
		HoldingRate:       0.20,
		ServiceLevelA:     0.98,
		ServiceLevelB:     0.95,
		ReviewPeriodBDays: 5,
	}
}

// Service implements the policy-engine stage
type Service struct {
	params Params
	zA     float64
	zB     float64
}

// NewService creates a policy engine, resolving the tier z-scores from the
// configured service levels unless they were supplied directly
func NewService(params Params) (*Service, error) {
	if params.OrderingCost < 0 {
		return nil, fmt.Errorf("ordering cost cannot be negative, got %v", params.OrderingCost)
	}
	if params.HoldingRate < 0 {
		return nil, fmt.Errorf("holding rate cannot be negative, got %v", params.HoldingRate)
	}
	if params.ReviewPeriodBDays <= 0 {
		return nil, fmt.Errorf("review period must be positive, got %v", params.ReviewPeriodBDays)
	}

	zA := params.ZScoreA
	if zA == 0 {
		if params.ServiceLevelA <= 0 || params.ServiceLevelA >= 1 {
			return nil, fmt.Errorf(
				"service level A must be in (0, 1), got %v", params.ServiceLevelA,
			)
		}
		zA = NormalQuantile(params.ServiceLevelA)
	}

	zB := params.ZScoreB
	if zB == 0 {
		if params.ServiceLevelB <= 0 || params.ServiceLevelB >= 1 {
			return nil, fmt.Errorf(
				"service level B must be in (0, 1), got %v", params.ServiceLevelB,
			)
		}
		zB = NormalQuantile(params.ServiceLevelB)
	}

	return &Service{params: params, zA: zA, zB: zB}, nil
}

// ZScores returns the resolved tier A and tier B z-scores
func (s *Service) ZScores() (float64, float64) {
	return s.zA, s.zB
}

// Compute derives a policy result per classified record. Each row is
// independent: a row whose computation fails yields an AlertRowError result
// without affecting the remaining rows. With Parallelism > 1 the rows are
// computed by a worker pool into an index-addressed slice, so the output
// order and content match the sequential path exactly.
func (s *Service) Compute(records []*entities.ProductRecord) []*entities.PolicyResult {
	results := make([]*entities.PolicyResult, len(records))

	if s.params.Parallelism > 1 && len(records) > 1 {
		indexes := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < s.params.Parallelism; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range indexes {
					results[i] = s.computeRow(records[i])
				}
			}()
		}
		for i := range records {
			indexes <- i
		}
		close(indexes)
		wg.Wait()
		return results
	}

	for i, record := range records {
		results[i] = s.computeRow(record)
	}
	return results
}

// computeRow dispatches on tier. Any panic or non-finite arithmetic result
// is absorbed into an AlertRowError result for this row only.
func (s *Service) computeRow(record *entities.ProductRecord) (result *entities.PolicyResult) {
	defer func() {
		if r := recover(); r != nil {
			result = s.rowErrorResult(record)
		}
	}()

	if !inputsFinite(record) {
		return s.rowErrorResult(record)
	}

	switch record.Tier {
	case entities.TierA:
		result = s.continuousReview(record)
	case entities.TierB:
		result = s.periodicReview(record)
	default:
		result = s.minMax(record)
	}
	return result
}

// continuousReview computes the tier A (Q, ROP) policy: economic order
// quantity, lead-time safety stock, and a reorder-point stock check.
func (s *Service) continuousReview(record *entities.ProductRecord) *entities.PolicyResult {
	d := record.MeanDailyDemand
	sigma := record.DailyDemandStdDev
	leadTime := record.LeadTimeDays

	unitCost := 0.0
	if record.UnitCost != nil {
		unitCost = record.UnitCost.InexactFloat64()
	}

	annualDemand := d * daysPerYear
	holdingCost := s.params.HoldingRate * unitCost

	var orderQty float64
	if holdingCost > 0 && annualDemand > 0 {
		orderQty = math.Sqrt((2 * annualDemand * s.params.OrderingCost) / holdingCost)
	} else {
		orderQty = math.Max(1, d*30)
	}

	leadTimeDemand := d * leadTime
	sigmaLeadTime := sigma * math.Sqrt(math.Max(1, leadTime))
	safetyStock := s.zA * sigmaLeadTime
	reorderPoint := math.Ceil(leadTimeDemand + safetyStock)

	alert := entities.AlertStockUnknown
	if record.StockKnown() {
		if *record.CurrentStock <= reorderPoint {
			alert = entities.AlertOrderNow
		} else {
			alert = entities.AlertOK
		}
	}

	return &entities.PolicyResult{
		Code:         record.Code,
		Tier:         record.Tier,
		Kind:         entities.PolicyContinuousQ,
		OrderQty:     entities.Quantity(math.Round(orderQty)),
		ReorderPoint: entities.QuantityPtr(entities.Quantity(reorderPoint)),
		SafetyStock:  entities.QuantityPtr(entities.Quantity(math.Ceil(safetyStock))),
		Alert:        alert,
	}
}

// periodicReview computes the tier B order-up-to policy over the lead time
// plus review period horizon.
func (s *Service) periodicReview(record *entities.ProductRecord) *entities.PolicyResult {
	d := record.MeanDailyDemand
	sigma := record.DailyDemandStdDev
	horizon := record.LeadTimeDays + s.params.ReviewPeriodBDays

	expectedDemand := d * horizon
	sigmaHorizon := sigma * math.Sqrt(math.Max(1, horizon))
	safetyStock := s.zB * sigmaHorizon
	orderUpTo := math.Ceil(expectedDemand + safetyStock)

	result := &entities.PolicyResult{
		Code:        record.Code,
		Tier:        record.Tier,
		Kind:        entities.PolicyPeriodicP,
		OrderQty:    entities.Quantity(orderUpTo),
		SafetyStock: entities.QuantityPtr(entities.Quantity(math.Ceil(safetyStock))),
	}

	if !record.StockKnown() {
		result.Alert = entities.AlertStockUnknown
		return result
	}

	reviewQty := math.Max(0, orderUpTo-*record.CurrentStock)
	result.ReviewOrderQty = entities.QuantityPtr(entities.Quantity(reviewQty))
	if reviewQty > 0 {
		result.Alert = entities.AlertOrderAtReview
	} else {
		result.Alert = entities.AlertDoNotOrder
	}
	return result
}

// minMax computes the tier C low-priority policy. Tier C is deliberately
// exempt from the stock check.
func (s *Service) minMax(record *entities.ProductRecord) *entities.PolicyResult {
	d := record.MeanDailyDemand
	return &entities.PolicyResult{
		Code:         record.Code,
		Tier:         record.Tier,
		Kind:         entities.PolicyMinMax,
		OrderQty:     entities.Quantity(math.Max(1, d*7)),
		ReorderPoint: entities.QuantityPtr(entities.Quantity(math.Max(0, d*3))),
		Alert:        entities.AlertNotApplied,
	}
}

// rowErrorResult keeps the tier's nominal policy kind so a failed row still
// exports a well-formed record, with the error carried by the alert code
func (s *Service) rowErrorResult(record *entities.ProductRecord) *entities.PolicyResult {
	kind := entities.PolicyMinMax
	switch record.Tier {
	case entities.TierA:
		kind = entities.PolicyContinuousQ
	case entities.TierB:
		kind = entities.PolicyPeriodicP
	}
	return &entities.PolicyResult{
		Code:  record.Code,
		Tier:  record.Tier,
		Kind:  kind,
		Alert: entities.AlertRowError,
	}
}

// inputsFinite rejects rows whose numeric inputs are NaN or infinite before
// they reach the formulas and get silently truncated to integer quantities
func inputsFinite(record *entities.ProductRecord) bool {
	values := []float64{
		record.MeanDailyDemand, record.DailyDemandStdDev, record.LeadTimeDays,
	}
	if record.CurrentStock != nil {
		values = append(values, *record.CurrentStock)
	}
	if record.UnitCost != nil {
		values = append(values, record.UnitCost.InexactFloat64())
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
