package entities

// PolicyKind represents the replenishment policy family applied to a tier
type PolicyKind int

const (
	PolicyContinuousQ PolicyKind = iota
	PolicyPeriodicP
	PolicyMinMax
)

// MarshalJSON serializes the policy kind as its wire label
func (k PolicyKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// String method for PolicyKind enum
func (k PolicyKind) String() string {
	switch k {
	case PolicyContinuousQ:
		return "continuous_q"
	case PolicyPeriodicP:
		return "periodic_p"
	case PolicyMinMax:
		return "min_max"
	default:
		return "unknown"
	}
}

// AlertCode classifies the action suggested for a product at the current
// review. The codes are the exhaustive row-level outcome taxonomy: row
// computation failures surface as AlertRowError instead of aborting the run.
type AlertCode int

const (
	AlertOK AlertCode = iota
	AlertOrderNow
	AlertStockUnknown
	AlertOrderAtReview
	AlertDoNotOrder
	AlertNotApplied
	AlertRowError
)

// MarshalJSON serializes the alert as its wire code
func (a AlertCode) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// String method for AlertCode enum
func (a AlertCode) String() string {
	switch a {
	case AlertOK:
		return "ok"
	case AlertOrderNow:
		return "order_now"
	case AlertStockUnknown:
		return "stock_unknown"
	case AlertOrderAtReview:
		return "order_at_review"
	case AlertDoNotOrder:
		return "do_not_order"
	case AlertNotApplied:
		return "not_applied_tier_c"
	case AlertRowError:
		return "error"
	default:
		return "unknown"
	}
}

// PolicyResult carries the inventory-control parameters derived for one
// product. Created fresh on every run and never mutated afterwards.
// OrderQty holds the EOQ lot size for tier A, the order-up-to level S for
// tier B, and the suggested reorder quantity for tier C. Fields that do not
// apply to a tier stay nil.
type PolicyResult struct {
	Code           ProductCode `json:"code"`
	Tier           Tier        `json:"tier"`
	Kind           PolicyKind  `json:"policy_kind"`
	OrderQty       Quantity    `json:"order_qty_or_review_target"`
	ReorderPoint   *Quantity   `json:"reorder_point,omitempty"`    // tiers A and C
	SafetyStock    *Quantity   `json:"safety_stock,omitempty"`     // tiers A and B
	ReviewOrderQty *Quantity   `json:"review_order_quantity,omitempty"` // tier B, known stock only
	Alert          AlertCode   `json:"alert_code"`
}

// QuantityPtr is a helper for the optional PolicyResult fields
func QuantityPtr(q Quantity) *Quantity {
	return &q
}
