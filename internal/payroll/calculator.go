package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/felixonline247/opolo-cbt-app/internal"
)

const (
	StrategyKindPercentage = "percentage"
	StrategyKindFixed      = "fixed"
)

// Strategy is a staff member's commission configuration. A zero rate means
// "defer to the global rate" regardless of kind.
type Strategy struct {
	Kind string          `json:"kind"`
	Rate decimal.Decimal `json:"rate"`
}

func (s Strategy) Validate() error {
	if s.Kind != StrategyKindPercentage && s.Kind != StrategyKindFixed {
		return internal.NewValidationError("commission kind must be percentage or fixed", internal.ErrCodeInvalidStrategy)
	}
	if s.Rate.IsNegative() {
		return internal.NewValidationError("commission rate cannot be negative", internal.ErrCodeInvalidRate)
	}
	return nil
}

// Strategy labels describe which commission branch fired, for audit display.
const (
	LabelFixedPerSale    = "fixed per sale"
	LabelPercentOfVolume = "percentage of volume"
	LabelGlobalFallback  = "global rate fallback"
)

// Compensation is what one staff member is owed for one period.
type Compensation struct {
	SalesCount       int             `json:"sales_count"`
	SalesVolume      decimal.Decimal `json:"sales_volume"`
	EarnedCommission decimal.Decimal `json:"earned_commission"`
	TotalDue         decimal.Decimal `json:"total_due"`
	StrategyLabel    string          `json:"strategy_label"`
}

var oneHundred = decimal.NewFromInt(100)

// Calculate computes earned commission and total due from validated inputs.
// Deterministic and side-effect free: the same inputs always produce the
// same result. Strategy precedence is fixed-with-rate, then
// percentage-with-rate, then the global rate fallback.
func Calculate(baseSalary decimal.Decimal, strategy Strategy, globalRate decimal.Decimal, saleAmounts []decimal.Decimal) (Compensation, error) {
	if baseSalary.IsNegative() {
		return Compensation{}, internal.NewValidationError("base salary cannot be negative", internal.ErrCodeInvalidSalary)
	}
	if strategy.Rate.IsNegative() {
		return Compensation{}, internal.NewValidationError("commission rate cannot be negative", internal.ErrCodeInvalidRate)
	}
	if globalRate.IsNegative() {
		return Compensation{}, internal.NewValidationError("global commission rate cannot be negative", internal.ErrCodeInvalidRate)
	}

	count := len(saleAmounts)
	volume := decimal.Zero
	for _, amount := range saleAmounts {
		volume = volume.Add(amount)
	}

	var commission decimal.Decimal
	var label string
	switch {
	case strategy.Kind == StrategyKindFixed && strategy.Rate.IsPositive():
		commission = strategy.Rate.Mul(decimal.NewFromInt(int64(count)))
		label = LabelFixedPerSale
	case strategy.Kind == StrategyKindPercentage && strategy.Rate.IsPositive():
		commission = volume.Mul(strategy.Rate).Div(oneHundred)
		label = LabelPercentOfVolume
	default:
		commission = volume.Mul(globalRate).Div(oneHundred)
		label = LabelGlobalFallback
	}

	return Compensation{
		SalesCount:       count,
		SalesVolume:      volume,
		EarnedCommission: commission,
		TotalDue:         baseSalary.Add(commission),
		StrategyLabel:    label,
	}, nil
}
