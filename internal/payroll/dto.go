package payroll

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/felixonline247/opolo-cbt-app/internal"
)

type DisburseDTO struct {
	Period string `json:"period"`
}

func (d *DisburseDTO) Validate() (Period, error) {
	if strings.TrimSpace(d.Period) == "" {
		return Period{}, internal.NewValidationError("period is required", internal.ErrCodeInvalidPeriod)
	}
	return ParsePeriod(d.Period)
}

type StrategyDTO struct {
	Kind string `json:"kind"`
	Rate string `json:"rate"`
}

func (d *StrategyDTO) Validate() (Strategy, error) {
	kind := strings.ToLower(strings.TrimSpace(d.Kind))
	if kind != StrategyKindPercentage && kind != StrategyKindFixed {
		return Strategy{}, internal.NewValidationError("kind must be percentage or fixed", internal.ErrCodeInvalidStrategy)
	}

	rate, err := decimal.NewFromString(strings.TrimSpace(d.Rate))
	if err != nil {
		return Strategy{}, internal.NewValidationError("rate must be a decimal number", internal.ErrCodeInvalidRate)
	}

	strategy := Strategy{Kind: kind, Rate: rate}
	if err := strategy.Validate(); err != nil {
		return Strategy{}, err
	}
	return strategy, nil
}
