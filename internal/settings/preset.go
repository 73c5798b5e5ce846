package settings

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/felixonline247/opolo-cbt-app/internal"
)

// ServicePreset is a catalog entry the sale form offers: the standard price
// of a service and the institution's share of it, which prefills the
// partner-share field.
type ServicePreset struct {
	ID               int64           `json:"id" gorm:"primaryKey"`
	ServiceName      string          `json:"service_name" gorm:"column:service_name;not null;uniqueIndex:idx_service_presets_name"`
	TotalAmount      decimal.Decimal `json:"total_amount" gorm:"column:total_amount;type:numeric(14,2);not null"`
	InstitutionSplit decimal.Decimal `json:"institution_split" gorm:"column:institution_split;type:numeric(14,2);not null;default:0"`
	CreatedAt        time.Time       `json:"created_at" gorm:"column:created_at"`
}

func (ServicePreset) TableName() string {
	return "service_presets"
}

type CreatePresetDTO struct {
	ServiceName      string `json:"service_name"`
	TotalAmount      string `json:"total_amount"`
	InstitutionSplit string `json:"institution_split"`
}

func (d *CreatePresetDTO) Validate() (*ServicePreset, error) {
	name := strings.TrimSpace(d.ServiceName)
	if name == "" {
		return nil, internal.NewValidationError("service name is required", internal.ErrCodeValidationFailed)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(d.TotalAmount))
	if err != nil || !amount.IsPositive() {
		return nil, internal.NewValidationError("total amount must be a positive decimal", internal.ErrCodeInvalidAmount)
	}

	split := decimal.Zero
	if strings.TrimSpace(d.InstitutionSplit) != "" {
		split, err = decimal.NewFromString(strings.TrimSpace(d.InstitutionSplit))
		if err != nil || split.IsNegative() {
			return nil, internal.NewValidationError("institution split must be a non-negative decimal", internal.ErrCodeInvalidAmount)
		}
	}
	if split.GreaterThan(amount) {
		return nil, internal.NewValidationError("institution split cannot exceed the total amount", internal.ErrCodeInvalidAmount)
	}

	return &ServicePreset{
		ServiceName:      name,
		TotalAmount:      amount,
		InstitutionSplit: split,
	}, nil
}
