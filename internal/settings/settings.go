package settings

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings is the single-row business configuration. The global commission
// rate is the payroll fallback for staff without a personal rate.
type Settings struct {
	ID                   int64           `json:"id" gorm:"primaryKey"`
	BusinessName         string          `json:"business_name" gorm:"column:business_name;not null"`
	GlobalCommissionRate decimal.Decimal `json:"global_commission_rate" gorm:"column:global_commission_rate;type:numeric(7,2);not null;default:0"`
	UpdatedAt            time.Time       `json:"updated_at" gorm:"column:updated_at"`
}

func (Settings) TableName() string {
	return "settings"
}
