package staff

import (
	"time"

	"github.com/shopspring/decimal"
)

// Staff is an employee record and also the login identity for the console.
// Records are soft-managed: deactivated by an admin, never physically
// destroyed in normal operation.
type Staff struct {
	ID             int64           `json:"id" gorm:"primaryKey"`
	Name           string          `json:"name" gorm:"not null"`
	Email          string          `json:"email" gorm:"not null;uniqueIndex"`
	PasswordHash   string          `json:"-" gorm:"column:password_hash;not null"`
	BaseSalary     decimal.Decimal `json:"base_salary" gorm:"column:base_salary;type:numeric(14,2);not null"`
	CommissionKind string          `json:"commission_kind" gorm:"column:commission_kind;default:percentage"`
	CommissionRate decimal.Decimal `json:"commission_rate" gorm:"column:commission_rate;type:numeric(7,2);default:0"`
	RoleID         *int64          `json:"role_id,omitempty" gorm:"column:role_id"`
	IsActive       bool            `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt      time.Time       `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"column:updated_at"`
}

func (Staff) TableName() string {
	return "staff"
}
