package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payout is one disbursal for a (staff, period) pair. Rows are append-only;
// the ledger enforces at most one payout per pair through a database
// uniqueness constraint, never through a caller-side read-then-write.
type Payout struct {
	ID        int64           `json:"id" gorm:"primaryKey"`
	StaffID   int64           `json:"staff_id" gorm:"column:staff_id;not null;uniqueIndex:idx_payouts_staff_period"`
	Period    string          `json:"period" gorm:"column:period;not null;uniqueIndex:idx_payouts_staff_period"`
	Amount    decimal.Decimal `json:"amount" gorm:"column:amount;type:numeric(14,2);not null"`
	Reference string          `json:"reference" gorm:"column:reference;not null"`
	CreatedAt time.Time       `json:"created_at" gorm:"column:created_at"`
}

func (Payout) TableName() string {
	return "payouts"
}

// Ledger is the authoritative record of who has been paid for which period.
type Ledger interface {
	IsSettled(staffID int64, period string) (bool, error)
	// RecordPayout inserts atomically; a second insert for the same
	// (staff, period) pair fails with internal.ErrDuplicatePayout.
	RecordPayout(p *Payout) error
	ListByStaff(staffID int64) ([]*Payout, error)
	ListByPeriod(period string) ([]*Payout, error)
}
