package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/felixonline247/opolo-cbt-app/internal"
	"github.com/felixonline247/opolo-cbt-app/internal/payroll"
)

// PayoutRepository implements the payroll.Ledger interface using GORM
type PayoutRepository struct {
	db *gorm.DB
}

// NewPayoutRepository creates a new payout repository
func NewPayoutRepository(db *gorm.DB) payroll.Ledger {
	return &PayoutRepository{db: db}
}

// IsSettled reports whether a payout already exists for the pair
func (r *PayoutRepository) IsSettled(staffID int64, period string) (bool, error) {
	var count int64
	err := r.db.Model(&payroll.Payout{}).
		Where("staff_id = ? AND period = ?", staffID, period).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RecordPayout inserts the payout. The unique index on (staff_id, period)
// makes the insert the only arbiter of "already paid", so two concurrent
// disbursals cannot both succeed.
func (r *PayoutRepository) RecordPayout(p *payroll.Payout) error {
	err := r.db.Create(p).Error
	if err != nil {
		if isDuplicateKey(err) {
			return internal.ErrDuplicatePayout
		}
		return err
	}
	return nil
}

// ListByStaff retrieves payouts for one staff member, newest first
func (r *PayoutRepository) ListByStaff(staffID int64) ([]*payroll.Payout, error) {
	var payouts []*payroll.Payout
	err := r.db.Where("staff_id = ?", staffID).
		Order("period DESC").
		Find(&payouts).Error
	return payouts, err
}

// ListByPeriod retrieves every payout recorded for one period
func (r *PayoutRepository) ListByPeriod(period string) ([]*payroll.Payout, error) {
	var payouts []*payroll.Payout
	err := r.db.Where("period = ?", period).
		Order("staff_id ASC").
		Find(&payouts).Error
	return payouts, err
}

// isDuplicateKey matches the unique violation as surfaced by the postgres
// driver in production and by sqlite in tests.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
