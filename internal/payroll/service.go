package payroll

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/felixonline247/opolo-cbt-app/internal"
	"github.com/felixonline247/opolo-cbt-app/internal/core/events"
	"github.com/felixonline247/opolo-cbt-app/internal/permission"
	"github.com/felixonline247/opolo-cbt-app/internal/staff"
)

// StaffStore is the slice of the staff repository the orchestrator needs.
type StaffStore interface {
	GetByID(id int64) (*staff.Staff, error)
	ListActive() ([]*staff.Staff, error)
	UpdateCommission(id int64, kind string, rate decimal.Decimal) error
}

// SalesStore answers "which gross amounts are attributed to this staff in
// this window". Attribution is by immutable staff id, fixed at sale creation.
type SalesStore interface {
	GrossAmountsForStaff(staffID int64, from, to time.Time) ([]decimal.Decimal, error)
}

// SettingsStore provides the process-wide commission rate used when a staff
// member's own rate is zero.
type SettingsStore interface {
	GlobalCommissionRate() (decimal.Decimal, error)
}

// CompensationRow is one staff member's computed pay for a period, annotated
// with settlement state from the ledger.
type CompensationRow struct {
	StaffID   int64  `json:"staff_id"`
	StaffName string `json:"staff_name"`
	Period    string `json:"period"`
	Compensation
	BaseSalary decimal.Decimal `json:"base_salary"`
	Settled    bool            `json:"settled"`
}

// Service composes the calculator, the ledger and the permission gate into
// the user-facing payroll operations. It is the only component that writes
// payout state.
type Service struct {
	staffStore   StaffStore
	salesStore   SalesStore
	settings     SettingsStore
	ledger       Ledger
	bus          *events.EventBus
	businessName string
	logger       *slog.Logger
}

func NewService(staffStore StaffStore, salesStore SalesStore, settings SettingsStore, ledger Ledger, bus *events.EventBus, businessName string, logger *slog.Logger) *Service {
	return &Service{
		staffStore:   staffStore,
		salesStore:   salesStore,
		settings:     settings,
		ledger:       ledger,
		bus:          bus,
		businessName: businessName,
		logger:       logger,
	}
}

// ListPeriodCompensation computes every active staff member's pay for the
// period and annotates each row with its settlement state.
func (s *Service) ListPeriodCompensation(period Period, perms permission.Set) ([]CompensationRow, error) {
	if !perms.Has(permission.ViewPayroll) {
		s.logger.Warn("payroll listing denied", "period", period.Label(), "permissions", perms.Strings())
		return nil, internal.ErrForbidden
	}
	return s.listPeriodRows(period)
}

func (s *Service) listPeriodRows(period Period) ([]CompensationRow, error) {
	members, err := s.staffStore.ListActive()
	if err != nil {
		s.logger.Error("failed to list staff", "error", err)
		return nil, err
	}

	globalRate, err := s.settings.GlobalCommissionRate()
	if err != nil {
		s.logger.Error("failed to load global commission rate", "error", err)
		return nil, err
	}

	rows := make([]CompensationRow, 0, len(members))
	for _, member := range members {
		row, err := s.compensationFor(member, period, globalRate)
		if err != nil {
			return nil, err
		}
		rows = append(rows, *row)
	}

	return rows, nil
}

// Disburse records a payout for one staff member and period. The amount is
// always recomputed server-side; a client-supplied figure is never trusted.
// A second disbursal for the same pair fails with ErrDuplicatePayout, backed
// by the ledger's uniqueness constraint, so retries after transient failures
// cannot double-pay.
func (s *Service) Disburse(staffID int64, period Period, perms permission.Set) (*Payout, error) {
	if !perms.Has(permission.ProcessPayouts) {
		s.logger.Warn("disbursal denied: insufficient permissions", "staff_id", staffID, "period", period.Label())
		return nil, internal.ErrForbidden
	}

	if period.IsZero() {
		return nil, internal.NewValidationError("period is required", internal.ErrCodeInvalidPeriod)
	}

	member, err := s.staffStore.GetByID(staffID)
	if err != nil {
		if errors.Is(err, internal.ErrStaffNotFound) {
			s.logger.Warn("staff not found for disbursal", "staff_id", staffID)
			return nil, internal.ErrStaffNotFound
		}
		s.logger.Error("failed to load staff for disbursal", "error", err, "staff_id", staffID)
		return nil, err
	}

	globalRate, err := s.settings.GlobalCommissionRate()
	if err != nil {
		s.logger.Error("failed to load global commission rate", "error", err)
		return nil, err
	}

	row, err := s.compensationFor(member, period, globalRate)
	if err != nil {
		return nil, err
	}

	payout := &Payout{
		StaffID:   member.ID,
		Period:    period.Label(),
		Amount:    row.TotalDue,
		Reference: uuid.NewString(),
	}

	if err := s.ledger.RecordPayout(payout); err != nil {
		s.logger.Warn("payout not recorded", "error", err, "staff_id", staffID, "period", period.Label())
		return nil, err
	}

	s.logger.Info("payout recorded",
		"payout_id", payout.ID,
		"staff_id", member.ID,
		"period", payout.Period,
		"amount", payout.Amount,
		"strategy", row.StrategyLabel)

	if s.bus != nil {
		_ = s.bus.Publish(context.Background(), events.NewPayoutRecordedEvent(payout.ID, member.ID, payout.Period, payout.Amount.String()))
	}

	return payout, nil
}

// ConfigureStrategy updates one staff member's commission configuration.
func (s *Service) ConfigureStrategy(staffID int64, strategy Strategy, perms permission.Set) error {
	if !perms.Has(permission.ManageStaff) {
		s.logger.Warn("strategy change denied: insufficient permissions", "staff_id", staffID)
		return internal.ErrForbidden
	}

	if err := strategy.Validate(); err != nil {
		return err
	}

	if _, err := s.staffStore.GetByID(staffID); err != nil {
		if errors.Is(err, internal.ErrStaffNotFound) {
			return internal.ErrStaffNotFound
		}
		s.logger.Error("failed to load staff for strategy change", "error", err, "staff_id", staffID)
		return err
	}

	if err := s.staffStore.UpdateCommission(staffID, strategy.Kind, strategy.Rate); err != nil {
		s.logger.Error("failed to update commission strategy", "error", err, "staff_id", staffID)
		return err
	}

	s.logger.Info("commission strategy updated", "staff_id", staffID, "kind", strategy.Kind, "rate", strategy.Rate)

	if s.bus != nil {
		_ = s.bus.Publish(context.Background(), events.NewStrategyChangedEvent(staffID, strategy.Kind, strategy.Rate.String()))
	}

	return nil
}

// PayoutHistory lists the recorded payouts for one staff member.
func (s *Service) PayoutHistory(staffID int64, perms permission.Set) ([]*Payout, error) {
	if !perms.Has(permission.ViewPayroll) {
		return nil, internal.ErrForbidden
	}
	return s.ledger.ListByStaff(staffID)
}

func (s *Service) compensationFor(member *staff.Staff, period Period, globalRate decimal.Decimal) (*CompensationRow, error) {
	from, to := period.Bounds()
	amounts, err := s.salesStore.GrossAmountsForStaff(member.ID, from, to)
	if err != nil {
		s.logger.Error("failed to load attributed sales", "error", err, "staff_id", member.ID, "period", period.Label())
		return nil, err
	}

	comp, err := Calculate(member.BaseSalary, Strategy{Kind: member.CommissionKind, Rate: member.CommissionRate}, globalRate, amounts)
	if err != nil {
		return nil, err
	}

	settled, err := s.ledger.IsSettled(member.ID, period.Label())
	if err != nil {
		s.logger.Error("failed to check settlement", "error", err, "staff_id", member.ID, "period", period.Label())
		return nil, err
	}

	return &CompensationRow{
		StaffID:      member.ID,
		StaffName:    member.Name,
		Period:       period.Label(),
		Compensation: comp,
		BaseSalary:   member.BaseSalary,
		Settled:      settled,
	}, nil
}
