package payroll_test

import (
	"errors"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/felixonline247/opolo-cbt-app/internal"
	"github.com/felixonline247/opolo-cbt-app/internal/payroll"
	"github.com/felixonline247/opolo-cbt-app/internal/permission"
	"github.com/felixonline247/opolo-cbt-app/internal/staff"
)

type mockStaffStore struct {
	members   map[int64]*staff.Staff
	getError  error
	listError error
}

func newMockStaffStore() *mockStaffStore {
	return &mockStaffStore{members: make(map[int64]*staff.Staff)}
}

func (m *mockStaffStore) GetByID(id int64) (*staff.Staff, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	member, ok := m.members[id]
	if !ok {
		return nil, internal.ErrStaffNotFound
	}
	return member, nil
}

func (m *mockStaffStore) ListActive() ([]*staff.Staff, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	var out []*staff.Staff
	for _, member := range m.members {
		if member.IsActive {
			out = append(out, member)
		}
	}
	return out, nil
}

func (m *mockStaffStore) UpdateCommission(id int64, kind string, rate decimal.Decimal) error {
	member, ok := m.members[id]
	if !ok {
		return internal.ErrStaffNotFound
	}
	member.CommissionKind = kind
	member.CommissionRate = rate
	return nil
}

type mockSalesStore struct {
	amountsByStaff map[int64][]decimal.Decimal
	err            error
}

func (m *mockSalesStore) GrossAmountsForStaff(staffID int64, from, to time.Time) ([]decimal.Decimal, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.amountsByStaff[staffID], nil
}

type mockSettingsStore struct {
	rate decimal.Decimal
	err  error
}

func (m *mockSettingsStore) GlobalCommissionRate() (decimal.Decimal, error) {
	if m.err != nil {
		return decimal.Zero, m.err
	}
	return m.rate, nil
}

type mockLedger struct {
	payouts     []*payroll.Payout
	recordError error
	nextID      int64
}

func newMockLedger() *mockLedger {
	return &mockLedger{nextID: 1}
}

func (m *mockLedger) IsSettled(staffID int64, period string) (bool, error) {
	for _, p := range m.payouts {
		if p.StaffID == staffID && p.Period == period {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLedger) RecordPayout(p *payroll.Payout) error {
	if m.recordError != nil {
		return m.recordError
	}
	if settled, _ := m.IsSettled(p.StaffID, p.Period); settled {
		return internal.ErrDuplicatePayout
	}
	p.ID = m.nextID
	m.nextID++
	p.CreatedAt = time.Now()
	m.payouts = append(m.payouts, p)
	return nil
}

func (m *mockLedger) ListByStaff(staffID int64) ([]*payroll.Payout, error) {
	var out []*payroll.Payout
	for _, p := range m.payouts {
		if p.StaffID == staffID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockLedger) ListByPeriod(period string) ([]*payroll.Payout, error) {
	var out []*payroll.Payout
	for _, p := range m.payouts {
		if p.Period == period {
			out = append(out, p)
		}
	}
	return out, nil
}

var _ = Describe("Payroll Service", func() {
	var (
		staffStore *mockStaffStore
		salesStore *mockSalesStore
		settings   *mockSettingsStore
		ledger     *mockLedger
		service    *payroll.Service

		period      payroll.Period
		payrollView permission.Set
		payoutPerms permission.Set
		managePerms permission.Set
		noPerms     permission.Set
	)

	BeforeEach(func() {
		staffStore = newMockStaffStore()
		salesStore = &mockSalesStore{amountsByStaff: make(map[int64][]decimal.Decimal)}
		settings = &mockSettingsStore{rate: d("5")}
		ledger = newMockLedger()

		testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = payroll.NewService(staffStore, salesStore, settings, ledger, nil, "Opolo CBT Resort", testLogger)

		period = payroll.NewPeriod(2026, time.August)
		payrollView = permission.Parse([]string{"view_payroll"})
		payoutPerms = permission.Parse([]string{"process_payouts"})
		managePerms = permission.Parse([]string{"manage_staff"})
		noPerms = permission.Empty()

		staffStore.members[1] = &staff.Staff{
			ID:             1,
			Name:           "Ada",
			BaseSalary:     d("20000"),
			CommissionKind: payroll.StrategyKindPercentage,
			CommissionRate: decimal.Zero,
			IsActive:       true,
		}
		salesStore.amountsByStaff[1] = amounts("10000", "10000")
	})

	Describe("ListPeriodCompensation", func() {
		It("computes base plus commission for every active staff member", func() {
			rows, err := service.ListPeriodCompensation(period, payrollView)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].StaffID).To(Equal(int64(1)))
			Expect(rows[0].TotalDue.Equal(d("21000"))).To(BeTrue())
			Expect(rows[0].StrategyLabel).To(Equal(payroll.LabelGlobalFallback))
			Expect(rows[0].Settled).To(BeFalse())
		})

		It("skips deactivated staff", func() {
			staffStore.members[2] = &staff.Staff{ID: 2, Name: "Gone", IsActive: false}
			rows, err := service.ListPeriodCompensation(period, payrollView)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
		})

		It("denies callers without view_payroll", func() {
			_, err := service.ListPeriodCompensation(period, payoutPerms)
			Expect(err).To(Equal(internal.ErrForbidden))
		})

		It("marks rows settled once a payout exists", func() {
			_, err := service.Disburse(1, period, payoutPerms)
			Expect(err).NotTo(HaveOccurred())

			rows, err := service.ListPeriodCompensation(period, payrollView)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows[0].Settled).To(BeTrue())
		})
	})

	Describe("Disburse", func() {
		It("records a server-computed payout with a reference", func() {
			payout, err := service.Disburse(1, period, payoutPerms)
			Expect(err).NotTo(HaveOccurred())
			Expect(payout.Amount.Equal(d("21000"))).To(BeTrue())
			Expect(payout.Period).To(Equal("2026-08"))
			Expect(payout.Reference).NotTo(BeEmpty())
		})

		It("refuses a second payout for the same staff and period", func() {
			_, err := service.Disburse(1, period, payoutPerms)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Disburse(1, period, payoutPerms)
			Expect(err).To(Equal(internal.ErrDuplicatePayout))
			Expect(ledger.payouts).To(HaveLen(1))
		})

		It("allows the same staff to be paid in a different period", func() {
			_, err := service.Disburse(1, period, payoutPerms)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Disburse(1, payroll.NewPeriod(2026, time.September), payoutPerms)
			Expect(err).NotTo(HaveOccurred())
			Expect(ledger.payouts).To(HaveLen(2))
		})

		It("denies callers without process_payouts", func() {
			_, err := service.Disburse(1, period, payrollView)
			Expect(err).To(Equal(internal.ErrForbidden))
			Expect(ledger.payouts).To(BeEmpty())
		})

		It("rejects a zero period", func() {
			_, err := service.Disburse(1, payroll.Period{}, payoutPerms)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidPeriod))
		})

		It("fails for unknown staff", func() {
			_, err := service.Disburse(99, period, payoutPerms)
			Expect(err).To(Equal(internal.ErrStaffNotFound))
		})

		It("surfaces staff store failures instead of reporting not-found", func() {
			staffStore.getError = errors.New("connection reset")
			_, err := service.Disburse(1, period, payoutPerms)
			Expect(err).To(MatchError("connection reset"))
			Expect(err).NotTo(Equal(internal.ErrStaffNotFound))
		})

		It("recomputes the amount at disbursal time", func() {
			salesStore.amountsByStaff[1] = amounts("50000")
			payout, err := service.Disburse(1, period, payoutPerms)
			Expect(err).NotTo(HaveOccurred())
			Expect(payout.Amount.Equal(d("22500"))).To(BeTrue())
		})

		It("propagates ledger failures", func() {
			ledger.recordError = errors.New("database down")
			_, err := service.Disburse(1, period, payoutPerms)
			Expect(err).To(MatchError("database down"))
		})
	})

	Describe("ConfigureStrategy", func() {
		It("updates the staff member's commission configuration", func() {
			err := service.ConfigureStrategy(1, payroll.Strategy{Kind: payroll.StrategyKindFixed, Rate: d("500")}, managePerms)
			Expect(err).NotTo(HaveOccurred())
			Expect(staffStore.members[1].CommissionKind).To(Equal(payroll.StrategyKindFixed))
			Expect(staffStore.members[1].CommissionRate.Equal(d("500"))).To(BeTrue())
		})

		It("changes subsequent compensation results", func() {
			err := service.ConfigureStrategy(1, payroll.Strategy{Kind: payroll.StrategyKindFixed, Rate: d("500")}, managePerms)
			Expect(err).NotTo(HaveOccurred())

			rows, err := service.ListPeriodCompensation(period, payrollView)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows[0].EarnedCommission.Equal(d("1000"))).To(BeTrue())
			Expect(rows[0].StrategyLabel).To(Equal(payroll.LabelFixedPerSale))
		})

		It("rejects an unknown strategy kind", func() {
			err := service.ConfigureStrategy(1, payroll.Strategy{Kind: "bonus", Rate: d("1")}, managePerms)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidStrategy))
		})

		It("denies callers without manage_staff", func() {
			err := service.ConfigureStrategy(1, payroll.Strategy{Kind: payroll.StrategyKindFixed, Rate: d("500")}, noPerms)
			Expect(err).To(Equal(internal.ErrForbidden))
		})

		It("surfaces staff store failures instead of reporting not-found", func() {
			staffStore.getError = errors.New("connection reset")
			err := service.ConfigureStrategy(1, payroll.Strategy{Kind: payroll.StrategyKindFixed, Rate: d("500")}, managePerms)
			Expect(err).To(MatchError("connection reset"))
			Expect(err).NotTo(Equal(internal.ErrStaffNotFound))
		})
	})

	Describe("PayoutHistory", func() {
		It("returns the staff member's recorded payouts", func() {
			_, err := service.Disburse(1, period, payoutPerms)
			Expect(err).NotTo(HaveOccurred())

			history, err := service.PayoutHistory(1, payrollView)
			Expect(err).NotTo(HaveOccurred())
			Expect(history).To(HaveLen(1))
			Expect(history[0].Period).To(Equal("2026-08"))
		})

		It("denies callers without view_payroll", func() {
			_, err := service.PayoutHistory(1, noPerms)
			Expect(err).To(Equal(internal.ErrForbidden))
		})
	})
})
