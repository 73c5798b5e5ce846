package postgres

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/felixonline247/opolo-cbt-app/internal"
	"github.com/felixonline247/opolo-cbt-app/internal/payroll"
)

func TestPayoutRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "PayoutRepository Suite")
}

var _ = Describe("PayoutRepository", func() {
	var (
		db     *gorm.DB
		ledger payroll.Ledger
	)

	mustDecimal := func(s string) decimal.Decimal {
		v, err := decimal.NewFromString(s)
		Expect(err).NotTo(HaveOccurred())
		return v
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&payroll.Payout{})
		Expect(err).NotTo(HaveOccurred())

		ledger = NewPayoutRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("RecordPayout", func() {
		It("persists a payout and assigns an ID", func() {
			p := &payroll.Payout{
				StaffID:   1,
				Period:    "2026-08",
				Amount:    mustDecimal("21000"),
				Reference: "ref-1",
			}

			Expect(ledger.RecordPayout(p)).To(Succeed())
			Expect(p.ID).To(BeNumerically(">", 0))
		})

		It("rejects a second payout for the same staff and period at the database", func() {
			first := &payroll.Payout{StaffID: 1, Period: "2026-08", Amount: mustDecimal("21000"), Reference: "ref-1"}
			Expect(ledger.RecordPayout(first)).To(Succeed())

			second := &payroll.Payout{StaffID: 1, Period: "2026-08", Amount: mustDecimal("21000"), Reference: "ref-2"}
			err := ledger.RecordPayout(second)
			Expect(err).To(Equal(internal.ErrDuplicatePayout))

			var count int64
			Expect(db.Model(&payroll.Payout{}).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(1)))
		})

		It("admits exactly one of two concurrent payouts for the same staff and period", func() {
			sqlDB, err := db.DB()
			Expect(err).NotTo(HaveOccurred())
			// Serialize on one connection so both inserts hit the same
			// in-memory database.
			sqlDB.SetMaxOpenConns(1)

			results := make(chan error, 2)
			record := func(reference string) {
				defer GinkgoRecover()
				results <- ledger.RecordPayout(&payroll.Payout{
					StaffID:   1,
					Period:    "2026-08",
					Amount:    mustDecimal("21000"),
					Reference: reference,
				})
			}
			go record("ref-a")
			go record("ref-b")

			outcomes := []error{<-results, <-results}
			Expect(outcomes).To(ContainElement(BeNil()))
			Expect(outcomes).To(ContainElement(internal.ErrDuplicatePayout))

			var count int64
			Expect(db.Model(&payroll.Payout{}).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(1)))
		})

		It("allows the same period for different staff", func() {
			Expect(ledger.RecordPayout(&payroll.Payout{StaffID: 1, Period: "2026-08", Amount: mustDecimal("100"), Reference: "a"})).To(Succeed())
			Expect(ledger.RecordPayout(&payroll.Payout{StaffID: 2, Period: "2026-08", Amount: mustDecimal("100"), Reference: "b"})).To(Succeed())
		})

		It("allows different periods for the same staff", func() {
			Expect(ledger.RecordPayout(&payroll.Payout{StaffID: 1, Period: "2026-08", Amount: mustDecimal("100"), Reference: "a"})).To(Succeed())
			Expect(ledger.RecordPayout(&payroll.Payout{StaffID: 1, Period: "2026-09", Amount: mustDecimal("100"), Reference: "b"})).To(Succeed())
		})
	})

	Describe("IsSettled", func() {
		It("is false before and true after a payout", func() {
			settled, err := ledger.IsSettled(1, "2026-08")
			Expect(err).NotTo(HaveOccurred())
			Expect(settled).To(BeFalse())

			Expect(ledger.RecordPayout(&payroll.Payout{StaffID: 1, Period: "2026-08", Amount: mustDecimal("100"), Reference: "a"})).To(Succeed())

			settled, err = ledger.IsSettled(1, "2026-08")
			Expect(err).NotTo(HaveOccurred())
			Expect(settled).To(BeTrue())
		})
	})

	Describe("listing", func() {
		BeforeEach(func() {
			Expect(ledger.RecordPayout(&payroll.Payout{StaffID: 1, Period: "2026-07", Amount: mustDecimal("100"), Reference: "a"})).To(Succeed())
			Expect(ledger.RecordPayout(&payroll.Payout{StaffID: 1, Period: "2026-08", Amount: mustDecimal("200"), Reference: "b"})).To(Succeed())
			Expect(ledger.RecordPayout(&payroll.Payout{StaffID: 2, Period: "2026-08", Amount: mustDecimal("300"), Reference: "c"})).To(Succeed())
		})

		It("lists a staff member's payouts newest period first", func() {
			payouts, err := ledger.ListByStaff(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(payouts).To(HaveLen(2))
			Expect(payouts[0].Period).To(Equal("2026-08"))
			Expect(payouts[1].Period).To(Equal("2026-07"))
		})

		It("lists every payout in a period", func() {
			payouts, err := ledger.ListByPeriod("2026-08")
			Expect(err).NotTo(HaveOccurred())
			Expect(payouts).To(HaveLen(2))
		})
	})
})
