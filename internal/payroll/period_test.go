package payroll_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/felixonline247/opolo-cbt-app/internal"
	"github.com/felixonline247/opolo-cbt-app/internal/payroll"
)

var _ = Describe("Period", func() {
	It("formats labels as YYYY-MM with zero padding", func() {
		Expect(payroll.NewPeriod(2026, time.March).Label()).To(Equal("2026-03"))
		Expect(payroll.NewPeriod(2026, time.December).Label()).To(Equal("2026-12"))
	})

	It("round-trips through ParsePeriod", func() {
		p, err := payroll.ParsePeriod("2026-08")
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Year).To(Equal(2026))
		Expect(p.Month).To(Equal(time.August))
		Expect(p.Label()).To(Equal("2026-08"))
	})

	It("rejects labels that are not YYYY-MM", func() {
		for _, label := range []string{"August 2026", "2026/08", "2026-13", "2026-8", ""} {
			_, err := payroll.ParsePeriod(label)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue(), "label %q", label)
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidPeriod))
		}
	})

	It("covers the whole month with half-open bounds", func() {
		p := payroll.NewPeriod(2026, time.February)
		start, end := p.Bounds()
		Expect(start).To(Equal(time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)))
		Expect(end).To(Equal(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)))

		lastInstant := end.Add(-time.Nanosecond)
		Expect(lastInstant.Month()).To(Equal(time.February))
	})

	It("rolls December into the next year", func() {
		_, end := payroll.NewPeriod(2026, time.December).Bounds()
		Expect(end).To(Equal(time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC)))
	})
})
