package payroll

import (
	"fmt"
	"time"

	"github.com/felixonline247/opolo-cbt-app/internal"
)

// Period identifies one payroll calendar month. The label is always the
// locale-independent "YYYY-MM" form; free-text month names are never used as
// bucket keys.
type Period struct {
	Year  int
	Month time.Month
}

func NewPeriod(year int, month time.Month) Period {
	return Period{Year: year, Month: month}
}

func CurrentPeriod(now time.Time) Period {
	return Period{Year: now.Year(), Month: now.Month()}
}

// ParsePeriod parses a "YYYY-MM" label.
func ParsePeriod(label string) (Period, error) {
	t, err := time.Parse("2006-01", label)
	if err != nil {
		return Period{}, internal.NewValidationError(
			fmt.Sprintf("invalid period %q: expected YYYY-MM", label), internal.ErrCodeInvalidPeriod)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

func (p Period) Label() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Bounds returns the half-open UTC interval [start, end) covering the whole
// month, so timestamp filters include both calendar bounds.
func (p Period) Bounds() (start, end time.Time) {
	start = time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0)
	return start, end
}

func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}
