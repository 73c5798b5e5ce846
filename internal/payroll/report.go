package payroll

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/felixonline247/opolo-cbt-app/internal"
	"github.com/felixonline247/opolo-cbt-app/internal/permission"
)

const reportSheet = "Payroll"

// PeriodReport renders the period's compensation table as an XLSX workbook.
// The figures are the same rows ListPeriodCompensation returns, so the
// exported file always matches what the console shows.
func (s *Service) PeriodReport(period Period, perms permission.Set) (*excelize.File, error) {
	if !perms.Has(permission.ViewReports) {
		s.logger.Warn("payroll report denied", "period", period.Label())
		return nil, internal.ErrForbidden
	}

	// The view permission is implied here so report access needs only
	// view_reports, not both.
	rows, err := s.listPeriodRows(period)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	f.SetCellValue(reportSheet, "A1", fmt.Sprintf("%s payroll %s", s.businessName, period.Label()))

	headers := []string{"Staff ID", "Name", "Base Salary", "Sales Count", "Sales Volume", "Commission", "Total Due", "Strategy", "Settled"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(reportSheet, cell, header)
	}

	rowIndex := 3
	for _, row := range rows {
		f.SetCellValue(reportSheet, fmt.Sprintf("A%d", rowIndex), row.StaffID)
		f.SetCellValue(reportSheet, fmt.Sprintf("B%d", rowIndex), row.StaffName)
		f.SetCellValue(reportSheet, fmt.Sprintf("C%d", rowIndex), row.BaseSalary.String())
		f.SetCellValue(reportSheet, fmt.Sprintf("D%d", rowIndex), row.SalesCount)
		f.SetCellValue(reportSheet, fmt.Sprintf("E%d", rowIndex), row.SalesVolume.String())
		f.SetCellValue(reportSheet, fmt.Sprintf("F%d", rowIndex), row.EarnedCommission.String())
		f.SetCellValue(reportSheet, fmt.Sprintf("G%d", rowIndex), row.TotalDue.String())
		f.SetCellValue(reportSheet, fmt.Sprintf("H%d", rowIndex), row.StrategyLabel)
		f.SetCellValue(reportSheet, fmt.Sprintf("I%d", rowIndex), row.Settled)
		rowIndex++
	}

	return f, nil
}
