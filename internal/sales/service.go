package sales

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/felixonline247/opolo-cbt-app/internal"
	"github.com/felixonline247/opolo-cbt-app/internal/payroll"
	"github.com/felixonline247/opolo-cbt-app/internal/permission"
)

// ListFilter narrows a sales listing. Zero values mean "no constraint".
type ListFilter struct {
	StaffID int64
	From    time.Time
	To      time.Time
	Limit   int
	Offset  int
}

type RepositoryAPI interface {
	Create(sale *Sale) error
	GetByID(id int64) (*Sale, error)
	Update(sale *Sale) error
	Delete(id int64) error
	List(filter ListFilter) ([]*Sale, error)
	GrossAmountsForStaff(staffID int64, from, to time.Time) ([]decimal.Decimal, error)
}

// StaffDirectory verifies that an attribution target exists.
type StaffDirectory interface {
	Exists(staffID int64) (bool, error)
}

// StaffPerformance aggregates one staff member's sales over a period.
type StaffPerformance struct {
	StaffID    int64           `json:"staff_id"`
	SalesCount int             `json:"sales_count"`
	Volume     decimal.Decimal `json:"volume"`
	NetRevenue decimal.Decimal `json:"net_revenue"`
}

type Service struct {
	repo   RepositoryAPI
	staff  StaffDirectory
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, staffDir StaffDirectory, logger *slog.Logger) *Service {
	return &Service{repo: repo, staff: staffDir, logger: logger}
}

// CreateSale records a sale attributed to sale.StaffID, or to the creator
// when the payload names nobody.
func (s *Service) CreateSale(dto *CreateSaleDTO, creatorID int64, perms permission.Set) (*Sale, error) {
	if !perms.Has(permission.CreateSales) {
		return nil, internal.ErrForbidden
	}

	sale, err := dto.Validate()
	if err != nil {
		return nil, err
	}

	if sale.StaffID == 0 {
		sale.StaffID = creatorID
	}

	exists, err := s.staff.Exists(sale.StaffID)
	if err != nil {
		s.logger.Error("failed to verify attribution target", "error", err, "staff_id", sale.StaffID)
		return nil, err
	}
	if !exists {
		return nil, internal.ErrStaffNotFound
	}

	if err := s.repo.Create(sale); err != nil {
		s.logger.Error("failed to create sale", "error", err)
		return nil, err
	}

	s.logger.Info("sale recorded",
		"sale_id", sale.ID,
		"staff_id", sale.StaffID,
		"amount", sale.Amount,
		"service", sale.Service)

	return sale, nil
}

func (s *Service) GetSale(id int64, perms permission.Set) (*Sale, error) {
	if !perms.Has(permission.ViewSales) {
		return nil, internal.ErrForbidden
	}
	return s.repo.GetByID(id)
}

func (s *Service) ListSales(filter ListFilter, perms permission.Set) ([]*Sale, error) {
	if !perms.Has(permission.ViewSales) {
		return nil, internal.ErrForbidden
	}

	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	return s.repo.List(filter)
}

// UpdateSale edits the mutable fields of a sale. Attribution never changes
// here; a mistyped sale is deleted and re-entered instead.
func (s *Service) UpdateSale(id int64, dto *UpdateSaleDTO, perms permission.Set) (*Sale, error) {
	if !perms.Has(permission.EditSales) {
		return nil, internal.ErrForbidden
	}

	sale, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := dto.Apply(sale); err != nil {
		return nil, err
	}

	if err := s.repo.Update(sale); err != nil {
		s.logger.Error("failed to update sale", "error", err, "sale_id", id)
		return nil, err
	}

	return sale, nil
}

func (s *Service) DeleteSale(id int64, perms permission.Set) error {
	if !perms.Has(permission.DeleteSales) {
		return internal.ErrForbidden
	}

	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete sale", "error", err, "sale_id", id)
		return err
	}

	s.logger.Info("sale deleted", "sale_id", id)
	return nil
}

// PerformanceSummary aggregates per-staff sales over a period.
func (s *Service) PerformanceSummary(period payroll.Period, perms permission.Set) ([]StaffPerformance, error) {
	if !perms.Has(permission.ViewReports) {
		return nil, internal.ErrForbidden
	}

	from, to := period.Bounds()
	allSales, err := s.repo.List(ListFilter{From: from, To: to, Limit: -1})
	if err != nil {
		s.logger.Error("failed to list sales for summary", "error", err, "period", period.Label())
		return nil, err
	}

	byStaff := make(map[int64]*StaffPerformance)
	order := make([]int64, 0)
	for _, sale := range allSales {
		perf, ok := byStaff[sale.StaffID]
		if !ok {
			perf = &StaffPerformance{StaffID: sale.StaffID}
			byStaff[sale.StaffID] = perf
			order = append(order, sale.StaffID)
		}
		perf.SalesCount++
		perf.Volume = perf.Volume.Add(sale.Amount)
		perf.NetRevenue = perf.NetRevenue.Add(sale.Net())
	}

	out := make([]StaffPerformance, 0, len(order))
	for _, staffID := range order {
		out = append(out, *byStaff[staffID])
	}
	return out, nil
}

// GrossAmountsForStaff feeds the payroll calculator. No permission gate: the
// payroll service applies its own before calling.
func (s *Service) GrossAmountsForStaff(staffID int64, from, to time.Time) ([]decimal.Decimal, error) {
	return s.repo.GrossAmountsForStaff(staffID, from, to)
}
