package postgres

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/felixonline247/opolo-cbt-app/internal"
	"github.com/felixonline247/opolo-cbt-app/internal/sales"
)

// SaleRepository implements the sales.RepositoryAPI interface using GORM
type SaleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) sales.RepositoryAPI {
	return &SaleRepository{db: db}
}

func (r *SaleRepository) Create(sale *sales.Sale) error {
	return r.db.Create(sale).Error
}

func (r *SaleRepository) GetByID(id int64) (*sales.Sale, error) {
	var sale sales.Sale
	err := r.db.Where("id = ?", id).First(&sale).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.NewNotFoundError("sale not found", internal.ErrCodeSaleNotFound)
		}
		return nil, err
	}
	return &sale, nil
}

func (r *SaleRepository) Update(sale *sales.Sale) error {
	sale.UpdatedAt = time.Now()
	return r.db.Save(sale).Error
}

func (r *SaleRepository) Delete(id int64) error {
	return r.db.Delete(&sales.Sale{}, id).Error
}

// List applies the filter's constraints. A non-positive limit means no
// pagination, which the summary path relies on.
func (r *SaleRepository) List(filter sales.ListFilter) ([]*sales.Sale, error) {
	q := r.db.Model(&sales.Sale{})

	if filter.StaffID != 0 {
		q = q.Where("staff_id = ?", filter.StaffID)
	}
	if !filter.From.IsZero() {
		q = q.Where("sold_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("sold_at < ?", filter.To)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}

	var out []*sales.Sale
	err := q.Order("sold_at DESC").Find(&out).Error
	return out, err
}

// GrossAmountsForStaff returns the gross amount of every sale attributed to
// the staff member inside the half-open window.
func (r *SaleRepository) GrossAmountsForStaff(staffID int64, from, to time.Time) ([]decimal.Decimal, error) {
	var rows []sales.Sale
	err := r.db.Select("amount").
		Where("staff_id = ? AND sold_at >= ? AND sold_at < ?", staffID, from, to).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	amounts := make([]decimal.Decimal, len(rows))
	for i, row := range rows {
		amounts[i] = row.Amount
	}
	return amounts, nil
}
