package postgres

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/felixonline247/opolo-cbt-app/internal"
	"github.com/felixonline247/opolo-cbt-app/internal/staff"
)

// StaffRepository implements staff.RepositoryAPI and, through its extra
// methods, the stores the payroll and sales services depend on.
type StaffRepository struct {
	db *gorm.DB
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) Create(member *staff.Staff) error {
	return r.db.Create(member).Error
}

func (r *StaffRepository) GetByID(id int64) (*staff.Staff, error) {
	var member staff.Staff
	err := r.db.Where("id = ?", id).First(&member).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrStaffNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *StaffRepository) GetByEmail(email string) (*staff.Staff, error) {
	var member staff.Staff
	err := r.db.Where("email = ?", email).First(&member).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrStaffNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *StaffRepository) List(includeInactive bool) ([]*staff.Staff, error) {
	q := r.db.Model(&staff.Staff{})
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}

	var members []*staff.Staff
	err := q.Order("name ASC").Find(&members).Error
	return members, err
}

func (r *StaffRepository) Update(member *staff.Staff) error {
	member.UpdatedAt = time.Now()
	return r.db.Save(member).Error
}

func (r *StaffRepository) Exists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&staff.Staff{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListActive feeds the payroll run. Ordered by id so period listings are
// stable between requests.
func (r *StaffRepository) ListActive() ([]*staff.Staff, error) {
	var members []*staff.Staff
	err := r.db.Where("is_active = ?", true).Order("id ASC").Find(&members).Error
	return members, err
}

// UpdateCommission writes only the commission configuration columns.
func (r *StaffRepository) UpdateCommission(id int64, kind string, rate decimal.Decimal) error {
	result := r.db.Model(&staff.Staff{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"commission_kind": kind,
			"commission_rate": rate,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrStaffNotFound
	}
	return nil
}
