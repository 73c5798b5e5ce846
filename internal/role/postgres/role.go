package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/felixonline247/opolo-cbt-app/internal"
	"github.com/felixonline247/opolo-cbt-app/internal/role"
	"github.com/felixonline247/opolo-cbt-app/internal/staff"
)

// RoleRepository implements the role.RepositoryAPI interface using GORM
type RoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) role.RepositoryAPI {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Create(rl *role.Role) error {
	return r.db.Create(rl).Error
}

func (r *RoleRepository) GetByID(id int64) (*role.Role, error) {
	var rl role.Role
	err := r.db.Where("id = ?", id).First(&rl).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrRoleNotFound
		}
		return nil, err
	}
	return &rl, nil
}

func (r *RoleRepository) List() ([]*role.Role, error) {
	var roles []*role.Role
	err := r.db.Order("name ASC").Find(&roles).Error
	return roles, err
}

func (r *RoleRepository) Update(rl *role.Role) error {
	rl.UpdatedAt = time.Now()
	return r.db.Save(rl).Error
}

func (r *RoleRepository) Delete(id int64) error {
	return r.db.Delete(&role.Role{}, id).Error
}

// InUse reports whether any staff record still references the role.
func (r *RoleRepository) InUse(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&staff.Staff{}).Where("role_id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
