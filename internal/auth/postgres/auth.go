package postgres

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/felixonline247/opolo-cbt-app/internal"
	"github.com/felixonline247/opolo-cbt-app/internal/auth"
)

// Repository serves the auth package's lookups. It satisfies both
// auth.StaffDirectory and permission.Directory.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// GetByEmail loads the credential slice of a staff row.
func (r *Repository) GetByEmail(email string) (*auth.Member, error) {
	var member auth.Member
	query := `SELECT id, name, email, password_hash, is_active FROM staff WHERE email = ?`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&member.ID, &member.Name, &member.Email, &member.PasswordHash, &member.IsActive); err != nil {
		if err == sql.ErrNoRows {
			return nil, internal.ErrStaffNotFound
		}
		return nil, err
	}

	return &member, nil
}

// RolePermissions returns the raw stored permission value of the role held by
// the staff member with this email. found is false when there is no active
// staff record or the record has no role; decoding is left to the resolver.
func (r *Repository) RolePermissions(ctx context.Context, email string) (interface{}, bool, error) {
	var permissions sql.NullString
	query := `SELECT ro.permissions
	         FROM staff st
	         LEFT JOIN roles ro ON ro.id = st.role_id
	         WHERE st.email = ? AND st.is_active = true`

	row := r.db.WithContext(ctx).Raw(query, email).Row()
	if err := row.Scan(&permissions); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, err
	}

	if !permissions.Valid {
		// Staff exists but holds no role.
		return nil, false, nil
	}

	return permissions.String, true, nil
}
