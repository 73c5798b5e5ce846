package role

import (
	"encoding/json"
	"time"

	"github.com/felixonline247/opolo-cbt-app/internal/permission"
)

// Role is a named bundle of permission ids. Permissions are stored as a JSON
// array in a text column; the resolver re-normalizes on every read, so legacy
// rows with odd casing or encodings still resolve.
type Role struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex"`
	Permissions string    `json:"-" gorm:"column:permissions;type:text;not null;default:'[]'"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Role) TableName() string {
	return "roles"
}

// PermissionSet parses the stored value through the tolerant decoder.
func (r *Role) PermissionSet() permission.Set {
	return permission.Parse(r.Permissions)
}

// MarshalJSON exposes the permissions as a normalized array rather than the
// raw stored text.
func (r *Role) MarshalJSON() ([]byte, error) {
	type alias Role
	return json.Marshal(struct {
		*alias
		Permissions []string `json:"permissions"`
	}{
		alias:       (*alias)(r),
		Permissions: r.PermissionSet().Strings(),
	})
}
