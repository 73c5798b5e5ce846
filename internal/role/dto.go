package role

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/felixonline247/opolo-cbt-app/internal"
	"github.com/felixonline247/opolo-cbt-app/internal/permission"
)

type RoleDTO struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// Validate checks the name and that every permission id is either the
// wildcard or a catalog entry, and returns the normalized JSON storage form.
func (d *RoleDTO) Validate() (name, stored string, err error) {
	name = strings.TrimSpace(d.Name)
	if name == "" {
		return "", "", internal.NewValidationError("role name is required", internal.ErrCodeValidationFailed)
	}

	normalized := make([]string, 0, len(d.Permissions))
	seen := make(map[string]struct{})
	for _, raw := range d.Permissions {
		id := strings.ToLower(strings.TrimSpace(raw))
		if id == "" {
			continue
		}
		if id != permission.Wildcard && !permission.InCatalog(id) {
			return "", "", internal.NewValidationError(
				fmt.Sprintf("unknown permission %q", raw), internal.ErrCodeValidationFailed)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		normalized = append(normalized, id)
	}

	encoded, err := json.Marshal(normalized)
	if err != nil {
		return "", "", internal.NewInternalError("failed to encode permissions", err)
	}
	return name, string(encoded), nil
}
