package role

import (
	"log/slog"

	"github.com/felixonline247/opolo-cbt-app/internal"
	"github.com/felixonline247/opolo-cbt-app/internal/permission"
)

type RepositoryAPI interface {
	Create(role *Role) error
	GetByID(id int64) (*Role, error)
	List() ([]*Role, error)
	Update(role *Role) error
	Delete(id int64) error
	InUse(id int64) (bool, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) CreateRole(dto *RoleDTO, perms permission.Set) (*Role, error) {
	if !perms.Has(permission.ManageSettings) {
		return nil, internal.ErrForbidden
	}

	name, stored, err := dto.Validate()
	if err != nil {
		return nil, err
	}

	role := &Role{Name: name, Permissions: stored}
	if err := s.repo.Create(role); err != nil {
		s.logger.Error("failed to create role", "error", err, "name", name)
		return nil, err
	}

	s.logger.Info("role created", "role_id", role.ID, "name", role.Name, "permissions", role.PermissionSet().Strings())
	return role, nil
}

func (s *Service) GetRole(id int64, perms permission.Set) (*Role, error) {
	if !perms.Has(permission.ManageSettings) {
		return nil, internal.ErrForbidden
	}
	return s.repo.GetByID(id)
}

// ListRoles is readable by any authenticated user; staff forms need the role
// names to assign them.
func (s *Service) ListRoles() ([]*Role, error) {
	return s.repo.List()
}

// UpdateRole replaces the role's name and permission list. The change takes
// effect on the next permission resolution of every staff member holding it.
func (s *Service) UpdateRole(id int64, dto *RoleDTO, perms permission.Set) (*Role, error) {
	if !perms.Has(permission.ManageSettings) {
		return nil, internal.ErrForbidden
	}

	role, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	name, stored, err := dto.Validate()
	if err != nil {
		return nil, err
	}

	role.Name = name
	role.Permissions = stored
	if err := s.repo.Update(role); err != nil {
		s.logger.Error("failed to update role", "error", err, "role_id", id)
		return nil, err
	}

	s.logger.Info("role updated", "role_id", role.ID, "permissions", role.PermissionSet().Strings())
	return role, nil
}

func (s *Service) DeleteRole(id int64, perms permission.Set) error {
	if !perms.Has(permission.ManageSettings) {
		return internal.ErrForbidden
	}

	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}

	inUse, err := s.repo.InUse(id)
	if err != nil {
		return err
	}
	if inUse {
		return internal.NewConflictError("role is still assigned to staff", internal.ErrCodeValidationFailed)
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete role", "error", err, "role_id", id)
		return err
	}

	s.logger.Info("role deleted", "role_id", id)
	return nil
}
