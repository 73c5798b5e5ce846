package staff

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/felixonline247/opolo-cbt-app/internal"
	"github.com/felixonline247/opolo-cbt-app/internal/permission"
)

type RepositoryAPI interface {
	Create(member *Staff) error
	GetByID(id int64) (*Staff, error)
	GetByEmail(email string) (*Staff, error)
	List(includeInactive bool) ([]*Staff, error)
	Update(member *Staff) error
	Exists(id int64) (bool, error)
}

type Service struct {
	repo            RepositoryAPI
	defaultPassword string
	bcryptCost      int
	logger          *slog.Logger
}

func NewService(repo RepositoryAPI, defaultPassword string, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:            repo,
		defaultPassword: defaultPassword,
		bcryptCost:      bcryptCost,
		logger:          logger,
	}
}

// CreateStaff registers a new staff member. A new account gets the rollout
// default password unless the payload supplies one; either way the stored
// value is a bcrypt hash.
func (s *Service) CreateStaff(dto *CreateStaffDTO, perms permission.Set) (*Staff, error) {
	if !perms.Has(permission.ManageStaff) {
		return nil, internal.ErrForbidden
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		return nil, internal.NewConflictError("a staff member with this email already exists", internal.ErrCodeValidationFailed)
	}

	password := dto.Password
	if password == "" {
		password = s.defaultPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	member := &Staff{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: string(hash),
		BaseSalary:   dto.Salary(),
		RoleID:       dto.RoleID,
		IsActive:     true,
	}

	if err := s.repo.Create(member); err != nil {
		s.logger.Error("failed to create staff", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("staff created", "staff_id", member.ID, "email", member.Email)
	return member, nil
}

func (s *Service) GetStaff(id int64, perms permission.Set) (*Staff, error) {
	if !perms.Has(permission.ManageStaff) {
		return nil, internal.ErrForbidden
	}
	return s.repo.GetByID(id)
}

func (s *Service) ListStaff(includeInactive bool, perms permission.Set) ([]*Staff, error) {
	if !perms.Has(permission.ManageStaff) {
		return nil, internal.ErrForbidden
	}
	return s.repo.List(includeInactive)
}

func (s *Service) UpdateStaff(id int64, dto *UpdateStaffDTO, perms permission.Set) (*Staff, error) {
	if !perms.Has(permission.ManageStaff) {
		return nil, internal.ErrForbidden
	}

	member, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := dto.Apply(member); err != nil {
		return nil, err
	}

	if err := s.repo.Update(member); err != nil {
		s.logger.Error("failed to update staff", "error", err, "staff_id", id)
		return nil, err
	}

	return member, nil
}

// DeactivateStaff disables the account while keeping the record, so payout
// history and sales attribution stay intact.
func (s *Service) DeactivateStaff(id int64, perms permission.Set) error {
	if !perms.Has(permission.ManageStaff) {
		return internal.ErrForbidden
	}

	member, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	member.IsActive = false
	if err := s.repo.Update(member); err != nil {
		s.logger.Error("failed to deactivate staff", "error", err, "staff_id", id)
		return err
	}

	s.logger.Info("staff deactivated", "staff_id", id)
	return nil
}
