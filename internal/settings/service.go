package settings

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/felixonline247/opolo-cbt-app/internal"
	"github.com/felixonline247/opolo-cbt-app/internal/permission"
)

type RepositoryAPI interface {
	// Get returns the settings row, creating the default when none exists.
	Get() (*Settings, error)
	Update(s *Settings) error
}

type PresetRepositoryAPI interface {
	Create(p *ServicePreset) error
	List() ([]*ServicePreset, error)
	Delete(id int64) error
}

type UpdateSettingsDTO struct {
	BusinessName         *string `json:"business_name"`
	GlobalCommissionRate *string `json:"global_commission_rate"`
}

type Service struct {
	repo    RepositoryAPI
	presets PresetRepositoryAPI
	logger  *slog.Logger
}

func NewService(repo RepositoryAPI, presets PresetRepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, presets: presets, logger: logger}
}

// GetSettings is readable by any authenticated user; the values appear on
// sale forms and dashboards.
func (s *Service) GetSettings() (*Settings, error) {
	return s.repo.Get()
}

func (s *Service) UpdateSettings(dto *UpdateSettingsDTO, perms permission.Set) (*Settings, error) {
	if !perms.Has(permission.ManageSettings) {
		return nil, internal.ErrForbidden
	}

	current, err := s.repo.Get()
	if err != nil {
		return nil, err
	}

	if dto.BusinessName != nil {
		name := strings.TrimSpace(*dto.BusinessName)
		if name == "" {
			return nil, internal.NewValidationError("business name cannot be empty", internal.ErrCodeValidationFailed)
		}
		current.BusinessName = name
	}

	if dto.GlobalCommissionRate != nil {
		rate, err := decimal.NewFromString(strings.TrimSpace(*dto.GlobalCommissionRate))
		if err != nil || rate.IsNegative() {
			return nil, internal.NewValidationError("global commission rate must be a non-negative decimal", internal.ErrCodeInvalidRate)
		}
		current.GlobalCommissionRate = rate
	}

	if err := s.repo.Update(current); err != nil {
		s.logger.Error("failed to update settings", "error", err)
		return nil, err
	}

	s.logger.Info("settings updated",
		"business_name", current.BusinessName,
		"global_commission_rate", current.GlobalCommissionRate)

	return current, nil
}

// GlobalCommissionRate feeds the payroll calculator's fallback branch.
func (s *Service) GlobalCommissionRate() (decimal.Decimal, error) {
	current, err := s.repo.Get()
	if err != nil {
		return decimal.Zero, err
	}
	return current.GlobalCommissionRate, nil
}

// ListServicePresets is readable by any authenticated user; the sale form
// offers them as choices.
func (s *Service) ListServicePresets() ([]*ServicePreset, error) {
	return s.presets.List()
}

func (s *Service) CreateServicePreset(dto *CreatePresetDTO, perms permission.Set) (*ServicePreset, error) {
	if !perms.Has(permission.ManageSettings) {
		return nil, internal.ErrForbidden
	}

	preset, err := dto.Validate()
	if err != nil {
		return nil, err
	}

	if err := s.presets.Create(preset); err != nil {
		s.logger.Error("failed to create service preset", "error", err, "service_name", preset.ServiceName)
		return nil, err
	}

	s.logger.Info("service preset created",
		"preset_id", preset.ID,
		"service_name", preset.ServiceName,
		"total_amount", preset.TotalAmount)
	return preset, nil
}

func (s *Service) DeleteServicePreset(id int64, perms permission.Set) error {
	if !perms.Has(permission.ManageSettings) {
		return internal.ErrForbidden
	}

	if err := s.presets.Delete(id); err != nil {
		s.logger.Error("failed to delete service preset", "error", err, "preset_id", id)
		return err
	}

	s.logger.Info("service preset deleted", "preset_id", id)
	return nil
}
