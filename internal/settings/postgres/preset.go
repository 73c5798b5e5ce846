package postgres

import (
	"gorm.io/gorm"

	"github.com/felixonline247/opolo-cbt-app/internal"
	"github.com/felixonline247/opolo-cbt-app/internal/settings"
)

// PresetRepository implements settings.PresetRepositoryAPI using GORM.
type PresetRepository struct {
	db *gorm.DB
}

func NewPresetRepository(db *gorm.DB) *PresetRepository {
	return &PresetRepository{db: db}
}

func (r *PresetRepository) Create(p *settings.ServicePreset) error {
	return r.db.Create(p).Error
}

func (r *PresetRepository) List() ([]*settings.ServicePreset, error) {
	var presets []*settings.ServicePreset
	if err := r.db.Order("service_name").Find(&presets).Error; err != nil {
		return nil, err
	}
	return presets, nil
}

func (r *PresetRepository) Delete(id int64) error {
	result := r.db.Delete(&settings.ServicePreset{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrPresetNotFound
	}
	return nil
}
