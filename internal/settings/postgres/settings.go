package postgres

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/felixonline247/opolo-cbt-app/internal/settings"
)

// SettingsRepository implements the settings.RepositoryAPI interface using GORM
type SettingsRepository struct {
	db          *gorm.DB
	defaultName string
	defaultRate decimal.Decimal
}

// NewSettingsRepository creates a new settings repository. The defaults seed
// the row on first read of a fresh database.
func NewSettingsRepository(db *gorm.DB, defaultName string, defaultRate decimal.Decimal) settings.RepositoryAPI {
	return &SettingsRepository{db: db, defaultName: defaultName, defaultRate: defaultRate}
}

func (r *SettingsRepository) Get() (*settings.Settings, error) {
	var s settings.Settings
	err := r.db.First(&s).Error
	if err == gorm.ErrRecordNotFound {
		s = settings.Settings{
			BusinessName:         r.defaultName,
			GlobalCommissionRate: r.defaultRate,
		}
		if err := r.db.Create(&s).Error; err != nil {
			return nil, err
		}
		return &s, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepository) Update(s *settings.Settings) error {
	s.UpdatedAt = time.Now()
	return r.db.Save(s).Error
}
