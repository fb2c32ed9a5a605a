package repository

import (
	"errors"

	"gorm.io/gorm"

	"agiliza_backend/internal/model"
)

// SettingsStore reads and merge-upserts the singleton tracking
// configuration row.
type SettingsStore interface {
	Get() (model.SiteSettings, error)
	Save(updates map[string]interface{}) (model.SiteSettings, error)
}

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the zero value when the row was never saved. Callers treat
// that as "all identifiers unset", never as an error.
func (r *SettingsRepository) Get() (model.SiteSettings, error) {
	var settings model.SiteSettings
	err := r.db.First(&settings, "id = ?", model.SettingsRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.SiteSettings{}, nil
	}
	if err != nil {
		return model.SiteSettings{}, err
	}
	return settings, nil
}

// Save writes only the supplied columns, creating the row when absent.
// Fields not present in updates keep their stored value.
func (r *SettingsRepository) Save(updates map[string]interface{}) (model.SiteSettings, error) {
	settings := model.SiteSettings{ID: model.SettingsRowID}
	if err := r.db.FirstOrCreate(&settings, model.SiteSettings{ID: model.SettingsRowID}).Error; err != nil {
		return model.SiteSettings{}, err
	}

	if len(updates) > 0 {
		if err := r.db.Model(&settings).Updates(updates).Error; err != nil {
			return model.SiteSettings{}, err
		}
	}

	return r.Get()
}
