package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Gaur10/taskpilot/internal/model"
)

type SettingsRepository struct {
	db *gorm.DB
}

type SettingsRepositoryInterface interface {
	GetOrCreate(ctx context.Context, tenantID string) (*model.FamilySettings, error)
	SetPreferences(ctx context.Context, tenantID string, prefs model.Preferences) (*model.FamilySettings, error)
}

var _ SettingsRepositoryInterface = (*SettingsRepository)(nil)

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetOrCreate returns the tenant's settings, creating the default row on
// first access.
func (r *SettingsRepository) GetOrCreate(ctx context.Context, tenantID string) (*model.FamilySettings, error) {
	var settings model.FamilySettings
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = model.FamilySettings{
			TenantID:    tenantID,
			Preferences: model.DefaultPreferences(),
		}
		if err := r.db.WithContext(ctx).Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// SetPreferences upserts the tenant's preferences wholesale. Used for both
// updates and resets (reset writes the defaults).
func (r *SettingsRepository) SetPreferences(ctx context.Context, tenantID string, prefs model.Preferences) (*model.FamilySettings, error) {
	settings, err := r.GetOrCreate(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	settings.Preferences = prefs
	if err := r.db.WithContext(ctx).Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
