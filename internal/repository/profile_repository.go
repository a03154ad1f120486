package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Gaur10/taskpilot/internal/model"
)

type ProfileRepository struct {
	db *gorm.DB
}

type ProfileRepositoryInterface interface {
	GetOrCreate(ctx context.Context, profile *model.UserProfile) (*model.UserProfile, error)
	Get(ctx context.Context, tenantID, userID string) (*model.UserProfile, error)
	Update(ctx context.Context, profile *model.UserProfile) error
	ListByTenant(ctx context.Context, tenantID string) ([]model.UserProfile, error)
}

var _ ProfileRepositoryInterface = (*ProfileRepository)(nil)

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetOrCreate looks up the caller's profile and seeds one from the identity
// claims on first access.
func (r *ProfileRepository) GetOrCreate(ctx context.Context, profile *model.UserProfile) (*model.UserProfile, error) {
	var existing model.UserProfile
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", profile.TenantID, profile.UserID).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
			return nil, err
		}
		return profile, nil
	}
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *ProfileRepository) Get(ctx context.Context, tenantID, userID string) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *model.UserProfile) error {
	result := r.db.WithContext(ctx).Save(profile)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// ListByTenant returns all family member profiles, sorted by name.
func (r *ProfileRepository) ListByTenant(ctx context.Context, tenantID string) ([]model.UserProfile, error) {
	var profiles []model.UserProfile
	result := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name").
		Find(&profiles)
	if result.Error != nil {
		return nil, result.Error
	}
	return profiles, nil
}
