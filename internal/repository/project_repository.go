package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Gaur10/taskpilot/internal/model"
)

type ProjectRepository struct {
	db *gorm.DB
}

type ProjectRepositoryInterface interface {
	Create(ctx context.Context, project *model.Project) error
	ListByTenant(ctx context.Context, tenantID string) ([]model.Project, error)
	Delete(ctx context.Context, tenantID string, id uuid.UUID) error
}

var _ ProjectRepositoryInterface = (*ProjectRepository)(nil)

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *ProjectRepository) ListByTenant(ctx context.Context, tenantID string) ([]model.Project, error) {
	var projects []model.Project
	result := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Find(&projects)
	if result.Error != nil {
		return nil, result.Error
	}
	return projects, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Project{}, "id = ? AND tenant_id = ?", id, tenantID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}
