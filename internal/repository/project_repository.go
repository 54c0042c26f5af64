package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vibealong/internal/model"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// MostRecent returns the vibe coder's newest project.
func (r *ProjectRepository) MostRecent(ctx context.Context, vibeCoderID uuid.UUID) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		Where("vibe_coder_id = ?", vibeCoderID).
		Order("created_at DESC").
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) ListByVibeCoder(ctx context.Context, vibeCoderID uuid.UUID) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Where("vibe_coder_id = ?", vibeCoderID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}
