package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vibealong/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// List returns every task, newest first
func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// GetByID retrieves a task by its ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// UpdateStatus sets the status of a task
func (r *TaskRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.updateColumns(ctx, id, map[string]any{"status": status})
}

// UpdateProgress sets progress and the status derived from it
func (r *TaskRepository) UpdateProgress(ctx context.Context, id uuid.UUID, progress int, status string) error {
	return r.updateColumns(ctx, id, map[string]any{"progress": progress, "status": status})
}

func (r *TaskRepository) updateColumns(ctx context.Context, id uuid.UUID, cols map[string]any) error {
	result := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Updates(cols)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
