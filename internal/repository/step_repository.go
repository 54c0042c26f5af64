package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vibealong/internal/model"
)

type StepRepository struct {
	db *gorm.DB
}

func NewStepRepository(db *gorm.DB) *StepRepository {
	return &StepRepository{db: db}
}

// ListForUser returns the steps a user set up for a task, in position order
func (r *StepRepository) ListForUser(ctx context.Context, taskID, userID uuid.UUID) ([]model.TaskStep, error) {
	var steps []model.TaskStep
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Order("position").
		Find(&steps).Error
	return steps, err
}

// Save inserts new steps and updates text, completion and position of existing ones.
func (r *StepRepository) Save(ctx context.Context, steps []model.TaskStep) error {
	if len(steps) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range steps {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"text", "completed", "position"}),
			}).Create(&steps[i]).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
