package checklist

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"vibealong/internal/localstore"
	"vibealong/internal/model"
)

// StepStore persists a user's steps for a task.
type StepStore interface {
	Load(ctx context.Context, taskID, userID string) ([]Step, error)
	Save(ctx context.Context, taskID, userID string, steps []Step) error
}

type JSONStore interface {
	GetJSON(ctx context.Context, key string, dst any) error
	SetJSON(ctx context.Context, key string, v any) error
}

// LocalStepStore keeps steps as one JSON array under task-setup-{taskId}-{userId}.
type LocalStepStore struct {
	store JSONStore
}

func NewLocalStepStore(store JSONStore) *LocalStepStore {
	return &LocalStepStore{store: store}
}

func (s *LocalStepStore) Load(ctx context.Context, taskID, userID string) ([]Step, error) {
	var steps []Step
	err := s.store.GetJSON(ctx, localstore.TaskSetupKey(taskID, userID), &steps)
	if errors.Is(err, localstore.ErrNotFound) {
		return []Step{}, nil
	}
	if err != nil {
		return nil, err
	}
	return steps, nil
}

func (s *LocalStepStore) Save(ctx context.Context, taskID, userID string, steps []Step) error {
	return s.store.SetJSON(ctx, localstore.TaskSetupKey(taskID, userID), steps)
}

type StepRepository interface {
	ListForUser(ctx context.Context, taskID, userID uuid.UUID) ([]model.TaskStep, error)
	Save(ctx context.Context, steps []model.TaskStep) error
}

// DBStepStore keeps steps in the task_steps table.
type DBStepStore struct {
	repo StepRepository
}

func NewDBStepStore(repo StepRepository) *DBStepStore {
	return &DBStepStore{repo: repo}
}

func (s *DBStepStore) Load(ctx context.Context, taskID, userID string) ([]Step, error) {
	tid, uid, err := parseIDs(taskID, userID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListForUser(ctx, tid, uid)
	if err != nil {
		return nil, err
	}
	steps := make([]Step, 0, len(rows))
	for _, r := range rows {
		steps = append(steps, Step{ID: r.ID.String(), Text: r.Text, Completed: r.Completed})
	}
	return steps, nil
}

func (s *DBStepStore) Save(ctx context.Context, taskID, userID string, steps []Step) error {
	tid, uid, err := parseIDs(taskID, userID)
	if err != nil {
		return err
	}
	rows := make([]model.TaskStep, 0, len(steps))
	for i, st := range steps {
		id, err := uuid.Parse(st.ID)
		if err != nil {
			return fmt.Errorf("step %q: %w", st.ID, err)
		}
		rows = append(rows, model.TaskStep{
			ID:        id,
			TaskID:    tid,
			UserID:    uid,
			Text:      st.Text,
			Completed: st.Completed,
			Position:  i,
		})
	}
	return s.repo.Save(ctx, rows)
}

func parseIDs(taskID, userID string) (uuid.UUID, uuid.UUID, error) {
	tid, err := uuid.Parse(taskID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("task id: %w", err)
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("user id: %w", err)
	}
	return tid, uid, nil
}
