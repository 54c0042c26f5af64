package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"vibealong/internal/localstore"
	"vibealong/internal/model"
	"vibealong/internal/repository"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
)

// Source tells where a task list came from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceMock   Source = "mock"
)

// State separates "the query returned nothing" from "the query failed".
// Both fall back to the same mock list.
type State string

const (
	StateLoaded State = "loaded"
	StateEmpty  State = "empty"
	StateError  State = "error"
)

type Result struct {
	Tasks  []model.Task
	Source Source
	State  State
	Err    error
}

type Repository interface {
	List(ctx context.Context) ([]model.Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	Create(ctx context.Context, task *model.Task) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateProgress(ctx context.Context, id uuid.UUID, progress int, status string) error
}

// SchemaSetup creates missing tables.
type SchemaSetup interface {
	Setup(ctx context.Context) error
}

type Store interface {
	GetJSON(ctx context.Context, key string, dst any) error
	SetJSON(ctx context.Context, key string, v any) error
}

type Service struct {
	repo  Repository
	setup SchemaSetup
	store Store
	log   *zap.Logger
	now   func() time.Time
}

func NewService(repo Repository, setup SchemaSetup, store Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, setup: setup, store: store, log: log, now: time.Now}
}

// WithClock replaces the clock used to date mock tasks.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// List loads tasks from the database, falling back to the mock list when the
// table is empty or the query fails.
func (s *Service) List(ctx context.Context) Result {
	tasks, err := s.listWithSetup(ctx)
	if err == nil && len(tasks) > 0 {
		return Result{Tasks: tasks, Source: SourceRemote, State: StateLoaded}
	}

	state := StateEmpty
	if err != nil {
		state = StateError
		s.log.Warn("task query failed, using mock tasks", zap.Error(err))
	}
	return Result{Tasks: s.mockTasks(ctx), Source: SourceMock, State: state, Err: err}
}

func (s *Service) listWithSetup(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.repo.List(ctx)
	if err == nil || !repository.IsSchemaMissing(err) || s.setup == nil {
		return tasks, err
	}
	if setupErr := s.setup.Setup(ctx); setupErr != nil {
		s.log.Error("schema setup failed", zap.Error(setupErr))
		return nil, err
	}
	return s.repo.List(ctx)
}

// mockTasks returns the stored mock list, creating and storing it on first use.
func (s *Service) mockTasks(ctx context.Context) []model.Task {
	var cached []model.Task
	err := s.store.GetJSON(ctx, localstore.MockTasksKey, &cached)
	if err == nil && len(cached) > 0 {
		return cached
	}
	if err != nil && !errors.Is(err, localstore.ErrNotFound) {
		s.log.Warn("stored mock tasks unreadable, regenerating", zap.Error(err))
	}

	tasks := MockTasks(s.now())
	if err := s.store.SetJSON(ctx, localstore.MockTasksKey, tasks); err != nil {
		s.log.Warn("failed to store mock tasks", zap.Error(err))
	}
	return tasks
}

// Get returns a task from the database, or from the mock list when the
// database does not have it.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Task, Source, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err == nil {
		return task, SourceRemote, nil
	}
	if !errors.Is(err, repository.ErrTaskNotFound) {
		s.log.Warn("task lookup failed, trying mock tasks", zap.Stringer("task_id", id), zap.Error(err))
	}

	for _, t := range s.mockTasks(ctx) {
		if t.ID == id {
			found := t
			return &found, SourceMock, nil
		}
	}
	return nil, "", ErrTaskNotFound
}

type CreateInput struct {
	Title          string
	Description    string
	Priority       string
	DueDate        *time.Time
	EstimatedHours float64
	EstimatedCost  float64
	Requirements   string
	TechStack      []string
	AISummary      *string
	VibeCoderID    *uuid.UUID
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*model.Task, error) {
	task := &model.Task{
		Title:          in.Title,
		Description:    in.Description,
		Status:         model.StatusOpen,
		Priority:       in.Priority,
		DueDate:        in.DueDate,
		EstimatedHours: in.EstimatedHours,
		EstimatedCost:  in.EstimatedCost,
		Requirements:   in.Requirements,
		TechStack:      pq.StringArray(in.TechStack),
		AISummary:      in.AISummary,
		VibeCoderID:    in.VibeCoderID,
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if task.TechStack == nil {
		task.TechStack = pq.StringArray{}
	}

	err := s.repo.Create(ctx, task)
	if err != nil && repository.IsSchemaMissing(err) && s.setup != nil {
		if setupErr := s.setup.Setup(ctx); setupErr != nil {
			return nil, fmt.Errorf("%w (setup failed: %v)", err, setupErr)
		}
		err = s.repo.Create(ctx, task)
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateStatus changes a task's status. Mock tasks are updated in the local
// store so the change survives a reload. The stored mock list is a single
// key shared by every visitor, so such an edit is seen by everyone.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Task, error) {
	normalized := NormalizeStatus(status)
	if normalized == "" {
		return nil, ErrInvalidStatus
	}
	return s.update(ctx, id,
		func(t *model.Task) { t.Status = normalized },
		func() error { return s.repo.UpdateStatus(ctx, id, normalized) },
	)
}

// UpdateProgress sets progress and the status it implies. Like UpdateStatus,
// edits to mock tasks land in the shared mock list seen by every visitor.
func (s *Service) UpdateProgress(ctx context.Context, id uuid.UUID, progress int) (*model.Task, error) {
	if progress < 0 || progress > 100 {
		return nil, ErrInvalidProgress
	}
	status := StatusForProgress(progress)
	return s.update(ctx, id,
		func(t *model.Task) {
			t.Progress = progress
			t.Status = status
		},
		func() error { return s.repo.UpdateProgress(ctx, id, progress, status) },
	)
}

// update applies mutate to the task and persists it with save, or to the
// stored mock list when the task only exists there.
func (s *Service) update(ctx context.Context, id uuid.UUID, mutate func(t *model.Task), save func() error) (*model.Task, error) {
	task, source, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if source == SourceRemote {
		mutate(task)
		if err := save(); err != nil {
			if errors.Is(err, repository.ErrTaskNotFound) {
				return nil, ErrTaskNotFound
			}
			return nil, err
		}
		task.UpdatedAt = s.now()
		return task, nil
	}

	mocks := s.mockTasks(ctx)
	for i := range mocks {
		if mocks[i].ID != id {
			continue
		}
		mutate(&mocks[i])
		mocks[i].UpdatedAt = s.now()
		if err := s.store.SetJSON(ctx, localstore.MockTasksKey, mocks); err != nil {
			return nil, err
		}
		updated := mocks[i]
		return &updated, nil
	}
	return nil, ErrTaskNotFound
}
