package tasks_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"vibealong/internal/localstore"
	"vibealong/internal/model"
	"vibealong/internal/repository"
	"vibealong/internal/tasks"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) List(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]model.Task)
	return list, args.Error(1)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*model.Task)
	return task, args.Error(1)
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockTaskRepository) UpdateProgress(ctx context.Context, id uuid.UUID, progress int, status string) error {
	return m.Called(ctx, id, progress, status).Error(0)
}

type MockSetup struct {
	mock.Mock
}

func (m *MockSetup) Setup(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var fixedNow = time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)

func setupService(t *testing.T) (*tasks.Service, *MockTaskRepository, *MockSetup, *localstore.Store) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := localstore.New(client)
	repo := new(MockTaskRepository)
	setup := new(MockSetup)
	svc := tasks.NewService(repo, setup, store, nil).WithClock(func() time.Time { return fixedNow })
	return svc, repo, setup, store
}

func TestList_Remote(t *testing.T) {
	// Arrange
	svc, repo, _, _ := setupService(t)
	remote := []model.Task{{ID: uuid.New(), Title: "Real task", Status: "open"}}
	repo.On("List", mock.Anything).Return(remote, nil)

	// Act
	res := svc.List(context.Background())

	// Assert
	assert.Equal(t, tasks.SourceRemote, res.Source)
	assert.Equal(t, tasks.StateLoaded, res.State)
	assert.Equal(t, remote, res.Tasks)
	repo.AssertExpectations(t)
}

func TestList_EmptyFallsBackToFiveStoredMocks(t *testing.T) {
	// Arrange
	svc, repo, _, store := setupService(t)
	repo.On("List", mock.Anything).Return([]model.Task{}, nil)

	// Act
	res := svc.List(context.Background())

	// Assert
	assert.Equal(t, tasks.SourceMock, res.Source)
	assert.Equal(t, tasks.StateEmpty, res.State)
	require.Len(t, res.Tasks, tasks.MockTaskCount)

	var stored []model.Task
	require.NoError(t, store.GetJSON(context.Background(), localstore.MockTasksKey, &stored))
	require.Len(t, stored, 5)
	for i := range stored {
		assert.Equal(t, res.Tasks[i].ID, stored[i].ID)
		assert.Equal(t, res.Tasks[i].Title, stored[i].Title)
	}
}

func TestList_MocksAreDeterministic(t *testing.T) {
	a := tasks.MockTasks(fixedNow)
	b := tasks.MockTasks(fixedNow.Add(3 * time.Hour))

	require.Len(t, a, 5)
	assert.Equal(t, a, b)
}

func TestList_ErrorStateIsDistinctFromEmpty(t *testing.T) {
	svc, repo, setup, _ := setupService(t)
	repo.On("List", mock.Anything).Return(nil, errors.New("connection refused"))

	res := svc.List(context.Background())

	assert.Equal(t, tasks.StateError, res.State)
	assert.Equal(t, tasks.SourceMock, res.Source)
	assert.Len(t, res.Tasks, 5)
	assert.Error(t, res.Err)
	setup.AssertNotCalled(t, "Setup", mock.Anything)
}

func TestList_SchemaMissingRunsSetupOnce(t *testing.T) {
	svc, repo, setup, _ := setupService(t)
	missing := &pgconn.PgError{Code: "42P01", Message: `relation "tasks" does not exist`}
	remote := []model.Task{{ID: uuid.New(), Title: "After setup", Status: "open"}}

	repo.On("List", mock.Anything).Return(nil, missing).Once()
	repo.On("List", mock.Anything).Return(remote, nil).Once()
	setup.On("Setup", mock.Anything).Return(nil).Once()

	res := svc.List(context.Background())

	assert.Equal(t, tasks.StateLoaded, res.State)
	assert.Equal(t, remote, res.Tasks)
	setup.AssertNumberOfCalls(t, "Setup", 1)
	repo.AssertNumberOfCalls(t, "List", 2)
}

func TestList_SchemaSetupFailsFallsBack(t *testing.T) {
	svc, repo, setup, _ := setupService(t)
	missing := &pgconn.PgError{Code: "42P01"}

	repo.On("List", mock.Anything).Return(nil, missing).Once()
	setup.On("Setup", mock.Anything).Return(errors.New("permission denied")).Once()

	res := svc.List(context.Background())

	assert.Equal(t, tasks.StateError, res.State)
	assert.True(t, repository.IsSchemaMissing(res.Err))
	assert.Len(t, res.Tasks, 5)
	repo.AssertNumberOfCalls(t, "List", 1)
}

func TestList_ReusesStoredMocks(t *testing.T) {
	svc, repo, _, store := setupService(t)
	repo.On("List", mock.Anything).Return([]model.Task{}, nil)

	custom := []model.Task{{ID: uuid.New(), Title: "edited", Status: "done"}}
	require.NoError(t, store.SetJSON(context.Background(), localstore.MockTasksKey, custom))

	res := svc.List(context.Background())

	require.Len(t, res.Tasks, 1)
	assert.Equal(t, "edited", res.Tasks[0].Title)
}

func TestGet_FallsBackToMock(t *testing.T) {
	svc, repo, _, _ := setupService(t)
	mockID := tasks.MockTasks(fixedNow)[2].ID
	repo.On("GetByID", mock.Anything, mockID).Return(nil, repository.ErrTaskNotFound)

	task, source, err := svc.Get(context.Background(), mockID)

	require.NoError(t, err)
	assert.Equal(t, tasks.SourceMock, source)
	assert.Equal(t, mockID, task.ID)
}

func TestGet_Unknown(t *testing.T) {
	svc, repo, _, _ := setupService(t)
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrTaskNotFound)

	_, _, err := svc.Get(context.Background(), id)

	assert.ErrorIs(t, err, tasks.ErrTaskNotFound)
}

func TestUpdateStatus_Remote(t *testing.T) {
	svc, repo, _, _ := setupService(t)
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&model.Task{ID: id, Status: "open"}, nil)
	repo.On("UpdateStatus", mock.Anything, id, model.StatusInProgress).Return(nil)

	task, err := svc.UpdateStatus(context.Background(), id, "In Progress")

	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, task.Status)
	repo.AssertExpectations(t)
}

func TestUpdateStatus_Invalid(t *testing.T) {
	svc, _, _, _ := setupService(t)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), "archived")

	assert.ErrorIs(t, err, tasks.ErrInvalidStatus)
}

func TestUpdateProgress_MockTaskPersistsLocally(t *testing.T) {
	svc, repo, _, store := setupService(t)
	mockID := tasks.MockTasks(fixedNow)[0].ID
	repo.On("GetByID", mock.Anything, mockID).Return(nil, repository.ErrTaskNotFound)

	task, err := svc.UpdateProgress(context.Background(), mockID, 100)

	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, task.Status)
	repo.AssertNotCalled(t, "UpdateProgress", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	var stored []model.Task
	require.NoError(t, store.GetJSON(context.Background(), localstore.MockTasksKey, &stored))
	assert.Equal(t, 100, stored[0].Progress)
	assert.Equal(t, model.StatusCompleted, stored[0].Status)
}

func TestUpdateProgress_OutOfRange(t *testing.T) {
	svc, _, _, _ := setupService(t)

	_, err := svc.UpdateProgress(context.Background(), uuid.New(), 101)

	assert.ErrorIs(t, err, tasks.ErrInvalidProgress)
}

func TestCreate_DefaultsAndSchemaRetry(t *testing.T) {
	svc, repo, setup, _ := setupService(t)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).
		Return(&pgconn.PgError{Code: "42P01"}).Once()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil).Once()
	setup.On("Setup", mock.Anything).Return(nil).Once()

	task, err := svc.Create(context.Background(), tasks.CreateInput{Title: "Add dark mode", Description: "Toggle in header"})

	require.NoError(t, err)
	assert.Equal(t, model.StatusOpen, task.Status)
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.NotNil(t, task.TechStack)
	setup.AssertExpectations(t)
}
