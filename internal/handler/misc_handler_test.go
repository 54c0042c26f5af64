package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"vibealong/internal/demo"
	"vibealong/internal/estimate"
	"vibealong/internal/handler"
	"vibealong/internal/model"
	"vibealong/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDemo_SessionLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewDemoHandler(demo.NewScheduler(time.Hour, zap.NewNop()))
	r.POST("/api/demo/sessions", h.Create)
	r.GET("/api/demo/sessions/:id", h.Get)
	r.POST("/api/demo/sessions/:id/goto", h.GoTo)
	r.POST("/api/demo/sessions/:id/play", h.Play)

	resp := doJSON(r, "POST", "/api/demo/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.Code)
	var created handler.DemoSessionResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.Equal(t, demo.State{Current: 0, Total: 6}, created.State)
	assert.Len(t, created.Steps, 6)

	resp = doJSON(r, "POST", "/api/demo/sessions/"+created.ID+"/goto", map[string]int{"step": 5})
	assert.Equal(t, http.StatusOK, resp.Code)

	// Already on the last slide: play does not start.
	resp = doJSON(r, "POST", "/api/demo/sessions/"+created.ID+"/play", nil)
	assert.Contains(t, resp.Body.String(), `"playing":false`)

	resp = doJSON(r, "POST", "/api/demo/sessions/"+created.ID+"/goto", map[string]int{"step": 6})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	resp = doJSON(r, "GET", "/api/demo/sessions/unknown", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestContent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewContentHandler()
	r.GET("/", h.Landing)
	r.GET("/api/pages/:slug", h.Page)
	r.GET("/api/dashboard/earnings", h.Earnings)

	assert.Contains(t, doJSON(r, "GET", "/", nil).Body.String(), `"slug":"landing"`)
	assert.Equal(t, http.StatusOK, doJSON(r, "GET", "/api/pages/showcase", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(r, "GET", "/api/pages/pricing", nil).Code)
	assert.Contains(t, doJSON(r, "GET", "/api/dashboard/earnings", nil).Body.String(), `"weekly"`)
}

func TestEstimate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewEstimateHandler(estimate.MockEstimator{}, estimate.MockStepGenerator{}, zap.NewNop())
	r.POST("/api/ai/estimate", h.Estimate)
	r.POST("/api/ai/steps", h.GenerateSteps)

	resp := doJSON(r, "POST", "/api/ai/estimate", handler.EstimateRequest{Title: "Add auth"})
	assert.Equal(t, http.StatusOK, resp.Code)
	var est estimate.Estimate
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &est))
	assert.Equal(t, est.Hours*est.HourlyRate, est.Cost)

	resp = doJSON(r, "POST", "/api/ai/steps", handler.EstimateRequest{Title: "Add auth"})
	var steps handler.GeneratedStepsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &steps))
	assert.Len(t, steps.Steps, 5)

	resp = doJSON(r, "POST", "/api/ai/estimate", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) MostRecent(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Project)
	return p, args.Error(1)
}

func (m *MockProjectRepository) ListByVibeCoder(ctx context.Context, id uuid.UUID) ([]model.Project, error) {
	args := m.Called(ctx, id)
	list, _ := args.Get(0).([]model.Project)
	return list, args.Error(1)
}

func TestProjects_Latest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	repo := new(MockProjectRepository)
	h := handler.NewProjectHandler(repo, zap.NewNop())
	r.GET("/api/vibe-coders/:id/projects/latest", h.Latest)
	r.GET("/api/vibe-coders/:id/projects", h.List)

	withProject, without := uuid.New(), uuid.New()
	repo.On("MostRecent", mock.Anything, withProject).Return(&model.Project{Name: "TutorMatch", Platform: "bolt"}, nil)
	repo.On("MostRecent", mock.Anything, without).Return(nil, repository.ErrProjectNotFound)
	repo.On("ListByVibeCoder", mock.Anything, without).Return(nil, nil)

	resp := doJSON(r, "GET", "/api/vibe-coders/"+withProject.String()+"/projects/latest", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "TutorMatch")

	resp = doJSON(r, "GET", "/api/vibe-coders/"+without.String()+"/projects/latest", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = doJSON(r, "GET", "/api/vibe-coders/"+without.String()+"/projects", nil)
	assert.Equal(t, "[]", resp.Body.String())
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewHealthHandler(map[string]handler.Pinger{
		"redis": handler.PingFunc(func(context.Context) error { return nil }),
		"postgres": handler.PingFunc(func(context.Context) error {
			return errors.New(`dial tcp db.internal:5432: password authentication failed for user "vibealong"`)
		}),
	}, zap.NewNop())
	r.GET("/health", h.Health)

	resp := doJSON(r, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"status":"degraded"`)
	assert.Contains(t, resp.Body.String(), `"redis":"ok"`)
	assert.Contains(t, resp.Body.String(), `"postgres":"down"`)
	assert.NotContains(t, resp.Body.String(), "db.internal")
	assert.NotContains(t, resp.Body.String(), "vibealong")
}
