package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"vibealong/internal/model"
	"vibealong/internal/tasks"
	"vibealong/internal/wizard"
)

type TaskService interface {
	List(ctx context.Context) tasks.Result
	Get(ctx context.Context, id uuid.UUID) (*model.Task, tasks.Source, error)
	Create(ctx context.Context, in tasks.CreateInput) (*model.Task, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Task, error)
	UpdateProgress(ctx context.Context, id uuid.UUID, progress int) (*model.Task, error)
}

type TaskHandler struct {
	tasks TaskService
	log   *zap.Logger
}

func NewTaskHandler(svc TaskService, log *zap.Logger) *TaskHandler {
	return &TaskHandler{tasks: svc, log: log}
}

// TaskRequest is the task submission form.
type TaskRequest struct {
	Title          string     `json:"title" validate:"required,min=3,max=200"`
	Description    string     `json:"description" validate:"required,max=5000"`
	Priority       string     `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	DueDate        *time.Time `json:"due_date"`
	EstimatedHours float64    `json:"estimated_hours" validate:"gte=0"`
	EstimatedCost  float64    `json:"estimated_cost" validate:"gte=0"`
	Requirements   string     `json:"requirements" validate:"max=5000"`
	TechStack      []string   `json:"tech_stack" validate:"max=20,dive,required,max=40"`
	AISummary      *string    `json:"ai_summary"`
	VibeCoderID    *uuid.UUID `json:"vibe_coder_id"`
}

type TaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type TaskProgressRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

// TaskListResponse carries the filtered tasks plus where they came from.
// State tells an empty table apart from a failed query; both show mocks.
type TaskListResponse struct {
	Tasks  []model.Task   `json:"tasks"`
	Counts map[string]int `json:"counts"`
	Tab    string         `json:"tab"`
	Source tasks.Source   `json:"source"`
	State  tasks.State    `json:"state"`
}

type TaskResponse struct {
	Task   *model.Task  `json:"task"`
	Source tasks.Source `json:"source"`
}

// List godoc
// @Summary      List tasks
// @Description  Tasks filtered by tab; falls back to sample tasks when the table is empty or unreachable.
// @Tags         Tasks
// @Produce      json
// @Param        tab  query     string  false  "all, open, in_progress or completed"
// @Success      200  {object}  TaskListResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	tab := c.DefaultQuery("tab", tasks.TabAll)
	if !tasks.ValidTab(tab) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unknown tab"})
		return
	}

	res := h.tasks.List(c.Request.Context())
	if res.Err != nil {
		h.log.Warn("serving sample tasks", zap.Error(res.Err), zap.String("state", string(res.State)))
	}

	c.JSON(http.StatusOK, TaskListResponse{
		Tasks:  tasks.Filter(res.Tasks, tab),
		Counts: tasks.Counts(res.Tasks),
		Tab:    tab,
		Source: res.Source,
		State:  res.State,
	})
}

// GetByID godoc
// @Summary  Get a task
// @Tags     Tasks
// @Produce  json
// @Param    id   path      string  true  "Task ID"
// @Success  200  {object}  TaskResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /api/tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	task, source, err := h.tasks.Get(c.Request.Context(), id)
	if err != nil {
		h.taskError(c, err)
		return
	}
	c.JSON(http.StatusOK, TaskResponse{Task: task, Source: source})
}

// Create godoc
// @Summary   Submit a task
// @Tags      Tasks
// @Accept    json
// @Produce   json
// @Param     task  body      TaskRequest  true  "Task"
// @Success   201   {object}  model.Task
// @Failure   422   {object}  ErrorResponse
// @Security  BearerAuth
// @Router    /api/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req TaskRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := wizard.Validate(&req); err != nil {
		if !validationFailed(c, err) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request"})
		}
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), tasks.CreateInput{
		Title:          req.Title,
		Description:    req.Description,
		Priority:       req.Priority,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		EstimatedCost:  req.EstimatedCost,
		Requirements:   req.Requirements,
		TechStack:      req.TechStack,
		AISummary:      req.AISummary,
		VibeCoderID:    req.VibeCoderID,
	})
	if err != nil {
		h.log.Error("create task failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create task"})
		return
	}
	c.JSON(http.StatusCreated, task)
}

// UpdateStatus godoc
// @Summary   Change task status
// @Tags      Tasks
// @Accept    json
// @Produce   json
// @Param     id      path      string             true  "Task ID"
// @Param     status  body      TaskStatusRequest  true  "Status"
// @Success   200     {object}  model.Task
// @Security  BearerAuth
// @Router    /api/tasks/{id}/status [patch]
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req TaskStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.tasks.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.taskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateProgress godoc
// @Summary   Change task progress
// @Tags      Tasks
// @Accept    json
// @Produce   json
// @Param     id        path      string               true  "Task ID"
// @Param     progress  body      TaskProgressRequest  true  "Progress 0..100"
// @Success   200       {object}  model.Task
// @Security  BearerAuth
// @Router    /api/tasks/{id}/progress [patch]
func (h *TaskHandler) UpdateProgress(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req TaskProgressRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.tasks.UpdateProgress(c.Request.Context(), id, *req.Progress)
	if err != nil {
		h.taskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) taskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tasks.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Task not found"})
	case errors.Is(err, tasks.ErrInvalidStatus), errors.Is(err, tasks.ErrInvalidProgress):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		requestLog(c, h.log).Error("task request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Task request failed"})
	}
}
