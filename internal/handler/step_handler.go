package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vibealong/internal/checklist"
	"vibealong/internal/estimate"
	"vibealong/internal/tasks"
)

type StepService interface {
	Get(ctx context.Context, taskID, userID string) (*checklist.Checklist, error)
	AddSteps(ctx context.Context, taskID, userID string, texts []string) (*checklist.Checklist, error)
	Toggle(ctx context.Context, taskID, userID, stepID string) (*checklist.Checklist, error)
}

// StepHandler serves per-user checklists of a task. Task steps of database
// tasks live in task_steps; steps of sample tasks and collaboration setup
// steps live in the local store.
type StepHandler struct {
	remote    StepService
	local     StepService
	tasks     TaskService
	generator estimate.StepGenerator
	log       *zap.Logger
}

func NewStepHandler(remote, local StepService, svc TaskService, generator estimate.StepGenerator, log *zap.Logger) *StepHandler {
	return &StepHandler{remote: remote, local: local, tasks: svc, generator: generator, log: log}
}

type AddStepsRequest struct {
	Steps []string `json:"steps" binding:"required,min=1,max=50,dive,required,max=500"`
}

type ChecklistResponse struct {
	TaskID    string           `json:"task_id"`
	Steps     []checklist.Step `json:"steps"`
	Completed int              `json:"completed"`
	Total     int              `json:"total"`
	Percent   int              `json:"percent"`
}

func checklistResponse(taskID string, list *checklist.Checklist) ChecklistResponse {
	return ChecklistResponse{
		TaskID:    taskID,
		Steps:     list.Steps,
		Completed: list.CompletedCount(),
		Total:     len(list.Steps),
		Percent:   list.Percent(),
	}
}

// storeFor picks the task_steps table for database tasks and the local
// store for sample tasks.
func (h *StepHandler) storeFor(c *gin.Context) (StepService, bool) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil, false
	}
	_, source, err := h.tasks.Get(c.Request.Context(), id)
	if errors.Is(err, tasks.ErrTaskNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Task not found"})
		return nil, false
	}
	if err != nil {
		h.log.Error("load task for steps failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load task"})
		return nil, false
	}
	if source == tasks.SourceRemote {
		return h.remote, true
	}
	return h.local, true
}

// List godoc
// @Summary   Task steps of the current user
// @Tags      Steps
// @Produce   json
// @Param     id   path      string  true  "Task ID"
// @Success   200  {object}  ChecklistResponse
// @Security  BearerAuth
// @Router    /api/tasks/{id}/steps [get]
func (h *StepHandler) List(c *gin.Context) {
	if store, ok := h.storeFor(c); ok {
		h.get(c, store)
	}
}

// Add godoc
// @Summary   Append task steps
// @Tags      Steps
// @Accept    json
// @Produce   json
// @Param     id     path      string           true  "Task ID"
// @Param     steps  body      AddStepsRequest  true  "Step texts"
// @Success   200    {object}  ChecklistResponse
// @Security  BearerAuth
// @Router    /api/tasks/{id}/steps [post]
func (h *StepHandler) Add(c *gin.Context) {
	if store, ok := h.storeFor(c); ok {
		h.add(c, store)
	}
}

// Toggle godoc
// @Summary   Toggle a task step
// @Tags      Steps
// @Produce   json
// @Param     id      path      string  true  "Task ID"
// @Param     stepId  path      string  true  "Step ID"
// @Success   200     {object}  ChecklistResponse
// @Security  BearerAuth
// @Router    /api/tasks/{id}/steps/{stepId}/toggle [post]
func (h *StepHandler) Toggle(c *gin.Context) {
	if store, ok := h.storeFor(c); ok {
		h.toggle(c, store)
	}
}

// Generate godoc
// @Summary   Suggest and append steps for a task
// @Tags      Steps
// @Produce   json
// @Param     id   path      string  true  "Task ID"
// @Success   200  {object}  ChecklistResponse
// @Security  BearerAuth
// @Router    /api/tasks/{id}/steps/generate [post]
func (h *StepHandler) Generate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	task, source, err := h.tasks.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, tasks.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load task"})
		return
	}

	texts, err := h.generator.GenerateSteps(c.Request.Context(), estimate.Input{
		Title:        task.Title,
		Description:  task.Description,
		Requirements: task.Requirements,
		TechStack:    task.TechStack,
	})
	if err != nil {
		h.log.Error("generate steps failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Failed to generate steps"})
		return
	}

	store := h.local
	if source == tasks.SourceRemote {
		store = h.remote
	}
	list, err := store.AddSteps(c.Request.Context(), id.String(), userID.String(), texts)
	if err != nil {
		h.log.Error("save generated steps failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save steps"})
		return
	}
	c.JSON(http.StatusOK, checklistResponse(id.String(), list))
}

// ListSetup godoc
// @Summary   Collaboration setup steps of the current user
// @Tags      Steps
// @Produce   json
// @Param     id   path      string  true  "Task ID"
// @Success   200  {object}  ChecklistResponse
// @Security  BearerAuth
// @Router    /api/tasks/{id}/setup-steps [get]
func (h *StepHandler) ListSetup(c *gin.Context) {
	h.get(c, h.local)
}

// AddSetup godoc
// @Summary   Append collaboration setup steps
// @Tags      Steps
// @Accept    json
// @Produce   json
// @Param     id     path      string           true  "Task ID"
// @Param     steps  body      AddStepsRequest  true  "Step texts"
// @Success   200    {object}  ChecklistResponse
// @Security  BearerAuth
// @Router    /api/tasks/{id}/setup-steps [post]
func (h *StepHandler) AddSetup(c *gin.Context) {
	h.add(c, h.local)
}

// ToggleSetup godoc
// @Summary   Toggle a collaboration setup step
// @Tags      Steps
// @Produce   json
// @Param     id      path      string  true  "Task ID"
// @Param     stepId  path      string  true  "Step ID"
// @Success   200     {object}  ChecklistResponse
// @Security  BearerAuth
// @Router    /api/tasks/{id}/setup-steps/{stepId}/toggle [post]
func (h *StepHandler) ToggleSetup(c *gin.Context) {
	h.toggle(c, h.local)
}

func (h *StepHandler) get(c *gin.Context, store StepService) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID := c.Param("id")
	list, err := store.Get(c.Request.Context(), taskID, userID.String())
	if err != nil {
		h.log.Error("load steps failed", zap.Error(err), zap.String("task_id", taskID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load steps"})
		return
	}
	c.JSON(http.StatusOK, checklistResponse(taskID, list))
}

func (h *StepHandler) add(c *gin.Context, store StepService) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req AddStepsRequest
	if !bindJSON(c, &req) {
		return
	}
	taskID := c.Param("id")
	list, err := store.AddSteps(c.Request.Context(), taskID, userID.String(), req.Steps)
	if err != nil {
		h.log.Error("save steps failed", zap.Error(err), zap.String("task_id", taskID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save steps"})
		return
	}
	c.JSON(http.StatusOK, checklistResponse(taskID, list))
}

func (h *StepHandler) toggle(c *gin.Context, store StepService) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID := c.Param("id")
	list, err := store.Toggle(c.Request.Context(), taskID, userID.String(), c.Param("stepId"))
	if errors.Is(err, checklist.ErrStepNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Step not found"})
		return
	}
	if err != nil {
		h.log.Error("toggle step failed", zap.Error(err), zap.String("task_id", taskID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save steps"})
		return
	}
	c.JSON(http.StatusOK, checklistResponse(taskID, list))
}
