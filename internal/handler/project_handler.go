package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"vibealong/internal/model"
	"vibealong/internal/repository"
)

type ProjectStore interface {
	MostRecent(ctx context.Context, vibeCoderID uuid.UUID) (*model.Project, error)
	ListByVibeCoder(ctx context.Context, vibeCoderID uuid.UUID) ([]model.Project, error)
}

type ProjectHandler struct {
	projects ProjectStore
	log      *zap.Logger
}

func NewProjectHandler(projects ProjectStore, log *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, log: log}
}

// Latest godoc
// @Summary  Most recent project of a vibe coder
// @Tags     Projects
// @Produce  json
// @Param    id   path      string  true  "Vibe coder ID"
// @Success  200  {object}  model.Project
// @Failure  404  {object}  ErrorResponse
// @Router   /api/vibe-coders/{id}/projects/latest [get]
func (h *ProjectHandler) Latest(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	project, err := h.projects.MostRecent(c.Request.Context(), id)
	if errors.Is(err, repository.ErrProjectNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Project not found"})
		return
	}
	if err != nil {
		h.log.Error("load latest project failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load project"})
		return
	}
	c.JSON(http.StatusOK, project)
}

// List godoc
// @Summary  Projects of a vibe coder, newest first
// @Tags     Projects
// @Produce  json
// @Param    id   path     string  true  "Vibe coder ID"
// @Success  200  {array}  model.Project
// @Router   /api/vibe-coders/{id}/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	projects, err := h.projects.ListByVibeCoder(c.Request.Context(), id)
	if err != nil {
		h.log.Error("list projects failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load projects"})
		return
	}
	if projects == nil {
		projects = []model.Project{}
	}
	c.JSON(http.StatusOK, projects)
}
