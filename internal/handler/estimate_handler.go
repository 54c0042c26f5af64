package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vibealong/internal/estimate"
)

type EstimateHandler struct {
	estimator estimate.Estimator
	generator estimate.StepGenerator
	log       *zap.Logger
}

func NewEstimateHandler(estimator estimate.Estimator, generator estimate.StepGenerator, log *zap.Logger) *EstimateHandler {
	return &EstimateHandler{estimator: estimator, generator: generator, log: log}
}

type EstimateRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	Requirements string   `json:"requirements"`
	TechStack    []string `json:"tech_stack"`
	Platform     string   `json:"platform"`
}

func (r EstimateRequest) input() estimate.Input {
	return estimate.Input{
		Title:        r.Title,
		Description:  r.Description,
		Requirements: r.Requirements,
		TechStack:    r.TechStack,
		Platform:     r.Platform,
	}
}

type GeneratedStepsResponse struct {
	Steps []string `json:"steps"`
}

// Estimate godoc
// @Summary  Estimate hours and cost of a task
// @Tags     AI
// @Accept   json
// @Produce  json
// @Param    task  body      EstimateRequest  true  "Task draft"
// @Success  200   {object}  estimate.Estimate
// @Router   /api/ai/estimate [post]
func (h *EstimateHandler) Estimate(c *gin.Context) {
	var req EstimateRequest
	if !bindJSON(c, &req) {
		return
	}
	est, err := h.estimator.EstimateTask(c.Request.Context(), req.input())
	if err != nil {
		h.upstreamError(c, "estimate", err)
		return
	}
	c.JSON(http.StatusOK, est)
}

// GenerateSteps godoc
// @Summary  Suggest steps for a task draft
// @Tags     AI
// @Accept   json
// @Produce  json
// @Param    task  body      EstimateRequest  true  "Task draft"
// @Success  200   {object}  GeneratedStepsResponse
// @Router   /api/ai/steps [post]
func (h *EstimateHandler) GenerateSteps(c *gin.Context) {
	var req EstimateRequest
	if !bindJSON(c, &req) {
		return
	}
	steps, err := h.generator.GenerateSteps(c.Request.Context(), req.input())
	if err != nil {
		h.upstreamError(c, "generate steps", err)
		return
	}
	c.JSON(http.StatusOK, GeneratedStepsResponse{Steps: steps})
}

func (h *EstimateHandler) upstreamError(c *gin.Context, op string, err error) {
	if errors.Is(err, context.Canceled) {
		// client went away
		c.Status(499)
		return
	}
	requestLog(c, h.log).Error(op+" failed", zap.Error(err))
	c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Failed to " + op})
}
