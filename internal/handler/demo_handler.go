package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vibealong/internal/content"
	"vibealong/internal/demo"
)

type DemoHandler struct {
	scheduler *demo.Scheduler
}

func NewDemoHandler(scheduler *demo.Scheduler) *DemoHandler {
	return &DemoHandler{scheduler: scheduler}
}

type DemoSessionResponse struct {
	ID    string             `json:"id"`
	State demo.State         `json:"state"`
	Steps []content.DemoStep `json:"steps,omitempty"`
}

type DemoGoToRequest struct {
	Step *int `json:"step" binding:"required"`
}

// Create godoc
// @Summary  Start a product tour session
// @Tags     Demo
// @Produce  json
// @Success  201  {object}  DemoSessionResponse
// @Router   /api/demo/sessions [post]
func (h *DemoHandler) Create(c *gin.Context) {
	steps := content.DemoSteps()
	id, state, err := h.scheduler.Create(len(steps))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start demo"})
		return
	}
	if c.Query("autoplay") == "true" {
		if state, err = h.scheduler.Play(id); err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start demo"})
			return
		}
	}
	c.JSON(http.StatusCreated, DemoSessionResponse{ID: id, State: state, Steps: steps})
}

// Get godoc
// @Summary  Product tour position
// @Tags     Demo
// @Produce  json
// @Param    id   path      string  true  "Session ID"
// @Success  200  {object}  DemoSessionResponse
// @Router   /api/demo/sessions/{id} [get]
func (h *DemoHandler) Get(c *gin.Context) {
	h.respond(c, h.scheduler.State)
}

// Play godoc
// @Summary  Auto-advance the tour
// @Tags     Demo
// @Produce  json
// @Param    id   path      string  true  "Session ID"
// @Success  200  {object}  DemoSessionResponse
// @Router   /api/demo/sessions/{id}/play [post]
func (h *DemoHandler) Play(c *gin.Context) {
	h.respond(c, h.scheduler.Play)
}

// Pause godoc
// @Summary  Stop auto-advance
// @Tags     Demo
// @Produce  json
// @Param    id   path      string  true  "Session ID"
// @Success  200  {object}  DemoSessionResponse
// @Router   /api/demo/sessions/{id}/pause [post]
func (h *DemoHandler) Pause(c *gin.Context) {
	h.respond(c, h.scheduler.Pause)
}

// Reset godoc
// @Summary  Back to the first slide
// @Tags     Demo
// @Produce  json
// @Param    id   path      string  true  "Session ID"
// @Success  200  {object}  DemoSessionResponse
// @Router   /api/demo/sessions/{id}/reset [post]
func (h *DemoHandler) Reset(c *gin.Context) {
	h.respond(c, h.scheduler.Reset)
}

// GoTo godoc
// @Summary  Jump to a slide
// @Tags     Demo
// @Accept   json
// @Produce  json
// @Param    id    path      string           true  "Session ID"
// @Param    step  body      DemoGoToRequest  true  "Zero-based slide"
// @Success  200   {object}  DemoSessionResponse
// @Router   /api/demo/sessions/{id}/goto [post]
func (h *DemoHandler) GoTo(c *gin.Context) {
	var req DemoGoToRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respond(c, func(id string) (demo.State, error) {
		return h.scheduler.GoTo(id, *req.Step)
	})
}

func (h *DemoHandler) respond(c *gin.Context, fn func(id string) (demo.State, error)) {
	id := c.Param("id")
	state, err := fn(id)
	switch {
	case errors.Is(err, demo.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Demo session not found"})
	case errors.Is(err, demo.ErrStepOutside):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Demo request failed"})
	default:
		c.JSON(http.StatusOK, DemoSessionResponse{ID: id, State: state})
	}
}
