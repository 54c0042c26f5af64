package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vibealong/internal/content"
)

type ContentHandler struct {
	now func() time.Time
}

func NewContentHandler() *ContentHandler {
	return &ContentHandler{now: time.Now}
}

// Pages godoc
// @Summary  Marketing page slugs
// @Tags     Content
// @Produce  json
// @Success  200  {object}  map[string][]string
// @Router   /api/pages [get]
func (h *ContentHandler) Pages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pages": content.Slugs()})
}

// Page godoc
// @Summary  Marketing page content
// @Tags     Content
// @Produce  json
// @Param    slug  path      string  true  "landing, for-developers, vibe-coders, showcase or demo"
// @Success  200   {object}  content.Page
// @Failure  404   {object}  ErrorResponse
// @Router   /api/pages/{slug} [get]
func (h *ContentHandler) Page(c *gin.Context) {
	page, err := content.Get(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Page not found"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// Landing serves the landing page at the site root.
func (h *ContentHandler) Landing(c *gin.Context) {
	page, _ := content.Get("landing")
	c.JSON(http.StatusOK, page)
}

// Earnings godoc
// @Summary   Developer earnings dashboard
// @Tags      Dashboards
// @Produce   json
// @Success   200  {object}  content.Earnings
// @Security  BearerAuth
// @Router    /api/dashboard/earnings [get]
func (h *ContentHandler) Earnings(c *gin.Context) {
	c.JSON(http.StatusOK, content.MockEarnings(h.now()))
}

// Analytics godoc
// @Summary   Developer analytics dashboard
// @Tags      Dashboards
// @Produce   json
// @Success   200  {object}  content.Analytics
// @Security  BearerAuth
// @Router    /api/dashboard/analytics [get]
func (h *ContentHandler) Analytics(c *gin.Context) {
	c.JSON(http.StatusOK, content.MockAnalytics(h.now()))
}
