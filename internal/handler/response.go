package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"vibealong/internal/middleware"
	"vibealong/internal/wizard"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string             `json:"error"`
	Fields wizard.FieldErrors `json:"fields,omitempty"`
}

// bindJSON decodes the request body. Field rules are checked separately by
// the wizard validator so every form reports errors the same way.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return false
	}
	return true
}

// validationFailed writes the 422 body for a wizard.ValidationError and
// reports whether err was one.
func validationFailed(c *gin.Context, err error) bool {
	var verr *wizard.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Fields: verr.Fields})
	return true
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name + " format"})
		return uuid.Nil, false
	}
	return id, true
}

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
		return uuid.Nil, false
	}
	return userID, true
}

// requestLog tags log lines with the id RequestLogger assigned.
func requestLog(c *gin.Context, log *zap.Logger) *zap.Logger {
	return log.With(zap.String("request_id", middleware.GetRequestID(c.Request.Context())))
}
