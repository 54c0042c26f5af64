package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vibealong/internal/chat"
	"vibealong/internal/middleware"
	"vibealong/internal/tasks"
)

type ChatHandler struct {
	hub   *chat.Hub
	tasks TaskService
	log   *zap.Logger
}

func NewChatHandler(hub *chat.Hub, svc TaskService, log *zap.Logger) *ChatHandler {
	return &ChatHandler{hub: hub, tasks: svc, log: log}
}

// PostMessageRequest is a chat message. The sender id and role come from
// the session; only the display name and avatar are taken from the body.
type PostMessageRequest struct {
	Name        string            `json:"name" binding:"required,max=100"`
	Avatar      string            `json:"avatar" binding:"max=500"`
	Content     string            `json:"content" binding:"max=4000"`
	Attachments []chat.Attachment `json:"attachments" binding:"max=10"`
}

type TypingRequest struct {
	Typing bool `json:"typing"`
}

// room resolves :id to a task known to the board, database or sample.
func (h *ChatHandler) room(c *gin.Context) (string, bool) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return "", false
	}
	if _, _, err := h.tasks.Get(c.Request.Context(), id); err != nil {
		if errors.Is(err, tasks.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Task not found"})
			return "", false
		}
		requestLog(c, h.log).Error("chat task lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Task request failed"})
		return "", false
	}
	return id.String(), true
}

// Messages godoc
// @Summary  Chat messages of a task
// @Tags     Chat
// @Produce  json
// @Param    id     path      string  true   "Task ID"
// @Param    group  query     string  false  "day to group by UTC date"
// @Success  200    {array}   chat.Message
// @Security BearerAuth
// @Router   /api/tasks/{id}/messages [get]
func (h *ChatHandler) Messages(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	taskID := id.String()
	if c.Query("group") == "day" {
		c.JSON(http.StatusOK, h.hub.ByDay(taskID))
		return
	}
	c.JSON(http.StatusOK, h.hub.Messages(taskID))
}

// Post godoc
// @Summary  Post a chat message
// @Tags     Chat
// @Accept   json
// @Produce  json
// @Param    id       path      string              true  "Task ID"
// @Param    message  body      PostMessageRequest  true  "Message"
// @Success  201      {object}  chat.Message
// @Security BearerAuth
// @Router   /api/tasks/{id}/messages [post]
func (h *ChatHandler) Post(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := h.room(c)
	if !ok {
		return
	}
	var req PostMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	sender := chat.Sender{
		ID:     userID.String(),
		Name:   req.Name,
		Role:   c.GetString(middleware.RoleKey),
		Avatar: req.Avatar,
	}
	msg, err := h.hub.Post(taskID, sender, req.Content, req.Attachments)
	if errors.Is(err, chat.ErrEmptyMessage) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Fields: map[string]string{"content": "is required"}})
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// TogglePin godoc
// @Summary  Pin or unpin a message
// @Tags     Chat
// @Produce  json
// @Param    id         path      string  true  "Task ID"
// @Param    messageId  path      string  true  "Message ID"
// @Success  200        {object}  chat.Message
// @Security BearerAuth
// @Router   /api/tasks/{id}/messages/{messageId}/pin [post]
func (h *ChatHandler) TogglePin(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	msg, err := h.hub.TogglePin(id.String(), c.Param("messageId"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Message not found"})
		return
	}
	c.JSON(http.StatusOK, msg)
}

// Pinned godoc
// @Summary  Pinned messages of a task
// @Tags     Chat
// @Produce  json
// @Param    id  path     string  true  "Task ID"
// @Success  200 {array}  chat.Message
// @Security BearerAuth
// @Router   /api/tasks/{id}/messages/pinned [get]
func (h *ChatHandler) Pinned(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.hub.Pinned(id.String()))
}

// SetTyping godoc
// @Summary  Set the typing indicator
// @Tags     Chat
// @Accept   json
// @Param    id      path  string         true  "Task ID"
// @Param    typing  body  TypingRequest  true  "Typing flag"
// @Success  204
// @Security BearerAuth
// @Router   /api/tasks/{id}/typing [put]
func (h *ChatHandler) SetTyping(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := h.room(c)
	if !ok {
		return
	}
	var req TypingRequest
	if !bindJSON(c, &req) {
		return
	}
	h.hub.SetTyping(taskID, userID.String(), req.Typing)
	c.Status(http.StatusNoContent)
}

// Typing godoc
// @Summary  Users typing in a task chat
// @Tags     Chat
// @Produce  json
// @Param    id      path   string  true   "Task ID"
// @Param    except  query  string  false  "User ID to leave out"
// @Success  200     {object}  map[string][]string
// @Security BearerAuth
// @Router   /api/tasks/{id}/typing [get]
func (h *ChatHandler) Typing(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"typing": h.hub.Typing(id.String(), c.Query("except"))})
}
