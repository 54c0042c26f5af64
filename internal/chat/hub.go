// Package chat keeps the collaboration chat of each task in process memory.
// Messages are not persisted and are not delivered anywhere.
package chat

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MaxRoomMessages is how many messages a room keeps; older ones are dropped.
const MaxRoomMessages = 500

var (
	ErrEmptyMessage    = errors.New("message content is empty")
	ErrMessageNotFound = errors.New("message not found")
)

type Sender struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size,omitempty"`
}

type Message struct {
	ID          string       `json:"id"`
	Sender      Sender       `json:"sender"`
	Content     string       `json:"content"`
	Timestamp   time.Time    `json:"timestamp"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Pinned      bool         `json:"pinned"`
}

// Day is one bucket of messages sharing a UTC date.
type Day struct {
	Date     string    `json:"date"`
	Messages []Message `json:"messages"`
}

type room struct {
	messages []Message
	typing   map[string]bool
}

type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*room
	now   func() time.Time
	limit int
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]*room), now: time.Now, limit: MaxRoomMessages}
}

// WithLimit changes how many messages each room keeps.
func (h *Hub) WithLimit(n int) *Hub {
	if n > 0 {
		h.limit = n
	}
	return h
}

// WithClock replaces the timestamp source.
func (h *Hub) WithClock(now func() time.Time) *Hub {
	h.now = now
	return h
}

func (h *Hub) room(taskID string) *room {
	r, ok := h.rooms[taskID]
	if !ok {
		r = &room{typing: make(map[string]bool)}
		h.rooms[taskID] = r
	}
	return r
}

// Post appends a message to the task's room. The server assigns the id and
// timestamp; posting also clears the sender's typing flag.
func (h *Hub) Post(taskID string, sender Sender, content string, attachments []Attachment) (Message, error) {
	content = strings.TrimSpace(content)
	if content == "" && len(attachments) == 0 {
		return Message{}, ErrEmptyMessage
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	r := h.room(taskID)
	msg := Message{
		ID:          uuid.NewString(),
		Sender:      sender,
		Content:     content,
		Timestamp:   h.now().UTC(),
		Attachments: attachments,
	}
	r.messages = append(r.messages, msg)
	if over := len(r.messages) - h.limit; over > 0 {
		r.messages = append([]Message(nil), r.messages[over:]...)
	}
	delete(r.typing, sender.ID)
	return msg, nil
}

// Messages returns a copy of the room in posting order.
func (h *Hub) Messages(taskID string) []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()

	r, ok := h.rooms[taskID]
	if !ok {
		return []Message{}
	}
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

func (h *Hub) ByDay(taskID string) []Day {
	return GroupByDay(h.Messages(taskID))
}

// GroupByDay buckets messages by UTC date, keeping their order.
func GroupByDay(messages []Message) []Day {
	days := []Day{}
	for _, m := range messages {
		date := m.Timestamp.UTC().Format(time.DateOnly)
		if n := len(days); n > 0 && days[n-1].Date == date {
			days[n-1].Messages = append(days[n-1].Messages, m)
			continue
		}
		days = append(days, Day{Date: date, Messages: []Message{m}})
	}
	return days
}

func (h *Hub) TogglePin(taskID, messageID string) (Message, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[taskID]
	if !ok {
		return Message{}, ErrMessageNotFound
	}
	for i := range r.messages {
		if r.messages[i].ID == messageID {
			r.messages[i].Pinned = !r.messages[i].Pinned
			return r.messages[i], nil
		}
	}
	return Message{}, ErrMessageNotFound
}

func (h *Hub) Pinned(taskID string) []Message {
	pinned := []Message{}
	for _, m := range h.Messages(taskID) {
		if m.Pinned {
			pinned = append(pinned, m)
		}
	}
	return pinned
}

func (h *Hub) SetTyping(taskID, userID string, typing bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !typing {
		if r, ok := h.rooms[taskID]; ok {
			delete(r.typing, userID)
		}
		return
	}
	h.room(taskID).typing[userID] = true
}

// Typing lists the users currently typing in the room, excluding except.
func (h *Hub) Typing(taskID, except string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := []string{}
	r, ok := h.rooms[taskID]
	if !ok {
		return users
	}
	for id := range r.typing {
		if id != except {
			users = append(users, id)
		}
	}
	return users
}
