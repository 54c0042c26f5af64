package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Task statuses as stored in the tasks table.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

type Task struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title          string         `gorm:"not null" json:"title"`
	Description    string         `json:"description"`
	Status         string         `gorm:"not null;default:open" json:"status"`
	Priority       string         `gorm:"not null;default:medium" json:"priority"`
	DueDate        *time.Time     `json:"due_date,omitempty"`
	EstimatedHours float64        `json:"estimated_hours"`
	EstimatedCost  float64        `json:"estimated_cost"`
	DeveloperID    *uuid.UUID     `gorm:"type:uuid;index" json:"developer_id,omitempty"`
	VibeCoderID    *uuid.UUID     `gorm:"type:uuid;index" json:"vibe_coder_id,omitempty"`
	Requirements   string         `json:"requirements"`
	TechStack      pq.StringArray `gorm:"type:text[]" json:"tech_stack"`
	AISummary      *string        `json:"ai_summary,omitempty"`
	Progress       int            `gorm:"not null;default:0" json:"progress"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
