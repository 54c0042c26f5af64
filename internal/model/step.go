package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskStep is one checklist item of a task, owned by the user who set it up.
type TaskStep struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Text      string    `gorm:"not null"`
	Completed bool      `gorm:"not null;default:false"`
	Position  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
