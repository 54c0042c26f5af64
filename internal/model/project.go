package model

import (
	"time"

	"github.com/google/uuid"
)

// Vibe-coding tools a project can be built with.
var Platforms = []string{"lovable", "bolt", "v0", "replit", "cursor", "windsurf", "other"}

// ValidPlatform reports whether p is one of Platforms.
func ValidPlatform(p string) bool {
	for _, known := range Platforms {
		if known == p {
			return true
		}
	}
	return false
}

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VibeCoderID uuid.UUID `gorm:"type:uuid;not null;index" json:"vibe_coder_id"`
	Name        string    `gorm:"not null" json:"name"`
	Platform    string    `gorm:"not null" json:"platform"`
	Description string    `json:"description"`
	Stage       string    `json:"stage"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Project) TableName() string { return "vibe_projects" }

type VibeCoder struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
