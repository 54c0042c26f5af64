package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Account roles. Each role has its own onboarding wizard and profile table.
const (
	RoleDeveloper = "developer"
	RoleVibeCoder = "vibe_coder"
	RoleAgency    = "agency"
)

func ValidRole(role string) bool {
	return role == RoleDeveloper || role == RoleVibeCoder || role == RoleAgency
}

// Profile is the role-independent record every signed-in account has.
type Profile struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email               string    `gorm:"uniqueIndex;not null"`
	FullName            string
	Role                string `gorm:"not null"`
	OnboardingCompleted bool   `gorm:"not null;default:false"`
	AvatarURL           string
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time
}

type DeveloperProfile struct {
	ProfileID       uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Skills          pq.StringArray `gorm:"type:text[]"`
	ExperienceYears int
	HourlyRate      float64
	Availability    string
	Bio             string
	AvatarURL       string
	UpdatedAt       time.Time
}

type VibeCoderProfile struct {
	ProfileID uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Platforms pq.StringArray `gorm:"type:text[]"`
	Goals     string
	Budget    string
	UpdatedAt time.Time
}

type AgencyProfile struct {
	ProfileID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyName string    `gorm:"not null"`
	Website     string
	TeamSize    int
	Services    pq.StringArray `gorm:"type:text[]"`
	UpdatedAt   time.Time
}
