package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProviderPassword = "password"
	ProviderOAuth    = "oauth"
)

// User is an account. Accounts created through the OAuth callback have no
// password hash and carry the provider subject instead.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Email          string    `gorm:"uniqueIndex;not null"`
	HashedPassword string
	Name           string    `gorm:"not null"`
	Provider       string    `gorm:"not null;default:password"`
	Subject        string    `gorm:"index"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}
