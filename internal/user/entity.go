package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthProvider string

const (
	ProviderEmail  AuthProvider = "email"
	ProviderGoogle AuthProvider = "google"
)

type User struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string       `gorm:"type:text;not null" json:"name"`
	Email         string       `gorm:"type:text;not null;uniqueIndex" json:"email"`
	PasswordHash  string       `gorm:"column:password_hash;type:text" json:"-"`
	AuthProvider  AuthProvider `gorm:"type:text;not null;default:email" json:"auth_provider"`
	Avatar        string       `gorm:"type:text" json:"avatar"`
	EmailVerified bool         `gorm:"not null;default:false" json:"email_verified"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// DisplayAvatar falls back to the upper-cased initial of the name.
func (u *User) DisplayAvatar() string {
	if u.Avatar != "" {
		return u.Avatar
	}
	for _, r := range u.Name {
		return strings.ToUpper(string(r))
	}
	return ""
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
