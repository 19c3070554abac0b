package users

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID          uuid.UUID   `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name        string      `json:"name" gorm:"not null"`
	Email       string      `json:"email" gorm:"uniqueIndex;not null"`
	Password    string      `json:"-" gorm:"not null"` // hide in json
	Role        Role        `json:"role" gorm:"not null;default:'USER'"`
	Profile     Profile     `json:"profile" gorm:"embedded;embeddedPrefix:profile_"`
	Preferences Preferences `json:"preferences" gorm:"embedded;embeddedPrefix:pref_"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Profile holds optional contact details
type Profile struct {
	Phone       string     `json:"phone,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Address     string     `json:"address,omitempty"`
}

// Preferences holds per-user settings
type Preferences struct {
	FavoriteGenres     []string `json:"favorite_genres,omitempty" gorm:"serializer:json"`
	EmailNotifications bool     `json:"email_notifications" gorm:"default:true"`
	SMSNotifications   bool     `json:"sms_notifications" gorm:"default:false"`
}

func IsValidRole(role string) bool {
	switch role {
	case string(RoleUser), string(RoleAdmin):
		return true
	default:
		return false
	}
}
