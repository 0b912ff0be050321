package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles. Every account starts as a reader; admins can delete any
// post or comment.
const (
	RoleReader = "reader"
	RoleAdmin  = "admin"
)

// User represents a registered account
type User struct {
	ID              uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name            string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email           string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	Password        string    `json:"-" db:"password" gorm:"type:text;not null"`
	Role            string    `json:"role" db:"role" gorm:"type:text;not null;default:reader"`
	ProfileImageURL *string   `json:"profileImageUrl,omitempty" db:"profile_image_url" gorm:"type:text"`
	Bio             *string   `json:"bio,omitempty" db:"bio" gorm:"type:text"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleReader
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
