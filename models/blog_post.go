package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlogPost represents a blog post with its publication state and counters.
// Tags are stored as a single comma-separated string.
type BlogPost struct {
	ID            uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title         string    `json:"title" db:"title" gorm:"type:text;not null"`
	Slug          string    `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Content       string    `json:"content" db:"content" gorm:"type:text;not null"`
	Tags          string    `json:"tags" db:"tags" gorm:"type:text;not null;default:''"`
	AuthorID      uuid.UUID `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index"`
	Author        *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
	IsDraft       bool      `json:"isDraft" db:"is_draft" gorm:"not null;default:false"`
	GeneratedByAI bool      `json:"generatedByAI" db:"generated_by_ai" gorm:"not null;default:false"`
	Views         int64     `json:"views" db:"views" gorm:"not null;default:0"`
	Likes         int64     `json:"likes" db:"likes" gorm:"not null;default:0"`
	CoverImageURL *string   `json:"coverImageUrl,omitempty" db:"cover_image_url" gorm:"type:text"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

func (p *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
