package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment represents a comment on a blog post. Replies reference their
// parent comment; only one level of nesting is cascaded on delete.
type Comment struct {
	ID              uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	PostID          uuid.UUID  `json:"postId" db:"post_id" gorm:"type:uuid;not null;index"`
	Post            *BlogPost  `json:"post,omitempty" gorm:"foreignKey:PostID;references:ID"`
	AuthorID        uuid.UUID  `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index"`
	Author          *User      `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
	Content         string     `json:"content" db:"content" gorm:"type:text;not null"`
	ParentCommentID *uuid.UUID `json:"parentCommentId,omitempty" db:"parent_comment_id" gorm:"type:uuid;index"`
	ParentComment   *Comment   `json:"parentComment,omitempty" gorm:"foreignKey:ParentCommentID;references:ID"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
