package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/blogger-backend/models"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// FindByID returns a comment by ID, or nil when no such comment exists.
func (r *CommentRepo) FindByID(id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.First(&comment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByIDWithAuthor returns a comment by ID with its author populated.
func (r *CommentRepo) FindByIDWithAuthor(id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Author").First(&comment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Add inserts a new comment into the database
func (r *CommentRepo) Add(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// Update persists changes to an existing comment
func (r *CommentRepo) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// ListForPost returns every comment on a post, replies included, flat and
// newest first, with authors and parent comments populated.
func (r *CommentRepo) ListForPost(postID uuid.UUID) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.
		Preload("Author").
		Preload("ParentComment").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// DeleteCascade removes a comment together with its direct replies.
// Grandchild replies are left in place; the cascade is one level deep.
func (r *CommentRepo) DeleteCascade(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Comment{}, "parent_comment_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, "id = ?", id).Error
	})
}

// DeleteForPost removes every comment on a post.
func (r *CommentRepo) DeleteForPost(postID uuid.UUID) error {
	return r.db.Delete(&models.Comment{}, "post_id = ?", postID).Error
}

// CountForAuthorPosts counts comments across every post written by the
// given author.
func (r *CommentRepo) CountForAuthorPosts(authorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).
		Where("post_id IN (?)", r.db.Model(&models.BlogPost{}).
			Select("id").
			Where("author_id = ?", authorID)).
		Count(&count).Error
	return count, err
}

// RecentForAuthorPosts returns the newest comments left on the author's
// posts, with the commenting user and the post populated.
func (r *CommentRepo) RecentForAuthorPosts(authorID uuid.UUID, limit int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.
		Preload("Author").
		Preload("Post").
		Where("post_id IN (?)", r.db.Model(&models.BlogPost{}).
			Select("id").
			Where("author_id = ?", authorID)).
		Order("created_at DESC").
		Limit(limit).
		Find(&comments).Error
	return comments, err
}
