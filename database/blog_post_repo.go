package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/blogger-backend/models"
)

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// PostFilter narrows a paginated post listing. AuthorID of uuid.Nil means
// any author; Search and Tag are case-insensitive substring matches.
type PostFilter struct {
	Page          int
	Limit         int
	Search        string
	Tag           string
	AuthorID      uuid.UUID
	IncludeDrafts bool
}

// FindByID returns a blog post by ID, or nil when no such post exists.
func (r *BlogPostRepo) FindByID(id uuid.UUID) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindByIDWithAuthor returns a blog post by ID with its author populated.
func (r *BlogPostRepo) FindByIDWithAuthor(id uuid.UUID) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.Preload("Author").First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindBySlugWithAuthor returns a blog post by slug with its author populated.
func (r *BlogPostRepo) FindBySlugWithAuthor(slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.Preload("Author").First(&post, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UniqueSlug derives a slug from the title and probes for collisions,
// appending -1, -2, ... until a free slug is found. excludeID skips the post
// being edited so a title edit can keep its own slug.
func (r *BlogPostRepo) UniqueSlug(title string, excludeID uuid.UUID) (string, error) {
	candidate := Slugify(title)
	slug := candidate
	for counter := 1; ; counter++ {
		taken, err := r.slugTaken(slug, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", candidate, counter)
	}
}

func (r *BlogPostRepo) slugTaken(slug string, excludeID uuid.UUID) (bool, error) {
	query := r.db.Model(&models.BlogPost{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateWithUniqueSlug assigns a collision-free slug derived from the post's
// title and inserts the post. The slug column carries a unique index, so two
// concurrent creates of the same title cannot both win: the loser's insert
// fails with a duplicate-key error and is retried with the next probe result.
func (r *BlogPostRepo) CreateWithUniqueSlug(post *models.BlogPost) error {
	const maxAttempts = 5
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		var slug string
		slug, err = r.UniqueSlug(post.Title, uuid.Nil)
		if err != nil {
			return err
		}
		post.Slug = slug
		err = r.db.Create(post).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return err
	}
	return err
}

// Update persists changes to an existing blog post
func (r *BlogPostRepo) Update(post *models.BlogPost) error {
	return r.db.Save(post).Error
}

// Delete removes a blog post from the database by id
func (r *BlogPostRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.BlogPost{}, "id = ?", id).Error
}

// List returns a page of posts matching the filter, newest first, with
// authors populated, plus the total match count.
func (r *BlogPostRepo) List(filter PostFilter) ([]*models.BlogPost, int64, error) {
	base := func() *gorm.DB {
		query := r.db.Model(&models.BlogPost{})
		if !filter.IncludeDrafts {
			query = query.Where("is_draft = ?", false)
		}
		if filter.AuthorID != uuid.Nil {
			query = query.Where("author_id = ?", filter.AuthorID)
		}
		if filter.Search != "" {
			pattern := "%" + strings.ToLower(filter.Search) + "%"
			query = query.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern)
		}
		if filter.Tag != "" {
			query = query.Where("LOWER(tags) LIKE ?", "%"+strings.ToLower(filter.Tag)+"%")
		}
		return query
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.BlogPost
	err := base().
		Preload("Author").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// IncrementViews bumps the view counter by one as a single atomic store
// update, so concurrent reads never lose a count.
func (r *BlogPostRepo) IncrementViews(id uuid.UUID) error {
	return r.db.Model(&models.BlogPost{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// IncrementLikes bumps the like counter by one atomically and returns the
// new count. There is no per-user dedup; repeat likes keep counting.
func (r *BlogPostRepo) IncrementLikes(id uuid.UUID) (int64, error) {
	err := r.db.Model(&models.BlogPost{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + 1")).Error
	if err != nil {
		return 0, err
	}

	var likes int64
	err = r.db.Model(&models.BlogPost{}).
		Select("likes").
		Where("id = ?", id).
		Scan(&likes).Error
	return likes, err
}

// CountByAuthor counts the author's posts; a non-nil draft narrows the count
// to drafts or published posts.
func (r *BlogPostRepo) CountByAuthor(authorID uuid.UUID, draft *bool) (int64, error) {
	query := r.db.Model(&models.BlogPost{}).Where("author_id = ?", authorID)
	if draft != nil {
		query = query.Where("is_draft = ?", *draft)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

// SumViewsByAuthor totals the view counters across the author's posts.
func (r *BlogPostRepo) SumViewsByAuthor(authorID uuid.UUID) (int64, error) {
	return r.sumByAuthor(authorID, "views")
}

// SumLikesByAuthor totals the like counters across the author's posts.
func (r *BlogPostRepo) SumLikesByAuthor(authorID uuid.UUID) (int64, error) {
	return r.sumByAuthor(authorID, "likes")
}

func (r *BlogPostRepo) sumByAuthor(authorID uuid.UUID, column string) (int64, error) {
	var total int64
	err := r.db.Model(&models.BlogPost{}).
		Select("COALESCE(SUM("+column+"), 0)").
		Where("author_id = ?", authorID).
		Scan(&total).Error
	return total, err
}

// RecentByAuthor returns the author's newest posts, drafts included.
func (r *BlogPostRepo) RecentByAuthor(authorID uuid.UUID, limit int) ([]*models.BlogPost, error) {
	var posts []*models.BlogPost
	err := r.db.
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// PopularByAuthor returns the author's published posts ranked by view or
// like count. Any sortBy other than "likes" ranks by views.
func (r *BlogPostRepo) PopularByAuthor(authorID uuid.UUID, sortBy string, limit int) ([]*models.BlogPost, string, error) {
	sortField := "views"
	if sortBy == "likes" {
		sortField = "likes"
	}

	var posts []*models.BlogPost
	err := r.db.
		Where("author_id = ? AND is_draft = ?", authorID, false).
		Order(sortField + " DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, sortField, err
}
