package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blogger-backend/database"
	"github.com/rpupo63/blogger-backend/errs"
	"github.com/rpupo63/blogger-backend/models"
)

type blogPostHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo *database.BlogPostRepo
	commentRepo  *database.CommentRepo
	uploadDir    string
}

func newBlogPostHandler(blogPostRepo *database.BlogPostRepo, commentRepo *database.CommentRepo, uploadDir string) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogPostRepo: blogPostRepo,
		commentRepo:  commentRepo,
		uploadDir:    uploadDir,
	}
}

// parseIntQuery reads an integer query parameter, falling back on absent or
// unparsable values.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || value < 1 {
		return defaultValue
	}
	return value
}

func parsePostID(r *http.Request) (uuid.UUID, error) {
	postIDStr := chi.URLParam(r, "postID")
	if postIDStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing postID")
	}
	postID, err := uuid.Parse(postIDStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid postID")
	}
	return postID, nil
}

// createPost creates a new blog post with a collision-free slug
func (h blogPostHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := ctxGetUser(r.Context())

		var req struct {
			Title         string `json:"title"`
			Content       string `json:"content"`
			Tags          string `json:"tags"`
			IsDraft       bool   `json:"isDraft"`
			GeneratedByAI bool   `json:"generatedByAI"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Title == "" || req.Content == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Title and content are required"))
			return
		}

		post := models.BlogPost{
			Title:         req.Title,
			Content:       req.Content,
			Tags:          req.Tags,
			AuthorID:      caller.ID,
			IsDraft:       req.IsDraft,
			GeneratedByAI: req.GeneratedByAI,
		}
		if err := h.blogPostRepo.CreateWithUniqueSlug(&post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create blog post", "blog_post", err))
			return
		}

		// Reload to return the post with its author populated
		createdPost, err := h.blogPostRepo.FindByIDWithAuthor(post.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created blog post", "blog_post", err))
			return
		}

		h.responder.WriteStatusJSON(w, http.StatusCreated, map[string]any{
			"message": "Blog post created successfully",
			"post":    createdPost,
		})
	}
}

// getAllPosts lists published posts, newest first, with optional search and
// tag filters and skip/limit pagination
func (h blogPostHandler) getAllPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := parseIntQuery(r, "page", 1)
		limit := parseIntQuery(r, "limit", 10)

		posts, total, err := h.blogPostRepo.List(database.PostFilter{
			Page:   page,
			Limit:  limit,
			Search: r.URL.Query().Get("search"),
			Tag:    r.URL.Query().Get("tag"),
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog posts", "blog_posts", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"posts":      posts,
			"pagination": paginate(total, page, limit),
		})
	}
}

func paginate(total int64, page, limit int) Pagination {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return Pagination{
		Total: total,
		Page:  page,
		Pages: pages,
		Limit: limit,
	}
}

// getPostBySlug fetches a post by slug and counts the view
func (h blogPostHandler) getPostBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		post, err := h.blogPostRepo.FindBySlugWithAuthor(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Post not found"))
			return
		}

		if err := h.blogPostRepo.IncrementViews(post.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("increment views", "blog_post", err))
			return
		}
		post.Views++

		h.responder.WriteJSON(w, map[string]any{
			"post": post,
		})
	}
}

// getUserPosts lists the caller's posts, drafts included
func (h blogPostHandler) getUserPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := ctxGetUser(r.Context())
		page := parseIntQuery(r, "page", 1)
		limit := parseIntQuery(r, "limit", 10)

		posts, total, err := h.blogPostRepo.List(database.PostFilter{
			Page:          page,
			Limit:         limit,
			AuthorID:      caller.ID,
			IncludeDrafts: true,
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog posts", "blog_posts", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"posts":      posts,
			"pagination": paginate(total, page, limit),
		})
	}
}

// updatePost applies a partial update; a title change regenerates the slug
func (h blogPostHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := ctxGetUser(r.Context())

		postID, err := parsePostID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.blogPostRepo.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Post not found"))
			return
		}

		if post.AuthorID != caller.ID {
			h.responder.WriteError(w, errs.NewForbiddenError("Not authorized to update this post"))
			return
		}

		var req struct {
			Title   string  `json:"title"`
			Content string  `json:"content"`
			Tags    *string `json:"tags"`
			IsDraft *bool   `json:"isDraft"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Title != "" && req.Title != post.Title {
			slug, err := h.blogPostRepo.UniqueSlug(req.Title, post.ID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("generate slug", "blog_post", err))
				return
			}
			post.Slug = slug
		}

		if req.Title != "" {
			post.Title = req.Title
		}
		if req.Content != "" {
			post.Content = req.Content
		}
		if req.Tags != nil {
			post.Tags = *req.Tags
		}
		if req.IsDraft != nil {
			post.IsDraft = *req.IsDraft
		}

		if err := h.blogPostRepo.Update(post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update blog post", "blog_post", err))
			return
		}

		updatedPost, err := h.blogPostRepo.FindByIDWithAuthor(postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated blog post", "blog_post", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Post updated successfully",
			"post":    updatedPost,
		})
	}
}

// deletePost removes a post and every comment on it; allowed for the author
// or an admin
func (h blogPostHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := ctxGetUser(r.Context())

		postID, err := parsePostID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.blogPostRepo.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Post not found"))
			return
		}

		if !canModify(post.AuthorID, caller) {
			h.responder.WriteError(w, errs.NewForbiddenError("Not authorized to delete this post"))
			return
		}

		// Delete all comments associated with this post first
		if err := h.commentRepo.DeleteForPost(postID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete comments", "comments", err))
			return
		}

		if err := h.blogPostRepo.Delete(postID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete blog post", "blog_post", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Post and associated comments deleted successfully",
		})
	}
}

// toggleDraft flips the draft flag; author only
func (h blogPostHandler) toggleDraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := ctxGetUser(r.Context())

		postID, err := parsePostID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.blogPostRepo.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Post not found"))
			return
		}

		if post.AuthorID != caller.ID {
			h.responder.WriteError(w, errs.NewForbiddenError("Not authorized to update this post"))
			return
		}

		post.IsDraft = !post.IsDraft
		if err := h.blogPostRepo.Update(post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update blog post", "blog_post", err))
			return
		}

		message := "Post published successfully"
		if post.IsDraft {
			message = "Post saved as draft successfully"
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": message,
			"post":    post,
		})
	}
}

// likePost increments the like counter; no authentication and no dedup
func (h blogPostHandler) likePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := parsePostID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.blogPostRepo.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Post not found"))
			return
		}

		likes, err := h.blogPostRepo.IncrementLikes(postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("increment likes", "blog_post", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Post liked successfully",
			"likes":   likes,
		})
	}
}

// updateCoverImage stores an uploaded cover image; author only
func (h blogPostHandler) updateCoverImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := ctxGetUser(r.Context())

		postID, err := parsePostID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.blogPostRepo.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Post not found"))
			return
		}

		if post.AuthorID != caller.ID {
			h.responder.WriteError(w, errs.NewForbiddenError("Not authorized to update this post"))
			return
		}

		imagePath, err := saveUploadedFile(r, "image", h.uploadDir)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post.CoverImageURL = &imagePath
		if err := h.blogPostRepo.Update(post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update blog post", "blog_post", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Cover image updated successfully",
			"post":    post,
		})
	}
}
