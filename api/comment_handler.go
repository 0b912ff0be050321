package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blogger-backend/database"
	"github.com/rpupo63/blogger-backend/errs"
	"github.com/rpupo63/blogger-backend/models"
)

type commentHandler struct {
	responder    Responder
	logger       zerolog.Logger
	commentRepo  *database.CommentRepo
	blogPostRepo *database.BlogPostRepo
}

func newCommentHandler(commentRepo *database.CommentRepo, blogPostRepo *database.BlogPostRepo) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		commentRepo:  commentRepo,
		blogPostRepo: blogPostRepo,
	}
}

func parseCommentID(r *http.Request) (uuid.UUID, error) {
	commentIDStr := chi.URLParam(r, "commentID")
	if commentIDStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing commentID")
	}
	commentID, err := uuid.Parse(commentIDStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid commentID")
	}
	return commentID, nil
}

// createComment adds a comment or a reply; both the post and any named
// parent comment must exist
func (h commentHandler) createComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := ctxGetUser(r.Context())

		var req struct {
			PostID        uuid.UUID  `json:"postId"`
			Content       string     `json:"content"`
			ParentComment *uuid.UUID `json:"parentComment"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.PostID == uuid.Nil || req.Content == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Post ID and content are required"))
			return
		}

		post, err := h.blogPostRepo.FindByID(req.PostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Post not found"))
			return
		}

		if req.ParentComment != nil {
			parent, err := h.commentRepo.FindByID(*req.ParentComment)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find parent comment", "comment", err))
				return
			}
			if parent == nil {
				h.responder.WriteError(w, errs.NewNotFoundError("Parent comment not found"))
				return
			}
		}

		comment := models.Comment{
			PostID:          req.PostID,
			AuthorID:        caller.ID,
			Content:         req.Content,
			ParentCommentID: req.ParentComment,
		}
		if err := h.commentRepo.Add(&comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create comment", "comment", err))
			return
		}

		createdComment, err := h.commentRepo.FindByIDWithAuthor(comment.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created comment", "comment", err))
			return
		}

		h.responder.WriteStatusJSON(w, http.StatusCreated, map[string]any{
			"message": "Comment created successfully",
			"comment": createdComment,
		})
	}
}

// getPostComments lists every comment on a post, flat and newest first
func (h commentHandler) getPostComments() http.HandlerFunc {
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

		comments, err := h.commentRepo.ListForPost(postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find comments", "comments", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"comments": comments,
			"total":    len(comments),
		})
	}
}

// updateComment changes a comment's content; author only
func (h commentHandler) updateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := ctxGetUser(r.Context())

		commentID, err := parseCommentID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Content == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Content is required"))
			return
		}

		comment, err := h.commentRepo.FindByID(commentID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find comment", "comment", err))
			return
		}
		if comment == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Comment not found"))
			return
		}

		if comment.AuthorID != caller.ID {
			h.responder.WriteError(w, errs.NewForbiddenError("Not authorized to update this comment"))
			return
		}

		comment.Content = req.Content
		if err := h.commentRepo.Update(comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update comment", "comment", err))
			return
		}

		updatedComment, err := h.commentRepo.FindByIDWithAuthor(commentID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated comment", "comment", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Comment updated successfully",
			"comment": updatedComment,
		})
	}
}

// deleteComment removes a comment and its direct replies; allowed for the
// author or an admin
func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := ctxGetUser(r.Context())

		commentID, err := parseCommentID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comment, err := h.commentRepo.FindByID(commentID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find comment", "comment", err))
			return
		}
		if comment == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Comment not found"))
			return
		}

		if !canModify(comment.AuthorID, caller) {
			h.responder.WriteError(w, errs.NewForbiddenError("Not authorized to delete this comment"))
			return
		}

		if err := h.commentRepo.DeleteCascade(commentID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete comment", "comment", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Comment and replies deleted successfully",
		})
	}
}
