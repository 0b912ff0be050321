package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blogger-backend/database"
)

type dashboardHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo *database.BlogPostRepo
	commentRepo  *database.CommentRepo
}

func newDashboardHandler(blogPostRepo *database.BlogPostRepo, commentRepo *database.CommentRepo) dashboardHandler {
	logger := log.With().Str("handlerName", "dashboardHandler").Logger()

	return dashboardHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogPostRepo: blogPostRepo,
		commentRepo:  commentRepo,
	}
}

// getStats aggregates the caller's post, view, like, and comment totals
func (h dashboardHandler) getStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := ctxGetUser(r.Context())

		totalPosts, err := h.blogPostRepo.CountByAuthor(caller.ID, nil)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count posts", "blog_posts", err))
			return
		}

		published := false
		publishedPosts, err := h.blogPostRepo.CountByAuthor(caller.ID, &published)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count published posts", "blog_posts", err))
			return
		}

		draft := true
		drafts, err := h.blogPostRepo.CountByAuthor(caller.ID, &draft)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count drafts", "blog_posts", err))
			return
		}

		totalViews, err := h.blogPostRepo.SumViewsByAuthor(caller.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("sum views", "blog_posts", err))
			return
		}

		totalLikes, err := h.blogPostRepo.SumLikesByAuthor(caller.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("sum likes", "blog_posts", err))
			return
		}

		totalComments, err := h.commentRepo.CountForAuthorPosts(caller.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count comments", "comments", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"stats": map[string]any{
				"totalPosts":     totalPosts,
				"publishedPosts": publishedPosts,
				"drafts":         drafts,
				"totalViews":     totalViews,
				"totalLikes":     totalLikes,
				"totalComments":  totalComments,
			},
		})
	}
}

// getRecentActivity returns the caller's newest posts and the newest
// comments left on them
func (h dashboardHandler) getRecentActivity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := ctxGetUser(r.Context())
		limit := parseIntQuery(r, "limit", 5)

		recentPosts, err := h.blogPostRepo.RecentByAuthor(caller.ID, limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find recent posts", "blog_posts", err))
			return
		}

		recentComments, err := h.commentRepo.RecentForAuthorPosts(caller.ID, limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find recent comments", "comments", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"recentPosts":    recentPosts,
			"recentComments": recentComments,
		})
	}
}

// getPopularPosts ranks the caller's published posts by views or likes
func (h dashboardHandler) getPopularPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := ctxGetUser(r.Context())
		limit := parseIntQuery(r, "limit", 5)
		sortBy := r.URL.Query().Get("sortBy")

		popularPosts, sortedBy, err := h.blogPostRepo.PopularByAuthor(caller.ID, sortBy, limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find popular posts", "blog_posts", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"popularPosts": popularPosts,
			"sortedBy":     sortedBy,
		})
	}
}
