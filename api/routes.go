package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// setupRoutes mounts every controller under /api, serves uploaded images
// statically, and installs JSON 404 handling.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, uploadDir string) {
	r.Use(ColoredHTTPLoggingMiddleware)

	responder := NewResponder(log.Logger)

	// Health check route
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		responder.WriteJSON(w, map[string]any{
			"message": "Blogger API is running",
			"version": "1.0.0",
			"endpoints": map[string]string{
				"auth":      "/api/auth",
				"posts":     "/api/posts",
				"comments":  "/api/comments",
				"ai":        "/api/ai",
				"dashboard": "/api/dashboard",
			},
		})
	})

	// Uploaded images are served statically from the upload directory
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", handlers.authHandler.register())
			r.Post("/auth/login", handlers.authHandler.login())

			r.Get("/posts", handlers.blogPostHandler.getAllPosts())
			r.Get("/posts/{slug}", handlers.blogPostHandler.getPostBySlug())
			r.Patch("/posts/{postID}/like", handlers.blogPostHandler.likePost())

			r.Get("/comments/{postID}", handlers.commentHandler.getPostComments())
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Get("/auth/profile", handlers.authHandler.getProfile())
			r.Put("/auth/profile", handlers.authHandler.updateProfile())
			r.Put("/auth/profile-image", handlers.authHandler.updateProfileImage())
			r.Put("/auth/change-password", handlers.authHandler.changePassword())

			r.Post("/posts", handlers.blogPostHandler.createPost())
			r.Get("/posts/user/my-posts", handlers.blogPostHandler.getUserPosts())
			r.Put("/posts/{postID}", handlers.blogPostHandler.updatePost())
			r.Delete("/posts/{postID}", handlers.blogPostHandler.deletePost())
			r.Patch("/posts/{postID}/draft", handlers.blogPostHandler.toggleDraft())
			r.Put("/posts/{postID}/cover", handlers.blogPostHandler.updateCoverImage())

			r.Post("/comments", handlers.commentHandler.createComment())
			r.Put("/comments/{commentID}", handlers.commentHandler.updateComment())
			r.Delete("/comments/{commentID}", handlers.commentHandler.deleteComment())

			r.Get("/dashboard/stats", handlers.dashboardHandler.getStats())
			r.Get("/dashboard/recent", handlers.dashboardHandler.getRecentActivity())
			r.Get("/dashboard/popular", handlers.dashboardHandler.getPopularPosts())

			r.Post("/ai/generate-post", handlers.aiHandler.generatePost())
			r.Post("/ai/improve-section", handlers.aiHandler.improveSection())
			r.Post("/ai/generate-outline", handlers.aiHandler.generateOutline())
			r.Post("/ai/continue-writing", handlers.aiHandler.continueWriting())
			r.Post("/ai/generate-tags", handlers.aiHandler.generateTags())
		})
	})

	// Unknown routes answer JSON, not the default text 404
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responder.WriteStatusJSON(w, http.StatusNotFound, map[string]any{
			"message": "Route not found",
		})
	})
}
