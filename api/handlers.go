package api

import (
	"github.com/rpupo63/blogger-backend/ai"
	"github.com/rpupo63/blogger-backend/auth"
	"github.com/rpupo63/blogger-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, authService *auth.Service, aiGateway *ai.Gateway, uploadDir string) *routeHandlers {
	return &routeHandlers{
		authHandler:      newAuthHandler(database.UserRepo(), authService, uploadDir),
		blogPostHandler:  newBlogPostHandler(database.BlogPostRepo(), database.CommentRepo(), uploadDir),
		commentHandler:   newCommentHandler(database.CommentRepo(), database.BlogPostRepo()),
		dashboardHandler: newDashboardHandler(database.BlogPostRepo(), database.CommentRepo()),
		aiHandler:        newAIHandler(aiGateway),
	}
}
