package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler      authHandler
	blogPostHandler  blogPostHandler
	commentHandler   commentHandler
	dashboardHandler dashboardHandler
	aiHandler        aiHandler
}

// Pagination describes the page shape returned by post listings.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
	Limit int   `json:"limit"`
}
