package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blogger-backend/auth"
	"github.com/rpupo63/blogger-backend/database"
	"github.com/rpupo63/blogger-backend/errs"
	"github.com/rpupo63/blogger-backend/models"
)

type authHandler struct {
	responder   Responder
	logger      zerolog.Logger
	userRepo    *database.UserRepo
	authService *auth.Service
	uploadDir   string
}

func newAuthHandler(userRepo *database.UserRepo, authService *auth.Service, uploadDir string) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		userRepo:    userRepo,
		authService: authService,
		uploadDir:   uploadDir,
	}
}

// register creates a new account and signs the caller in
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Name == "" || req.Email == "" || req.Password == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("All fields are required"))
			return
		}

		existing, err := h.userRepo.FindByEmail(req.Email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if existing != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("Email already registered"))
			return
		}

		hash, err := h.authService.HashPassword(req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user := models.User{
			Name:     req.Name,
			Email:    req.Email,
			Password: hash,
		}
		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create user", "user", err))
			return
		}

		token, err := h.authService.IssueToken(user.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteStatusJSON(w, http.StatusCreated, map[string]any{
			"message": "User registered successfully",
			"user":    user,
			"token":   token,
		})
	}
}

// login verifies credentials and returns the user with a fresh token
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Email == "" || req.Password == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("All fields are required"))
			return
		}

		user, err := h.userRepo.FindByEmail(req.Email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil || !h.authService.VerifyPassword(req.Password, user.Password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("Invalid credentials"))
			return
		}

		token, err := h.authService.IssueToken(user.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Login successful",
			"user":    user,
			"token":   token,
		})
	}
}

func (h authHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())
		h.responder.WriteJSON(w, map[string]any{
			"user": user,
		})
	}
}

// updateProfile changes the caller's display name and biography
func (h authHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		var req struct {
			Name string  `json:"name"`
			Bio  *string `json:"bio"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Name != "" {
			user.Name = req.Name
		}
		if req.Bio != nil {
			user.Bio = req.Bio
		}

		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update user", "user", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Profile updated successfully",
			"user":    user,
		})
	}
}

// updateProfileImage stores an uploaded avatar and records its public path
func (h authHandler) updateProfileImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		imagePath, err := saveUploadedFile(r, "image", h.uploadDir)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user.ProfileImageURL = &imagePath
		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update user", "user", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Profile image updated successfully",
			"user":    user,
		})
	}
}

// changePassword re-verifies the current password before storing a new hash
func (h authHandler) changePassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := ctxGetUser(r.Context())

		var req struct {
			OldPassword string `json:"oldPassword"`
			NewPassword string `json:"newPassword"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.OldPassword == "" || req.NewPassword == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("All fields are required"))
			return
		}

		// Reload so the stored hash is checked even if the context copy
		// was mutated earlier in the request.
		user, err := h.userRepo.FindByID(caller.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewInvalidTokenError())
			return
		}

		if !h.authService.VerifyPassword(req.OldPassword, user.Password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("Current password is incorrect"))
			return
		}

		hash, err := h.authService.HashPassword(req.NewPassword)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user.Password = hash
		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update user", "user", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Password changed successfully",
		})
	}
}
