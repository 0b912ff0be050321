package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/rpupo63/blogger-backend/models"
)

type keyType string

const (
	userKey keyType = "user"
)

// ctxWithUser attaches the authenticated user to the context
func ctxWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// ctxGetUser retrieves the authenticated user from the context, or nil
// when the request did not pass the auth middleware.
func ctxGetUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// canModify reports whether the caller may delete an entity owned by
// authorID: the author themselves, or an admin.
func canModify(authorID uuid.UUID, caller *models.User) bool {
	return caller.ID == authorID || caller.IsAdmin()
}
