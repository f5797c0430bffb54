// Package httpapi exposes the REST surface of the server: account
// registration and lookup, token issuance, and the authenticated scoring
// endpoint.
package httpapi

import (
	"context"

	"github.com/dmitrijs2005/zenscore/internal/server/models"
)

type ctxKey string

const userKey ctxKey = "user"

// ContextWithUser binds the authenticated user to the request context.
// The binding is request-scoped and read-only for the rest of the request.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user bound by the auth
// middleware, or nil when the request was not authenticated.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}
