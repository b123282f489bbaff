// internal/middleware/auth.go
package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/pkg/auth"
)

type contextKey string

const contextKeyPrincipal contextKey = "principal"

// IdentityStore is the user lookup the resolver needs.
type IdentityStore interface {
	GetByMail(ctx context.Context, mail string) (*models.User, error)
}

// Resolver turns a bearer token into the request's authenticated principal.
// No session state persists past the request.
type Resolver struct {
	tokenManager *auth.TokenManager
	users        IdentityStore
}

func NewResolver(tokenManager *auth.TokenManager, users IdentityStore) *Resolver {
	return &Resolver{
		tokenManager: tokenManager,
		users:        users,
	}
}

// RequireAuth validates the bearer token, resolves the user it names, and
// binds the user into the request context as the principal. Requests without
// a valid token are rejected before the handler runs.
func (r *Resolver) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			return
		}

		claims, err := r.tokenManager.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// The subject is the user's mail. The user may have been deleted
		// after the token was issued.
		user, err := r.users.GetByMail(c.Request.Context(), claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		ctx := WithPrincipal(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// WithPrincipal binds the authenticated user to the context.
func WithPrincipal(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, contextKeyPrincipal, user)
}

// PrincipalFromContext extracts the authenticated user from the context.
func PrincipalFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(contextKeyPrincipal).(*models.User)
	return user, ok
}
