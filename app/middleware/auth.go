// Package middleware holds the HTTP middleware that needs application
// state; the generic chain lives in pkg/middleware.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aamirkhan2478/elite-market-backend/app/models"
	"github.com/aamirkhan2478/elite-market-backend/app/repositories"
	"github.com/aamirkhan2478/elite-market-backend/pkg/auth"
	"github.com/aamirkhan2478/elite-market-backend/pkg/response"
)

type ctxKey struct{}

// UserFromCtx returns the authenticated user stored by Auth.
func UserFromCtx(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(*models.User)
	return u, ok
}

// WithUser stores an authenticated user on the context.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// Auth validates the bearer token and loads the user fresh from the
// store, so a deleted account or a revoked admin flag takes effect on the
// next request rather than at token expiry.
func Auth(users *repositories.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if token == "" || token == r.Header.Get("Authorization") {
				response.Unauthorized(w, "Unauthorized")
				return
			}

			claims, err := auth.ValidateToken(token)
			if err != nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			id, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			user, err := users.FindByID(r.Context(), id)
			if err != nil {
				response.Unauthorized(w, "Unauthorized")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// Admin allows only authenticated administrators through. Must be wired
// after Auth.
func Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromCtx(r.Context())
		if !ok {
			response.Unauthorized(w, "Unauthorized")
			return
		}
		if !user.IsAdmin {
			response.Forbidden(w, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
