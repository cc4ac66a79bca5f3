package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"nexus/internal/models"
)

type ctxKey string

const identityKey ctxKey = "identity"

// RequireAuth resolves the Authorization bearer token to an identity
// and stores it in the request context. Any failure is a uniform 401.
func RequireAuth(svc *Service) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const p = "Bearer "
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, p) {
				models.WriteProblem(w, http.StatusUnauthorized, "Unauthorized", "could not validate credentials", nil)
				return
			}
			user, err := svc.Identify(r.Context(), strings.TrimPrefix(header, p))
			if err != nil {
				models.WriteProblem(w, http.StatusUnauthorized, "Unauthorized", "could not validate credentials", nil)
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom returns the authenticated user placed in the context by
// RequireAuth, or nil on unauthenticated routes.
func IdentityFrom(r *http.Request) *models.User {
	u, _ := r.Context().Value(identityKey).(*models.User)
	return u
}
