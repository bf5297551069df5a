package api

import (
	"net/http"
	"strings"

	"github.com/Atharva2908/task-manager/internal/api/handlers"
	"github.com/Atharva2908/task-manager/internal/entity"
	"github.com/Atharva2908/task-manager/internal/infrastructure/auth"
)

// Authenticator rejects requests without a bearer token before any
// backend call is attempted, and attaches the token plus the identity
// parsed from it to the request context.
func Authenticator(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				handlers.WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := jwtManager.ValidateAccessToken(token)
			if err != nil {
				handlers.WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			user := &entity.User{
				ID:    claims.UserID,
				Email: claims.Email,
				Role:  claims.Role,
			}

			next.ServeHTTP(w, r.WithContext(handlers.WithAuth(r.Context(), token, user)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
