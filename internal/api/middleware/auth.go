package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/yervar/yervar-backend/internal/domain"
	"github.com/yervar/yervar-backend/internal/service"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"

	// SessionCookie carries the opaque session token; the browser sends it
	// automatically on every request.
	SessionCookie = "yervar_session"
)

// SessionToken extracts the session token from the request cookie.
func SessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Auth resolves the caller's session to a user id before any domain
// operation runs. Missing, expired, and destroyed sessions all fail with
// 401 and no side effects.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := SessionToken(r)
			user, err := authService.ValidateSession(r.Context(), token)
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthenticated) {
					log.Printf("ERROR [middleware.Auth] session lookup failed: %v", err)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"message":"Authentication required"}`))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
