package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/taskboard/api/internal/core/ports"
)

type contextKey string

// UserIDKey holds the authenticated user's id in the request context.
const UserIDKey contextKey = "userID"

// AccessTokenCookie is the canonical HTTP token transport. The middleware
// reads only this httpOnly cookie; the WebSocket channel uses the Auth-Token
// handshake header instead.
const AccessTokenCookie = "access_token"

// Authenticator gates protected routes: extract the token cookie, verify
// it, resolve the user it names and attach the identity to the context. A
// missing token, a bad signature and a user deleted after issuance all get
// the same 401.
func Authenticator(tokens ports.TokenManager, users ports.UserRepository) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(AccessTokenCookie)
			if err != nil || cookie.Value == "" {
				writeError(w, http.StatusUnauthorized, "unauthenticated")
				return
			}

			userID, err := tokens.Verify(cookie.Value)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthenticated")
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil || user == nil {
				writeError(w, http.StatusUnauthorized, "unauthenticated")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext retrieves the authenticated user id set by Authenticator.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return id, ok
}
