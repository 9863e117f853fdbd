package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/fablehq/fable-server/internal/common"
	"github.com/fablehq/fable-server/internal/server/auth"
)

type contextKey string

const (
	userIDContextKey contextKey = "userID"
	userContextKey   contextKey = "user"
)

// requireAuth verifies the bearer token of the request and loads the
// authenticated user. Requests without a usable token, with a bad token, or
// whose user no longer exists are rejected before the handler runs.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := auth.ExtractBearer(r.Header.Get("Authorization"))
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, "Access token required")
			return
		}

		userID, err := auth.GetUserIDFromToken(tokenString, s.jwtSecret)
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := s.users.GetByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				s.writeError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}
			s.logger.Error(r.Context(), "failed to load authenticated user", "error", err)
			s.writeError(w, http.StatusInternalServerError, "Authentication failed")
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, user.ID)
		ctx = context.WithValue(ctx, userContextKey, user.Profile())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userIDFromContext returns the authenticated user's ID stored by
// requireAuth. The empty string means the middleware did not run.
func userIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDContextKey).(string)
	return id
}
