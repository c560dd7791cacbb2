package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/huzi29/crmsystemdesign/internal/domain"
	"github.com/huzi29/crmsystemdesign/internal/security/auth"
)

// TokenHeader is the request header carrying the access token.
const TokenHeader = "x-access-token"

type UserContextKey struct{}
type UserIDContextKey struct{}

// SessionGuard validates the access token on every protected route and
// attaches the resolved user to the request context. The user may be nil
// when the record was deleted after the token was issued; that is not an
// error here.
func SessionGuard(tm *auth.TokenManager, users domain.UserRepository, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get(TokenHeader)
			if tokenString == "" {
				writeUnauthorized(w, "No Token Found")
				return
			}

			claims, err := tm.ValidateAccessToken(tokenString)
			if err != nil {
				log.Debug("access token rejected", slog.String("error", err.Error()))
				writeUnauthorized(w, "Invalid Token")
				return
			}

			user, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				// Token outlived the user record; let the request
				// through with a nil user.
				user = nil
			}

			ctx := context.WithValue(r.Context(), UserIDContextKey{}, claims.UserID)
			ctx = context.WithValue(ctx, UserContextKey{}, user)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns the resolved user, or nil when the record
// was deleted after the token was issued.
func GetUserFromContext(ctx context.Context) *domain.User {
	if u, ok := ctx.Value(UserContextKey{}).(*domain.User); ok {
		return u
	}
	return nil
}

// GetUserIDFromContext returns the user identifier encoded in the token.
func GetUserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDContextKey{}).(string); ok {
		return id
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
