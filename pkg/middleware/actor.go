package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/kharchasplit/kharchasplit-server/pkg/response"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ActorIDKey is the context key for the acting user ID
	ActorIDKey ContextKey = "actor_id"
)

// ActorMiddleware resolves the acting user from the X-User-ID header.
// Real authentication (OTP login, sessions) lives in the mobile shell and
// its gateway; this server only needs to know which member is acting so
// that settlement transitions can enforce who is allowed to do what.
//
// Requests without the header pass through with no actor in context;
// handlers that require one respond 401 themselves. Registration and
// health checks have no acting user yet.
func ActorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid X-User-ID header")
			return
		}

		ctx := context.WithValue(r.Context(), ActorIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetActorID extracts the acting user ID from the request context
func GetActorID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(ActorIDKey).(int64)
	return userID, ok
}
