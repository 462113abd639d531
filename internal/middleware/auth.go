package middleware

import (
	"net/http"
	"strings"

	"archiva/internal/auth"
	"archiva/internal/httputil"
)

// Authenticate verifies a Bearer token when one is present and stores the
// resulting actor in the request context. Requests without a token pass
// through unauthenticated; per-route guards decide what they require.
func Authenticate(verifier auth.JWTVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "malformed authorization header")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithActor(r, claims.Actor()))
		})
	}
}

// RequireStaff rejects requests that carry no authenticated actor.
func RequireStaff(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := httputil.GetActor(r); !ok {
			httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next(w, r)
	}
}

// RequireDOS rejects requests unless the actor is the director of studies.
func RequireDOS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := httputil.GetActor(r)
		if !ok {
			httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !actor.CanReview() {
			httputil.RespondError(w, http.StatusForbidden, "director of studies role required")
			return
		}
		next(w, r)
	}
}
