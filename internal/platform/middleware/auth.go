package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"janseva/internal/jwttoken"
	id "janseva/pkg/domain"
	"janseva/pkg/requestcontext"
)

// TokenValidator validates bearer tokens and returns the asserted identity.
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwttoken.Claims, error)
}

type roleKey struct{}

// Role retrieves the authenticated caller's role from the context.
func Role(ctx context.Context) string {
	if role, ok := ctx.Value(roleKey{}).(string); ok {
		return role
	}
	return ""
}

// WithRole injects a role. Exported for handler tests that bypass the
// middleware chain.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

// RequireAuth rejects requests without a valid bearer token and publishes
// the caller's identity into the request context.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				unauthorized(w, r, logger, "missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				unauthorized(w, r, logger, "invalid or expired token")
				return
			}

			ctx := r.Context()
			if cid, err := id.ParseCitizenID(claims.CitizenID); err == nil {
				ctx = requestcontext.WithCitizenID(ctx, cid)
			}
			if claims.Name != "" {
				ctx = requestcontext.WithActor(ctx, claims.Name)
			}
			ctx = WithRole(ctx, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOfficer rejects callers whose token does not carry the officer
// role. Must run after RequireAuth.
func RequireOfficer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if Role(r.Context()) != jwttoken.RoleOfficer {
				logger.WarnContext(r.Context(), "forbidden - officer role required",
					"request_id", requestcontext.RequestID(r.Context()),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"forbidden","error_description":"Officer role required"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, logger *slog.Logger, reason string) {
	logger.WarnContext(r.Context(), "unauthorized access",
		"reason", reason,
		"request_id", requestcontext.RequestID(r.Context()),
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + reason + `"}`))
}
