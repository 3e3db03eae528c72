package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"storefront-backend/pkg/auth"
	"storefront-backend/pkg/common"
	apperrors "storefront-backend/pkg/errors"
)

// Authenticate validates the Bearer credential and establishes the caller's
// identity for everything downstream. The token must arrive in the
// Authorization header with the Bearer scheme; no other sources are
// accepted. Every validation failure, whatever the decode library reported,
// collapses into one UNAUTHENTICATED response so internal detail never
// reaches the client.
func Authenticate(validator *auth.JWTValidator, limits RateLimits, logger *zap.Logger) func(next http.Handler) http.Handler {
	ipLimiter := auth.NewIPRateLimiter(limits.PerIP)
	userLimiter := auth.NewUserRateLimiter(limits.PerUser)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := getClientIP(r)

			if !ipLimiter.Allow(clientIP) {
				common.RespondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded")
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				respondUnauthenticated(w)
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				// Log the enumerable failure kind, respond with none of it
				logger.Warn("token validation failed",
					zap.Error(err),
					zap.String("ip", clientIP),
					zap.String("path", r.URL.Path),
				)
				respondUnauthenticated(w)
				return
			}

			if !userLimiter.Allow(claims.UserID) {
				common.RespondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded")
				return
			}

			ctx := auth.SetUserInContext(r.Context(), &auth.UserContext{UserID: claims.UserID})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RateLimits configures the per-IP and per-user request budgets per minute
type RateLimits struct {
	PerIP   int
	PerUser int
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// A missing header, a different scheme, or a mangled value all fail the
// same way.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

// getClientIP extracts the client IP address
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}

func respondUnauthenticated(w http.ResponseWriter) {
	appErr := apperrors.NewUnauthenticatedError("")
	common.RespondError(w, appErr.HTTPStatus, string(appErr.Type), appErr.Message)
}
