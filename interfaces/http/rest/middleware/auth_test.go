package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront-backend/pkg/auth"
)

const testSecret = "middleware-test-secret"

func newAuthFixture(t *testing.T, limits RateLimits) (func(http.Handler) http.Handler, *auth.JWTGenerator) {
	t.Helper()

	validator, err := auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     testSecret,
	})
	require.NoError(t, err)

	generator, err := auth.NewJWTGenerator(auth.JWTGeneratorConfig{
		SigningMethod: "HS256",
		SecretKey:     testSecret,
		ExpiryTime:    time.Hour,
	})
	require.NoError(t, err)

	return Authenticate(validator, limits, zap.NewNop()), generator
}

// echoUserHandler writes the authenticated user id so tests can verify that
// identity made it into the request context.
func echoUserHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := auth.GetUserFromContext(r.Context())
		require.NoError(t, err)
		w.Write([]byte(user.UserID))
	})
}

func TestAuthenticate_ValidTokenEstablishesIdentity(t *testing.T) {
	// Arrange
	middleware, generator := newAuthFixture(t, RateLimits{PerIP: 100, PerUser: 100})
	token, err := generator.GenerateToken("user-42")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	// Act
	middleware(echoUserHandler(t)).ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-42", rec.Body.String())
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	middleware, _ := newAuthFixture(t, RateLimits{PerIP: 100, PerUser: 100})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	rec := httptest.NewRecorder()

	middleware(echoUserHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHENTICATED")
}

func TestAuthenticate_WrongScheme(t *testing.T) {
	middleware, _ := newAuthFixture(t, RateLimits{PerIP: 100, PerUser: 100})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()

	middleware(echoUserHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_EmptyBearerToken(t *testing.T) {
	middleware, _ := newAuthFixture(t, RateLimits{PerIP: 100, PerUser: 100})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	req.Header.Set("Authorization", "Bearer   ")
	rec := httptest.NewRecorder()

	middleware(echoUserHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_GarbageToken(t *testing.T) {
	middleware, _ := newAuthFixture(t, RateLimits{PerIP: 100, PerUser: 100})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()

	middleware(echoUserHandler(t)).ServeHTTP(rec, req)

	// The response never discloses why the token failed
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotContains(t, rec.Body.String(), "segment")
	assert.Contains(t, rec.Body.String(), "UNAUTHENTICATED")
}

func TestAuthenticate_SchemeIsCaseInsensitive(t *testing.T) {
	middleware, generator := newAuthFixture(t, RateLimits{PerIP: 100, PerUser: 100})
	token, err := generator.GenerateToken("user-42")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := httptest.NewRecorder()

	middleware(echoUserHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticate_PerIPRateLimit(t *testing.T) {
	// Arrange: two requests per minute per IP
	middleware, generator := newAuthFixture(t, RateLimits{PerIP: 2, PerUser: 100})
	token, err := generator.GenerateToken("user-42")
	require.NoError(t, err)

	handler := middleware(echoUserHandler(t))

	// Act + Assert: third request from the same IP is refused
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
