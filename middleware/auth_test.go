package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Nuga25/interneefy-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{
		ID:        42,
		CompanyID: 7,
		FullName:  "Alice Admin",
		Role:      models.RoleAdmin,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateToken(testUser(), time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, uint(7), claims.CompanyID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "Alice Admin", claims.FullName)
}

func TestValidateTokenExpired(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateToken(testUser(), -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	SetJWTSecret("test-secret")
	token, err := GenerateToken(testUser(), time.Hour)
	require.NoError(t, err)

	SetJWTSecret("another-secret")
	defer SetJWTSecret("test-secret")

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	SetJWTSecret("test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaimsFromContext(r.Context())
		require.NotNil(t, claims)
		assert.Equal(t, uint(42), claims.UserID)
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthMiddleware(next)

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "No token provided")
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "No token provided")
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid token")
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := GenerateToken(testUser(), time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	SetJWTSecret("test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthMiddleware(RequireRole(models.RoleAdmin)(next))

	t.Run("admin passes", func(t *testing.T) {
		token, err := GenerateToken(testUser(), time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("intern is rejected", func(t *testing.T) {
		internUser := testUser()
		internUser.Role = models.RoleIntern
		token, err := GenerateToken(internUser, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
