package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthenticate(t *testing.T) {
	adminID := uuid.New()
	claims := jwt.MapClaims{
		"user_id": adminID.String(),
		"name":    "admin",
		"exp":     time.Now().Add(time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}

	var gotID uuid.UUID
	var gotName string
	var idErr, nameErr error
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, idErr = GetUserIDFromContext(r.Context())
		gotName, nameErr = GetUserNameFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := Authenticate(testSecret)(inner)

	t.Run("valid token exposes claims to handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, claims))
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, idErr)
		require.NoError(t, nameErr)
		assert.Equal(t, adminID, gotID)
		assert.Equal(t, "admin", gotName)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", claims))
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetUserIDFromContext_NoClaims(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := GetUserIDFromContext(req.Context())
	assert.Error(t, err)

	_, err = GetUserNameFromContext(req.Context())
	assert.Error(t, err)
}
