package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func protectedHandler(t *testing.T) http.Handler {
	return Authenticate(testSecret)(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetUserIDFromContext(r.Context())
		require.NoError(t, err)
		w.Header().Set("X-User-ID", id)
		w.WriteHeader(http.StatusOK)
	})))
}

// TestAuthenticateValidToken checks a well-formed admin token passes through
// and its claims reach the handler.
func TestAuthenticateValidToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": "user-1",
		"role":    "admin",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/resource", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protectedHandler(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Header().Get("X-User-ID"))
}

// TestAuthenticateRejections covers missing, malformed, mis-signed and
// expired tokens.
func TestAuthenticateRejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc123", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
		{
			"wrong secret",
			"Bearer " + signToken(t, []byte("other-secret"), jwt.MapClaims{
				"user_id": "user-1", "role": "admin",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			http.StatusUnauthorized,
		},
		{
			"expired",
			"Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"user_id": "user-1", "role": "admin",
				"exp": time.Now().Add(-time.Hour).Unix(),
			}),
			http.StatusUnauthorized,
		},
		{
			"non-admin role",
			"Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"user_id": "user-1", "role": "player",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			http.StatusForbidden,
		},
		{
			"missing role claim",
			"Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"user_id": "user-1",
				"exp":     time.Now().Add(time.Hour).Unix(),
			}),
			http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/resource", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protectedHandler(t).ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
