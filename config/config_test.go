package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/arena?sslmode=disable")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("UPI_PAYEE_ADDRESS", "arena@upi")
	t.Setenv("UPI_PAYEE_NAME", "FF Arena")
	t.Setenv("SERVER_PORT", "")
}

// TestLoadDefaults checks the port default and required-variable handling.
func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "arena@upi", cfg.UPIPayeeAddress)
	assert.Equal(t, "FF Arena", cfg.UPIPayeeName)
}

// TestLoadMissingRequired checks each required variable fails loading when
// unset.
func TestLoadMissingRequired(t *testing.T) {
	required := []string{"DATABASE_URL", "JWT_SECRET_KEY", "UPI_PAYEE_ADDRESS", "UPI_PAYEE_NAME"}
	for _, key := range required {
		t.Run(key, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(key, "")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

// TestLoadPortValidation checks malformed and out-of-range ports.
func TestLoadPortValidation(t *testing.T) {
	setRequiredEnv(t)

	t.Setenv("SERVER_PORT", "not-a-number")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SERVER_PORT", "70000")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("SERVER_PORT", "9090")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.ServerPort)
}
