package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"meeting-summaries-backend/internal/config"
)

func TestJWTRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateJWT(42)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsed, err := VerifyJWT(token)
	assert.NoError(t, err)

	contactID, err := ContactIDFromToken(parsed)
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), contactID)
}

func TestVerifyJWT_Garbage(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	_, err := VerifyJWT("not.a.token")

	assert.Error(t, err)
}

func TestVerifyJWT_WrongSecret(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	token, err := GenerateJWT(42)
	assert.NoError(t, err)

	config.AppConfig.JWTSecret = "other-secret"
	_, err = VerifyJWT(token)

	assert.Error(t, err)
}
