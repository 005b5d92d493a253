package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	cfg := testJWTConfig()

	token, expiresIn, err := GenerateAccessToken(cfg, "device-1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64((15 * time.Minute).Seconds()), expiresIn)

	claims, err := ValidateAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "device-1", claims.DeviceID)
	assert.Equal(t, "vitalog", claims.Issuer)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	cfg := JWTConfig{
		Secret:         []byte("test-secret-key"),
		AccessTokenTTL: time.Nanosecond,
	}

	token, _, err := GenerateAccessToken(cfg, "device-1")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = ValidateAccessToken(cfg, token)
	assert.Error(t, err)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	token, _, err := GenerateAccessToken(testJWTConfig(), "device-1")
	require.NoError(t, err)

	other := JWTConfig{Secret: []byte("other-secret"), AccessTokenTTL: 15 * time.Minute}
	_, err = ValidateAccessToken(other, token)
	assert.Error(t, err)
}

func TestValidateAccessToken_Malformed(t *testing.T) {
	_, err := ValidateAccessToken(testJWTConfig(), "not.a.token")
	assert.Error(t, err)
}
