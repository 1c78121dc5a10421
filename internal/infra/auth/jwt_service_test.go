package auth

import (
	"testing"

	"gachigage/config"

	"github.com/stretchr/testify/assert"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"
	return cfg
}

func TestJWTService_GenerateAndValidateTokens(t *testing.T) {
	jwtService, err := NewJWTService(testConfig())
	assert.NoError(t, err)
	assert.NotNil(t, jwtService)

	userID := int64(42)

	accessToken, refreshToken, err := jwtService.GenerateTokens(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	// Validate access token
	gotID, err := jwtService.ValidateAccess(accessToken)
	assert.NoError(t, err)
	assert.Equal(t, userID, gotID)

	// Validate refresh token
	gotID, err = jwtService.ValidateRefresh(refreshToken)
	assert.NoError(t, err)
	assert.Equal(t, userID, gotID)
}

func TestJWTService_TokenTypeMismatch(t *testing.T) {
	jwtService, err := NewJWTService(testConfig())
	assert.NoError(t, err)

	accessToken, refreshToken, err := jwtService.GenerateTokens(7)
	assert.NoError(t, err)

	// An access token must not pass refresh validation, and vice versa.
	_, err = jwtService.ValidateRefresh(accessToken)
	assert.Error(t, err)

	_, err = jwtService.ValidateAccess(refreshToken)
	assert.Error(t, err)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(testConfig())
	assert.NoError(t, err)

	// Test invalid token - using clearly non-JWT format
	_, err = jwtService.ValidateAccess("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
}

func TestJWTService_EmptySecrets(t *testing.T) {
	cfg := &config.Config{}

	// Should fail to create service
	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secrets must be provided")
}
