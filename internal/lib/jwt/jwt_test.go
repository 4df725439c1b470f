package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := 15 * time.Minute
	maker := NewJWTMaker(secretKey, tokenTTL)

	tests := []struct {
		name     string
		userUID  string
		username string
	}{
		{
			name:     "regular user",
			userUID:  "550e8400-e29b-41d4-a716-446655440000",
			username: "regular_user",
		},
		{
			name:     "user with email username",
			userUID:  "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
			username: "user@domain.com",
		},
		{
			name:     "user with numbers in username",
			userUID:  "6ba7b811-9dad-11d1-80b4-00c04fd430c8",
			username: "user123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.userUID, tt.username)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.userUID, claims.UserUID)
			assert.Equal(t, tt.username, claims.Username)
			assert.Equal(t, tt.userUID, claims.Subject)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestJWTMaker_ParseToken_InvalidTokens(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := 15 * time.Minute
	maker := NewJWTMaker(secretKey, tokenTTL)

	validToken, err := maker.GenerateToken("550e8400-e29b-41d4-a716-446655440000", "testuser")
	require.NoError(t, err)

	tests := []struct {
		name      string
		token     string
		wantError bool
	}{
		{
			name:      "empty token",
			token:     "",
			wantError: true,
		},
		{
			name:      "malformed token",
			token:     "invalid.token.here",
			wantError: true,
		},
		{
			name:      "expired token",
			token:     createExpiredToken(t, secretKey),
			wantError: true,
		},
		{
			name:      "wrong secret key",
			token:     createTokenWithWrongSecret(t),
			wantError: true,
		},
		{
			name:      "tampered token",
			token:     validToken + "tampered",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)

			if tt.wantError {
				assert.Error(t, err)
				assert.Nil(t, claims)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, claims)
			}
		})
	}
}

func TestJWTMaker_DifferentSecretKeys(t *testing.T) {
	maker1 := NewJWTMaker("first_secret_key", 15*time.Minute)
	maker2 := NewJWTMaker("different_secret_key", 15*time.Minute)

	token, err := maker1.GenerateToken("550e8400-e29b-41d4-a716-446655440000", "testuser")
	require.NoError(t, err)

	claims, err := maker2.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)

	claims, err = maker1.ParseToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
}

func createExpiredToken(t *testing.T, secretKey string) string {
	maker := NewJWTMaker(secretKey, -time.Hour)
	token, err := maker.GenerateToken("550e8400-e29b-41d4-a716-446655440000", "testuser")
	require.NoError(t, err)
	return token
}

func createTokenWithWrongSecret(t *testing.T) string {
	wrongMaker := NewJWTMaker("wrong_secret_key", 15*time.Minute)
	token, err := wrongMaker.GenerateToken("550e8400-e29b-41d4-a716-446655440000", "testuser")
	require.NoError(t, err)
	return token
}

func TestJWTMaker_TokenExpiration(t *testing.T) {
	secretKey := "test_secret_key"
	// Claims сериализуются с точностью до секунды, поэтому TTL меньше
	// секунды усекается и токен рождается уже просроченным.
	maker := NewJWTMaker(secretKey, 5*time.Second)

	token, err := maker.GenerateToken("550e8400-e29b-41d4-a716-446655440000", "testuser")
	require.NoError(t, err)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.NotNil(t, claims)

	expired := createExpiredToken(t, secretKey)

	claims, err = maker.ParseToken(expired)
	assert.Error(t, err)
	assert.Nil(t, claims)

	assert.Contains(t, err.Error(), "expired")
}
