package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTManager(t *testing.T) {
	_, err := NewJWTManager("", time.Minute)
	assert.ErrorIs(t, err, ErrMissingSecret)

	m, err := NewJWTManager("secret", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultAccessTokenDuration, m.duration)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	m, err := NewJWTManager("secret", time.Minute)
	require.NoError(t, err)

	token, err := m.GenerateAccessJWT(42)
	require.NoError(t, err)

	userID, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	m, err := NewJWTManager("secret", time.Minute)
	require.NoError(t, err)

	claims := &AccessTokenCustomClaims{
		UserID: 42,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Add(-time.Hour).Unix(),
			ExpiresAt: time.Now().Add(-time.Minute).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredJWTToken)
}

func TestValidateAccessToken_Invalid(t *testing.T) {
	m, err := NewJWTManager("secret", time.Minute)
	require.NoError(t, err)
	other, err := NewJWTManager("other-secret", time.Minute)
	require.NoError(t, err)

	foreign, err := other.GenerateAccessJWT(42)
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &AccessTokenCustomClaims{
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Minute).Unix()},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &AccessTokenCustomClaims{
		UserID:         42,
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Minute).Unix()},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":        "not.a.token",
		"wrong secret":   foreign,
		"missing user":   noUser,
		"none algorithm": unsigned,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.ValidateAccessToken(token)
			assert.ErrorIs(t, err, ErrInvalidJWTToken)
		})
	}
}
