package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-management-api/internal/config"
)

func newTestTokenService() *TokenService {
	return NewTokenService(config.JWTConfig{
		Secret:     "test-secret-key-that-is-long-enough",
		Expiration: time.Hour,
		Issuer:     "test",
	})
}

func TestTokenService_IssueAndParse(t *testing.T) {
	svc := newTestTokenService()

	token, issued, err := svc.Issue("65a000000000000000000001", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.NotEmpty(t, issued.ID)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "65a000000000000000000001", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, issued.ID, claims.ID)
	assert.InDelta(t, time.Hour.Seconds(), claims.RemainingTTL().Seconds(), 5)
}

func TestTokenService_DefaultExpiration(t *testing.T) {
	svc := NewTokenService(config.JWTConfig{Secret: "s"})

	_, claims, err := svc.Issue("u1", "u1@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(12*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenService_Parse_Errors(t *testing.T) {
	svc := newTestTokenService()

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenService(config.JWTConfig{Secret: "another-secret", Expiration: time.Hour})
		token, _, err := other.Issue("u1", "u1@example.com")
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		claims := &Claims{
			UserID: "u1",
			Email:  "u1@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("unsigned", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "u1"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
