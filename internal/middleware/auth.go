package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/auth"
	"github.com/yukikurage/project-management-api/internal/constants"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/logger"
	"go.uber.org/zap"
)

// TokenAuthenticator validates a bearer token and returns its claims.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

// RequireAuth rejects requests without a valid, unrevoked bearer token.
func RequireAuth(authenticator TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				apierrors.Unauthorized(c, "Token has expired")
			case errors.Is(err, auth.ErrRevokedToken):
				apierrors.Unauthorized(c, "Token has been revoked")
			case errors.Is(err, auth.ErrInvalidToken):
				apierrors.Unauthorized(c, "Invalid token")
			default:
				logger.FromContext(c).Error("Token check failed", zap.Error(err))
				apierrors.ServiceUnavailable(c, "Unable to verify token")
			}
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth records the caller's identity when a valid token is sent and
// lets every request through.
func OptionalAuth(authenticator TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := authenticator.Authenticate(c.Request.Context(), token); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if len(header) <= len(constants.BearerPrefix) || !strings.EqualFold(header[:len(constants.BearerPrefix)], constants.BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(constants.BearerPrefix):])
	return token, token != ""
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(constants.ContextKeyClaims, claims)
	c.Set(constants.ContextKeyUserID, claims.UserID)
	c.Set(constants.ContextKeyEmail, claims.Email)
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(constants.ContextKeyUserID)
	return userID, userID != ""
}

// GetClaims retrieves the verified token claims from context
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(constants.ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
