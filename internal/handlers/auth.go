package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a user and answers with a bare JSON token string.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	token, _, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondAuthError(c, err, "Unable to register user")
		return
	}

	c.JSON(http.StatusOK, token)
}

// Login verifies credentials and answers with a bare JSON token string.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, _, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err, "Unable to login")
		return
	}

	c.JSON(http.StatusOK, token)
}

// Logout revokes the presented token.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		internalError(c, "Failed to logout", err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondAuthError(c, err, "Unable to load user")
		return
	}

	c.JSON(http.StatusOK, user)
}

func respondAuthError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, "User already registered")
	case errors.Is(err, services.ErrUnknownEmail):
		apierrors.InvalidCredentials(c, "Invalid EmailID")
	case errors.Is(err, services.ErrIncorrectPassword):
		apierrors.InvalidCredentials(c, "Incorrect Password")
	case errors.Is(err, services.ErrInvalidRole):
		apierrors.BadRequest(c, "Role must be employee or manager")
	case errors.Is(err, services.ErrPasswordTooLong):
		apierrors.BadRequestWithDetails(c, "Invalid request body", map[string]string{"password": "bcrypt_len"})
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	default:
		internalError(c, fallback, err)
	}
}
