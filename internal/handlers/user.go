package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/services"
)

// UserHandler serves the user directory.
type UserHandler struct {
	authService *services.AuthService
}

func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// ListUsers returns {_id, username} for every user with the role given in
// the query string (employee or manager, any case).
func (h *UserHandler) ListUsers(c *gin.Context) {
	role := c.Query("role")
	if role == "" {
		apierrors.BadRequest(c, "role query parameter is required")
		return
	}

	users, err := h.authService.ListUsersByRole(c.Request.Context(), role)
	if err != nil {
		respondAuthError(c, err, "Unable to fetch users")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserSummaries(users))
}
