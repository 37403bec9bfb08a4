package dto

import "github.com/yukikurage/project-management-api/internal/models"

type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,bcrypt_len"`
	Role     string `json:"role" binding:"omitempty,role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserSummary is the list item returned by GET /users.
type UserSummary struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

func ToUserSummaries(users []models.User) []UserSummary {
	summaries := make([]UserSummary, len(users))
	for i, u := range users {
		summaries[i] = UserSummary{ID: u.ID, Username: u.Username}
	}
	return summaries
}

type MessageResponse struct {
	Message string `json:"message"`
}
