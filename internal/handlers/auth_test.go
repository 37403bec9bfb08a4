package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/models"
)

type validationResponse struct {
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/register", map[string]string{
		"username": "alice",
		"email":    "a@x.com",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	token := decode[string](t, w)
	claims, err := env.tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.NotEmpty(t, claims.UserID)
	assert.NotEmpty(t, claims.ID)

	var stored models.User
	require.NoError(t, env.db.First(&stored, "email = ?", "a@x.com").Error)
	assert.Equal(t, stored.ID, claims.UserID)
	assert.NotEqual(t, "secret", stored.PasswordHash)

	w = env.do(t, http.MethodPost, "/register", map[string]string{
		"username": "alice again",
		"email":    "a@x.com",
		"password": "other",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[apierrors.APIError](t, w)
	assert.Equal(t, "User already registered", resp.Message)
	assert.Equal(t, apierrors.ErrCodeConflict, resp.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	env := setupTestEnv(t)

	tests := []struct {
		name  string
		body  map[string]string
		field string
		rule  string
	}{
		{"missing email", map[string]string{"username": "u", "password": "p"}, "email", "required"},
		{"malformed email", map[string]string{"username": "u", "email": "nope", "password": "p"}, "email", "email"},
		{"unknown role", map[string]string{"username": "u", "email": "u@x.com", "password": "p", "role": "admin"}, "role", "role"},
		{"password over 72 bytes", map[string]string{"username": "u", "email": "u@x.com", "password": strings.Repeat("é", 72)}, "password", "bcrypt_len"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/register", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			resp := decode[validationResponse](t, w)
			assert.Equal(t, "Invalid request body", resp.Message)
			assert.Equal(t, tt.rule, resp.Details[tt.field])
		})
	}
}

func TestAuthHandler_RegisterMultibytePassword(t *testing.T) {
	env := setupTestEnv(t)

	// 36 two-byte runes fill bcrypt's 72-byte limit exactly.
	password := strings.Repeat("é", 36)
	w := env.do(t, http.MethodPost, "/register", map[string]string{
		"username": "u",
		"email":    "u@x.com",
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodPost, "/login", map[string]string{"email": "u@x.com", "password": password})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/register", map[string]string{
		"username": "alice",
		"email":    "Alice@X.com",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("success", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/login", map[string]string{"email": "alice@x.com", "password": "secret"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		claims, err := env.tokens.Parse(decode[string](t, w))
		require.NoError(t, err)
		assert.Equal(t, "alice@x.com", claims.Email)
	})

	t.Run("unknown email", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/login", map[string]string{"email": "bob@x.com", "password": "secret"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid EmailID", decode[apierrors.APIError](t, w).Message)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/login", map[string]string{"email": "alice@x.com", "password": "wrong"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Incorrect Password", decode[apierrors.APIError](t, w).Message)
	})

	t.Run("missing password", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/login", map[string]string{"email": "alice@x.com"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_MeAndLogout(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/register", map[string]string{
		"username": "alice",
		"email":    "a@x.com",
		"password": "secret",
		"role":     "Manager",
	})
	require.Equal(t, http.StatusOK, w.Code)
	bearer := "Bearer " + decode[string](t, w)

	w = env.do(t, http.MethodGet, "/me", nil, "Authorization", bearer)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")
	me := decode[models.User](t, w)
	assert.Equal(t, "alice", me.Username)
	assert.Equal(t, models.RoleManager, me.Role)

	w = env.do(t, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/logout", nil, "Authorization", bearer)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logged out successfully", decode[dto.MessageResponse](t, w).Message)

	w = env.do(t, http.MethodGet, "/me", nil, "Authorization", bearer)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token has been revoked", decode[apierrors.APIError](t, w).Message)
}

func TestUserHandler_ListUsers(t *testing.T) {
	env := setupTestEnv(t)

	register := func(username, email, role string) {
		w := env.do(t, http.MethodPost, "/register", map[string]string{
			"username": username,
			"email":    email,
			"password": "secret",
			"role":     role,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	register("alice", "alice@x.com", "manager")
	register("bob", "bob@x.com", "employee")
	register("carol", "carol@x.com", "employee")

	t.Run("case-insensitive role", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/users?role=EMPLOYEE", nil)
		require.Equal(t, http.StatusOK, w.Code)

		users := decode[[]dto.UserSummary](t, w)
		require.Len(t, users, 2)
		assert.ElementsMatch(t, []string{"bob", "carol"}, []string{users[0].Username, users[1].Username})
		assert.NotEmpty(t, users[0].ID)
		assert.NotContains(t, w.Body.String(), "email")
	})

	t.Run("users without a role are excluded", func(t *testing.T) {
		register("dave", "dave@x.com", "")

		w := env.do(t, http.MethodGet, "/users?role=manager", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]dto.UserSummary](t, w), 1)
	})

	t.Run("invalid role", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/users?role=admin", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing role", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/users", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRootAndHealth(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello !", w.Body.String())

	w = env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
