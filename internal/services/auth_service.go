package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/project-management-api/internal/auth"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken           = errors.New("user already registered")
	ErrUnknownEmail         = errors.New("no user with this email")
	ErrIncorrectPassword    = errors.New("incorrect password")
	ErrInvalidRole          = errors.New("role must be employee or manager")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrPasswordTooLong      = errors.New("password must be at most 72 bytes")
)

// AuthService handles registration, login and token lifecycle.
type AuthService struct {
	userRepo    repository.UserRepository
	tokens      *auth.TokenService
	revocations auth.RevocationStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenService, revocations auth.RevocationStore) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		tokens:      tokens,
		revocations: revocations,
	}
}

// RegisterInput represents the information needed to create a user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// Register creates a user and returns a token for it.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (string, *models.User, error) {
	email := normalizeEmail(input.Email)

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return "", nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", nil, fmt.Errorf("failed to check email: %w", err)
	}

	var role models.UserRole
	if input.Role != "" {
		parsed, ok := models.ParseUserRole(input.Role)
		if !ok {
			return "", nil, ErrInvalidRole
		}
		role = parsed
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", nil, ErrPasswordTooLong
		}
		return "", nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return "", nil, ErrEmailTaken
		}
		return "", nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, _, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns a fresh token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, *models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrUnknownEmail
		}
		return "", nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return "", nil, ErrIncorrectPassword
	}

	token, _, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, user, nil
}

// ListUsersByRole returns every user holding role, matched case-insensitively.
func (s *AuthService) ListUsersByRole(ctx context.Context, role string) ([]models.User, error) {
	parsed, ok := models.ParseUserRole(role)
	if !ok {
		return nil, ErrInvalidRole
	}

	users, err := s.userRepo.ListByRole(ctx, parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// Authenticate parses a bearer token and rejects it if it was revoked.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, auth.ErrRevokedToken
	}
	return claims, nil
}

// Logout revokes the token described by claims until it expires.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := s.revocations.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
