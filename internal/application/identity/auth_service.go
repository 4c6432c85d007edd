package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stocktrail/backend/internal/domain/identity"
	"github.com/stocktrail/backend/internal/domain/shared"
)

// TokenIssuer issues and revokes access tokens for authenticated users
type TokenIssuer interface {
	// IssueToken creates a signed token carrying the user's identity and role
	IssueToken(userID uuid.UUID, username string, role shared.Role) (string, time.Time, error)
	// RevokeToken invalidates a previously issued token
	RevokeToken(ctx context.Context, token string) error
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and user summary
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
}

// RegisterRequest represents a request to create a user account
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=admin super_admin seller buyer"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Active    bool       `json:"active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToUserResponse converts a user to its response representation
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role.String(),
		Active:    user.Active,
		LastLogin: user.LastLoginAt,
		CreatedAt: user.CreatedAt,
	}
}

// AuthService handles authentication and account management
type AuthService struct {
	userRepo identity.UserRepository
	tokens   TokenIssuer
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Login verifies credentials and issues a token. Failed lookups and
// bad passwords produce the same error so usernames cannot be probed.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")
		}
		return nil, err
	}
	if !user.Active || !user.CheckPassword(req.Password) {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")
	}

	token, expiresAt, err := s.tokens.IssueToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role.String(),
	}, nil
}

// Logout revokes the given token
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.tokens.RevokeToken(ctx, token)
}

// Register creates a new user account
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	user, err := identity.NewUser(req.Username, req.Email, req.Password, shared.Role(req.Role))
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// GetByID retrieves a user by ID
func (s *AuthService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}
