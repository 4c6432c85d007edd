package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stocktrail/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// User represents an application user with a single role
type User struct {
	shared.BaseAggregateRoot
	Username     string      `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email        string      `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string      `gorm:"type:varchar(200);not null"`
	Role         shared.Role `gorm:"type:varchar(20);not null;default:'buyer'"`
	Active       bool        `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with a hashed password
func NewUser(username, email, password string, role shared.Role) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if strings.TrimSpace(email) == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role: "+role.String())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		Email:             strings.ToLower(email),
		PasswordHash:      string(hash),
		Role:              role,
		Active:            true,
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordLogin stamps the last login time
func (u *User) RecordLogin(now time.Time) {
	u.LastLoginAt = &now
	u.UpdatedAt = now
	u.IncrementVersion()
}

// Deactivate disables the user account
func (u *User) Deactivate() {
	u.Active = false
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
