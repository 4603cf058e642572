package domain

import (
	"context"
	"time"
)

const (
	RoleAdmin         = "admin"
	RoleRecruiter     = "recruiter"
	RoleHiringManager = "hiring_manager"
)

// AdminUser is a dashboard operator
type AdminUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Credentials struct {
	Email    string
	Password string
}

type Session struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      *AdminUser `json:"user"`
}

// Actor identifies who performs an action, taken from the session
type Actor struct {
	ID    string
	Email string
	Name  string
	Role  string
}

// Label is the value recorded in audit fields
func (a Actor) Label() string {
	if a.Email != "" {
		return a.Email
	}
	if a.ID != "" {
		return a.ID
	}
	return "system"
}

type UserRepository interface {
	Create(ctx context.Context, user *AdminUser) error
	GetByID(ctx context.Context, id string) (*AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*AdminUser, error)
}

// TokenIssuer signs session tokens for authenticated users
type TokenIssuer interface {
	Issue(user *AdminUser) (string, time.Time, error)
}

type AuthUsecase interface {
	Authenticate(ctx context.Context, creds Credentials) (*Session, error)
	GetCurrentUser(ctx context.Context, id string) (*AdminUser, error)
}

// LoginGuard throttles repeated failed logins for one account
type LoginGuard interface {
	IsBlocked(ctx context.Context, email string) (bool, error)
	RecordFailedAttempt(ctx context.Context, email string) (blocked bool, err error)
	ClearAttempts(ctx context.Context, email string) error
}
