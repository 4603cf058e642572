package usecase

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"go-careers-backend/internal/domain"
	"go-careers-backend/pkg/apperror"
	"go-careers-backend/pkg/logger"
)

// dummyHash keeps the response time of unknown emails close to wrong passwords
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("careers-dummy-password"), bcrypt.DefaultCost)

type authUsecase struct {
	userRepo domain.UserRepository
	issuer   domain.TokenIssuer
	guard    domain.LoginGuard
}

// NewAuthUsecase wires credential checks. guard may be nil to disable lockout.
func NewAuthUsecase(userRepo domain.UserRepository, issuer domain.TokenIssuer, guard domain.LoginGuard) domain.AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		issuer:   issuer,
		guard:    guard,
	}
}

func (u *authUsecase) Authenticate(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || creds.Password == "" {
		return nil, apperror.Unauthorized("Invalid email or password")
	}

	if u.isBlocked(ctx, email) {
		return nil, apperror.RateLimited("Too many failed login attempts. Please try again later.")
	}

	user, err := u.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(creds.Password))
		u.recordFailure(ctx, email)
		return nil, apperror.Unauthorized("Invalid email or password")
	}
	if err != nil {
		return nil, storeError(err, "User")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		logger.Log.Warn("Failed login attempt", "email", email)
		u.recordFailure(ctx, email)
		return nil, apperror.Unauthorized("Invalid email or password")
	}
	if u.guard != nil {
		if err := u.guard.ClearAttempts(ctx, email); err != nil {
			logger.Log.Warn("Failed to clear login attempts", "email", email, "error", err)
		}
	}

	token, expiresAt, err := u.issuer.Issue(user)
	if err != nil {
		logger.Log.Error("Failed to issue session token", "user_id", user.ID, "error", err)
		return nil, apperror.Internal(err)
	}

	logger.Log.Info("Admin logged in", "user_id", user.ID, "role", user.Role)
	return &domain.Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// isBlocked fails open: a broken lockout backend must not stop admins logging in
func (u *authUsecase) isBlocked(ctx context.Context, email string) bool {
	if u.guard == nil {
		return false
	}
	blocked, err := u.guard.IsBlocked(ctx, email)
	if err != nil {
		logger.Log.Warn("Login guard unavailable", "error", err)
		return false
	}
	return blocked
}

func (u *authUsecase) recordFailure(ctx context.Context, email string) {
	if u.guard == nil {
		return
	}
	blocked, err := u.guard.RecordFailedAttempt(ctx, email)
	if err != nil {
		logger.Log.Warn("Failed to record login attempt", "email", email, "error", err)
		return
	}
	if blocked {
		logger.Log.Warn("Admin account temporarily blocked", "email", email)
	}
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.AdminUser, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "User")
	}
	return user, nil
}
