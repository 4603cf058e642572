package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-careers-backend/internal/domain"
	"go-careers-backend/pkg/apperror"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

const userColumns = `id, email, name, role, password_hash, created_at, updated_at`

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func insertUser(ctx context.Context, db dbtx, user *domain.AdminUser) error {
	query := `INSERT INTO admin_users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := db.Exec(ctx, query,
		user.ID, user.Email, user.Name, user.Role, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	return err
}

func (r *userRepo) Create(ctx context.Context, user *domain.AdminUser) error {
	err := insertUser(ctx, r.db, user)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("User with this email already exists")
		}
		return err
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM admin_users WHERE id = $1`, id)
}

// GetByEmail matches case-insensitively; emails are stored lower-cased
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM admin_users WHERE lower(email) = lower($1)`, email)
}

func (r *userRepo) getOne(ctx context.Context, query string, arg any) (*domain.AdminUser, error) {
	var user domain.AdminUser
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.Name, &user.Role, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}
