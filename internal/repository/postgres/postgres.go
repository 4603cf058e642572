package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-careers-backend/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates missing tables and indexes
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// dbtx is satisfied by *pgxpool.Pool and pgx.Tx so inserts can be shared
// between regular writes and the seed transaction
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	pgForeignKeyViolation = "23503"
)

// notFound maps missing rows and dangling references to domain.ErrNotFound
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return domain.ErrNotFound
	}
	return err
}

// likePattern escapes LIKE wildcards and wraps term for a substring match
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
