package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"go-careers-backend/internal/domain"
)

const applicationColumns = `a.id, a.job_id, a.name, a.email, a.phone, a.position, a.resume_url,
	a.linkedin, a.portfolio, a.cover_letter, a.experience, a.status, a.stage, a.stage_changed_at,
	a.rating, a.applied_at, a.updated_at, a.is_archived, a.tags, a.reviewer_id`

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func scanApplication(row rowScanner, withJobTitle bool) (*domain.Application, error) {
	var (
		app           domain.Application
		status, stage string
	)
	dest := []any{
		&app.ID, &app.JobID, &app.Name, &app.Email, &app.Phone, &app.Position, &app.ResumeURL,
		&app.LinkedIn, &app.Portfolio, &app.CoverLetter, &app.Experience, &status, &stage,
		&app.StageChangedAt, &app.Rating, &app.AppliedAt, &app.UpdatedAt, &app.IsArchived,
		pq.Array(&app.Tags), &app.ReviewerID,
	}
	if withJobTitle {
		dest = append(dest, &app.JobTitle)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	app.Status = domain.PipelineStage(status)
	app.Stage = domain.PipelineStage(stage)
	if app.Tags == nil {
		app.Tags = []string{}
	}
	return &app, nil
}

func insertApplication(ctx context.Context, db dbtx, app *domain.Application) error {
	tags := app.Tags
	if tags == nil {
		tags = []string{}
	}
	_, err := db.Exec(ctx, `INSERT INTO applications (id, job_id, name, email, phone, position, resume_url,
			linkedin, portfolio, cover_letter, experience, status, stage, stage_changed_at, rating,
			applied_at, updated_at, is_archived, tags, reviewer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		app.ID, app.JobID, app.Name, app.Email, app.Phone, app.Position, nullableString(app.ResumeURL),
		nullableString(app.LinkedIn), nullableString(app.Portfolio), nullableString(app.CoverLetter),
		app.Experience, string(app.Status), string(app.Stage), app.StageChangedAt, app.Rating,
		app.AppliedAt, app.UpdatedAt, app.IsArchived, pq.Array(tags), nullableString(app.ReviewerID),
	)
	return err
}

// Create inserts the application and bumps the job counter in one transaction
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := adjustApplicationsCount(ctx, tx, app.JobID, 1); err != nil {
		return err
	}
	if err := insertApplication(ctx, tx, app); err != nil {
		return notFound(err)
	}
	return tx.Commit(ctx)
}

// GetByID retrieves an application by ID with its job title
func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + `, COALESCE(j.title, '')
		FROM applications a
		LEFT JOIN jobs j ON a.job_id = j.id
		WHERE a.id = $1`
	app, err := scanApplication(r.db.QueryRow(ctx, query, id), true)
	if err != nil {
		return nil, notFound(err)
	}
	return app, nil
}

func (r *applicationRepo) List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, error) {
	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.JobID != "" {
		conditions = append(conditions, "a.job_id = "+arg(filter.JobID))
	}
	if filter.Status != "" {
		conditions = append(conditions, "a.status = "+arg(filter.Status))
	}
	if filter.Stage != "" {
		conditions = append(conditions, "a.stage = "+arg(filter.Stage))
	}
	if !filter.IncludeArchived {
		conditions = append(conditions, "a.is_archived = FALSE")
	}

	query := `SELECT ` + applicationColumns + `, COALESCE(j.title, '')
		FROM applications a
		LEFT JOIN jobs j ON a.job_id = j.id`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.applied_at DESC"

	return r.queryApplications(ctx, query, args...)
}

func (r *applicationRepo) ListByIDs(ctx context.Context, ids []string) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + `, COALESCE(j.title, '')
		FROM applications a
		LEFT JOIN jobs j ON a.job_id = j.id
		WHERE a.id = ANY($1)
		ORDER BY a.applied_at DESC`
	return r.queryApplications(ctx, query, pq.Array(ids))
}

func (r *applicationRepo) queryApplications(ctx context.Context, query string, args ...any) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows, true)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

// exec runs a single-row update and reports a missing row as ErrNotFound
func (r *applicationRepo) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStage writes stage and its status mirror together
func (r *applicationRepo) UpdateStage(ctx context.Context, id string, stage domain.PipelineStage, at time.Time) error {
	return r.exec(ctx,
		`UPDATE applications SET stage = $2, status = $2, stage_changed_at = $3, updated_at = $3 WHERE id = $1`,
		id, string(stage), at,
	)
}

func (r *applicationRepo) SetArchived(ctx context.Context, id string, archived bool, at time.Time) error {
	return r.exec(ctx, `UPDATE applications SET is_archived = $2, updated_at = $3 WHERE id = $1`, id, archived, at)
}

func (r *applicationRepo) AddTag(ctx context.Context, id, tag string) error {
	return r.exec(ctx, `UPDATE applications
		SET tags = CASE WHEN $2::text = ANY(tags) THEN tags ELSE array_append(tags, $2::text) END,
			updated_at = now()
		WHERE id = $1`, id, tag)
}

func (r *applicationRepo) RemoveTag(ctx context.Context, id, tag string) error {
	return r.exec(ctx, `UPDATE applications SET tags = array_remove(tags, $2::text), updated_at = now() WHERE id = $1`, id, tag)
}

func (r *applicationRepo) AssignReviewer(ctx context.Context, id, reviewerID string) error {
	return r.exec(ctx, `UPDATE applications SET reviewer_id = $2, updated_at = now() WHERE id = $1`, id, reviewerID)
}

func deleteApplication(ctx context.Context, db dbtx, id string) (*domain.Application, error) {
	// Notes and ratings go with the row through ON DELETE CASCADE
	query := `DELETE FROM applications a WHERE a.id = $1 RETURNING ` + applicationColumns
	app, err := scanApplication(db.QueryRow(ctx, query, id), false)
	if err != nil {
		return nil, notFound(err)
	}
	return app, nil
}

func (r *applicationRepo) Delete(ctx context.Context, id string) (*domain.Application, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	app, err := deleteApplication(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if _, err := adjustApplicationsCount(ctx, tx, app.JobID, -1); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

func (r *applicationRepo) DeleteForJob(ctx context.Context, jobID string, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	deleted, err := deleteApplicationsForJob(ctx, tx, jobID, ids)
	if err != nil {
		return nil, err
	}
	if len(deleted) > 0 {
		if _, err := adjustApplicationsCount(ctx, tx, jobID, -len(deleted)); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return deleted, nil
}

func deleteApplicationsForJob(ctx context.Context, db dbtx, jobID string, ids []string) ([]string, error) {
	rows, err := db.Query(ctx, `DELETE FROM applications WHERE job_id = $1 AND id = ANY($2) RETURNING id`, jobID, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deleted := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		deleted = append(deleted, id)
	}
	return deleted, rows.Err()
}
