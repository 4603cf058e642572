package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"go-careers-backend/internal/domain"
)

const jobColumns = `id, slug, title, type, salary_min, salary_max, location, color, description,
	requirements, responsibilities, benefits, status, status_changed_at, closure_reason,
	application_deadline, meta_title, meta_description, applications_count, template_id,
	category, created_at, updated_at`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var (
		job           domain.Job
		jobType       string
		status        string
		closureReason *string
		benefits      []string
	)
	err := row.Scan(
		&job.ID, &job.Slug, &job.Title, &jobType, &job.SalaryMin, &job.SalaryMax, &job.Location,
		&job.Color, &job.Description, pq.Array(&job.Requirements), pq.Array(&job.Responsibilities),
		pq.Array(&benefits), &status, &job.StatusChangedAt, &closureReason,
		&job.ApplicationDeadline, &job.MetaTitle, &job.MetaDescription, &job.ApplicationsCount,
		&job.TemplateID, &job.Category, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	job.Type = domain.JobType(jobType)
	job.Status = domain.JobStatus(status)
	if closureReason != nil {
		r := domain.ClosureReason(*closureReason)
		job.ClosureReason = &r
	}
	if benefits != nil {
		job.Benefits = benefits
	}
	if job.Requirements == nil {
		job.Requirements = []string{}
	}
	if job.Responsibilities == nil {
		job.Responsibilities = []string{}
	}
	return &job, nil
}

func closureArg(r *domain.ClosureReason) any {
	if r == nil {
		return nil
	}
	return string(*r)
}

func benefitsArg(b []string) any {
	if b == nil {
		return nil
	}
	return pq.Array(b)
}

func insertJob(ctx context.Context, db dbtx, job *domain.Job) error {
	query := `INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`
	_, err := db.Exec(ctx, query,
		job.ID, job.Slug, job.Title, string(job.Type), job.SalaryMin, job.SalaryMax, job.Location,
		job.Color, job.Description, pq.Array(nonNil(job.Requirements)), pq.Array(nonNil(job.Responsibilities)),
		benefitsArg(job.Benefits), string(job.Status), job.StatusChangedAt, closureArg(job.ClosureReason),
		job.ApplicationDeadline, job.MetaTitle, job.MetaDescription, job.ApplicationsCount,
		nullableString(job.TemplateID), nullableString(job.Category), job.CreatedAt, job.UpdatedAt,
	)
	return err
}

func insertHistory(ctx context.Context, db dbtx, entry *domain.JobStatusHistory) error {
	var from any
	if entry.FromStatus != "" {
		from = string(entry.FromStatus)
	}
	_, err := db.Exec(ctx, `INSERT INTO job_status_history (id, job_id, from_status, to_status, changed_at, changed_by, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.JobID, from, string(entry.ToStatus), entry.ChangedAt, entry.ChangedBy, closureArg(entry.Reason),
	)
	return err
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job, entry *domain.JobStatusHistory) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := insertJob(ctx, tx, job); err != nil {
		return err
	}
	if entry != nil {
		if err := insertHistory(ctx, tx, entry); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	job, err := scanJob(row)
	if err != nil {
		return nil, notFound(err)
	}
	return job, nil
}

func (r *jobRepo) List(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != "" {
		conditions = append(conditions, "status = "+arg(filter.Status))
	}
	if !filter.IncludeArchived {
		conditions = append(conditions, "status <> 'archived'")
	}
	if filter.Category != "" {
		conditions = append(conditions, "category = "+arg(filter.Category))
	}
	if filter.Search != "" {
		p := arg(likePattern(filter.Search))
		conditions = append(conditions, fmt.Sprintf("(title ILIKE %[1]s OR location ILIKE %[1]s OR COALESCE(category, '') ILIKE %[1]s)", p))
	}

	query := `SELECT ` + jobColumns + ` FROM jobs`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) CountByStatus(ctx context.Context) (map[domain.JobStatus]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM jobs GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.JobStatus]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[domain.JobStatus(status)] = n
	}
	return counts, rows.Err()
}

// Save is a compare-and-swap on the status column. applications_count is
// never written here; it only moves through AdjustApplicationsCount.
func (r *jobRepo) Save(ctx context.Context, job *domain.Job, expected domain.JobStatus, entry *domain.JobStatusHistory) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `UPDATE jobs SET
			slug = $2, title = $3, type = $4, salary_min = $5, salary_max = $6, location = $7,
			color = $8, description = $9, requirements = $10, responsibilities = $11, benefits = $12,
			status = $13, status_changed_at = $14, closure_reason = $15, application_deadline = $16,
			meta_title = $17, meta_description = $18, template_id = $19, category = $20, updated_at = $21
		WHERE id = $1 AND status = $22`
	result, err := tx.Exec(ctx, query,
		job.ID, job.Slug, job.Title, string(job.Type), job.SalaryMin, job.SalaryMax, job.Location,
		job.Color, job.Description, pq.Array(nonNil(job.Requirements)), pq.Array(nonNil(job.Responsibilities)),
		benefitsArg(job.Benefits), string(job.Status), job.StatusChangedAt, closureArg(job.ClosureReason),
		job.ApplicationDeadline, job.MetaTitle, job.MetaDescription, nullableString(job.TemplateID),
		nullableString(job.Category), job.UpdatedAt, string(expected),
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM jobs WHERE id = $1)`, job.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrStaleWrite
	}

	if entry != nil {
		if err := insertHistory(ctx, tx, entry); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Delete removes the job; applications, notes, ratings and history cascade
func (r *jobRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) AdjustApplicationsCount(ctx context.Context, id string, delta int) (int, error) {
	return adjustApplicationsCount(ctx, r.db, id, delta)
}

func adjustApplicationsCount(ctx context.Context, db dbtx, id string, delta int) (int, error) {
	var count int
	err := db.QueryRow(ctx,
		`UPDATE jobs SET applications_count = GREATEST(applications_count + $2, 0) WHERE id = $1 RETURNING applications_count`,
		id, delta,
	).Scan(&count)
	if err != nil {
		return 0, notFound(err)
	}
	return count, nil
}

func (r *jobRepo) ListHistory(ctx context.Context, jobID string) ([]domain.JobStatusHistory, error) {
	rows, err := r.db.Query(ctx, `SELECT id, job_id, COALESCE(from_status, ''), to_status, changed_at, changed_by, reason
		FROM job_status_history WHERE job_id = $1 ORDER BY changed_at, id`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := []domain.JobStatusHistory{}
	for rows.Next() {
		var (
			entry    domain.JobStatusHistory
			from, to string
			reason   *string
		)
		if err := rows.Scan(&entry.ID, &entry.JobID, &from, &to, &entry.ChangedAt, &entry.ChangedBy, &reason); err != nil {
			return nil, err
		}
		entry.FromStatus = domain.JobStatus(from)
		entry.ToStatus = domain.JobStatus(to)
		if reason != nil {
			r := domain.ClosureReason(*reason)
			entry.Reason = &r
		}
		history = append(history, entry)
	}
	return history, rows.Err()
}
