package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"go-careers-backend/internal/domain"
)

const templateColumns = `id, name, category, title, type, salary_min, salary_max, location,
	description, requirements, responsibilities, benefits, created_at`

type templateRepo struct {
	db *pgxpool.Pool
}

func NewTemplateRepository(db *pgxpool.Pool) domain.TemplateRepository {
	return &templateRepo{db: db}
}

func scanTemplate(row rowScanner) (*domain.JobTemplate, error) {
	var (
		tpl     domain.JobTemplate
		jobType string
	)
	err := row.Scan(
		&tpl.ID, &tpl.Name, &tpl.Category, &tpl.Title, &jobType, &tpl.SalaryMin, &tpl.SalaryMax,
		&tpl.Location, &tpl.Description, pq.Array(&tpl.Requirements), pq.Array(&tpl.Responsibilities),
		pq.Array(&tpl.Benefits), &tpl.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	tpl.Type = domain.JobType(jobType)
	for _, list := range []*[]string{&tpl.Requirements, &tpl.Responsibilities, &tpl.Benefits} {
		if *list == nil {
			*list = []string{}
		}
	}
	return &tpl, nil
}

func insertTemplate(ctx context.Context, db dbtx, tpl *domain.JobTemplate) error {
	query := `INSERT INTO job_templates (` + templateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := db.Exec(ctx, query,
		tpl.ID, tpl.Name, tpl.Category, tpl.Title, string(tpl.Type), tpl.SalaryMin, tpl.SalaryMax,
		tpl.Location, tpl.Description, pq.Array(nonNil(tpl.Requirements)),
		pq.Array(nonNil(tpl.Responsibilities)), pq.Array(nonNil(tpl.Benefits)), tpl.CreatedAt,
	)
	return err
}

func (r *templateRepo) Create(ctx context.Context, tpl *domain.JobTemplate) error {
	return insertTemplate(ctx, r.db, tpl)
}

func (r *templateRepo) GetByID(ctx context.Context, id string) (*domain.JobTemplate, error) {
	tpl, err := scanTemplate(r.db.QueryRow(ctx, `SELECT `+templateColumns+` FROM job_templates WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return tpl, nil
}

func (r *templateRepo) List(ctx context.Context) ([]domain.JobTemplate, error) {
	rows, err := r.db.Query(ctx, `SELECT `+templateColumns+` FROM job_templates ORDER BY category, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []domain.JobTemplate{}
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *tpl)
	}
	return templates, rows.Err()
}

// Delete leaves jobs created from the template untouched
func (r *templateRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM job_templates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
