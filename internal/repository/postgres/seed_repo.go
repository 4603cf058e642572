package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"go-careers-backend/internal/domain"
)

type seedRepo struct {
	db *pgxpool.Pool
}

func NewSeedRepository(db *pgxpool.Pool) domain.SeedRepository {
	return &seedRepo{db: db}
}

// Reset empties every table and loads data inside one transaction
func (r *seedRepo) Reset(ctx context.Context, data *domain.SeedData) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE application_ratings, application_notes, applications,
		job_status_history, jobs, job_templates, admin_users`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	for i := range data.Users {
		if err := insertUser(ctx, tx, &data.Users[i]); err != nil {
			return fmt.Errorf("insert user %s: %w", data.Users[i].Email, err)
		}
	}
	for i := range data.Templates {
		if err := insertTemplate(ctx, tx, &data.Templates[i]); err != nil {
			return fmt.Errorf("insert template %s: %w", data.Templates[i].Name, err)
		}
	}
	for i := range data.Jobs {
		if err := insertJob(ctx, tx, &data.Jobs[i]); err != nil {
			return fmt.Errorf("insert job %s: %w", data.Jobs[i].Slug, err)
		}
	}
	for i := range data.History {
		if err := insertHistory(ctx, tx, &data.History[i]); err != nil {
			return fmt.Errorf("insert history for job %s: %w", data.History[i].JobID, err)
		}
	}
	for i := range data.Applications {
		app := &data.Applications[i]
		if err := insertApplication(ctx, tx, app); err != nil {
			return fmt.Errorf("insert application %s: %w", app.Email, err)
		}
		for j := range app.Notes {
			if err := insertNote(ctx, tx, &app.Notes[j]); err != nil {
				return fmt.Errorf("insert note: %w", err)
			}
		}
		for j := range app.Ratings {
			if err := insertRating(ctx, tx, &app.Ratings[j]); err != nil {
				return fmt.Errorf("insert rating: %w", err)
			}
		}
	}

	return tx.Commit(ctx)
}
