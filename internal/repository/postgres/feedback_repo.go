package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"go-careers-backend/internal/domain"
)

type noteRepo struct {
	db *pgxpool.Pool
}

func NewNoteRepository(db *pgxpool.Pool) domain.NoteRepository {
	return &noteRepo{db: db}
}

func insertNote(ctx context.Context, db dbtx, note *domain.Note) error {
	_, err := db.Exec(ctx, `INSERT INTO application_notes
			(id, application_id, author_id, author_name, note_type, content, is_pinned, visibility, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		note.ID, note.ApplicationID, note.AuthorID, note.AuthorName, string(note.NoteType),
		note.Content, note.IsPinned, string(note.Visibility), note.CreatedAt,
	)
	return err
}

// Create fails with ErrNotFound when the application does not exist
func (r *noteRepo) Create(ctx context.Context, note *domain.Note) error {
	return notFound(insertNote(ctx, r.db, note))
}

// ListByApplication returns pinned notes first, then oldest first
func (r *noteRepo) ListByApplication(ctx context.Context, applicationID string) ([]domain.Note, error) {
	rows, err := r.db.Query(ctx, `SELECT id, application_id, author_id, author_name, note_type, content,
			is_pinned, visibility, created_at
		FROM application_notes WHERE application_id = $1
		ORDER BY is_pinned DESC, created_at`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []domain.Note{}
	for rows.Next() {
		var (
			note                 domain.Note
			noteType, visibility string
		)
		if err := rows.Scan(&note.ID, &note.ApplicationID, &note.AuthorID, &note.AuthorName, &noteType,
			&note.Content, &note.IsPinned, &visibility, &note.CreatedAt); err != nil {
			return nil, err
		}
		note.NoteType = domain.NoteType(noteType)
		note.Visibility = domain.NoteVisibility(visibility)
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

type ratingRepo struct {
	db *pgxpool.Pool
}

func NewRatingRepository(db *pgxpool.Pool) domain.RatingRepository {
	return &ratingRepo{db: db}
}

func insertRating(ctx context.Context, db dbtx, rating *domain.Rating) error {
	_, err := db.Exec(ctx, `INSERT INTO application_ratings
			(id, application_id, category, score, max_score, reviewer_id, reviewer_name, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rating.ID, rating.ApplicationID, rating.Category, rating.Score, rating.MaxScore,
		rating.ReviewerID, rating.ReviewerName, nullableString(rating.Comment), rating.CreatedAt,
	)
	return err
}

// Create stores the rating and writes the new average onto the application.
// The average uses the same normalisation as domain.AverageRating.
func (r *ratingRepo) Create(ctx context.Context, rating *domain.Rating) (float64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if err := insertRating(ctx, tx, rating); err != nil {
		return 0, notFound(err)
	}

	var avg float64
	err = tx.QueryRow(ctx, `UPDATE applications SET
			rating = COALESCE((
				SELECT AVG(score / max_score * $2)
				FROM application_ratings
				WHERE application_id = $1 AND max_score > 0
			), 0),
			updated_at = now()
		WHERE id = $1
		RETURNING rating`, rating.ApplicationID, domain.RatingScale).Scan(&avg)
	if err != nil {
		return 0, notFound(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return avg, nil
}

func (r *ratingRepo) ListByApplication(ctx context.Context, applicationID string) ([]domain.Rating, error) {
	rows, err := r.db.Query(ctx, `SELECT id, application_id, category, score, max_score, reviewer_id,
			reviewer_name, comment, created_at
		FROM application_ratings WHERE application_id = $1
		ORDER BY created_at`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := []domain.Rating{}
	for rows.Next() {
		var rating domain.Rating
		if err := rows.Scan(&rating.ID, &rating.ApplicationID, &rating.Category, &rating.Score,
			&rating.MaxScore, &rating.ReviewerID, &rating.ReviewerName, &rating.Comment,
			&rating.CreatedAt); err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}
