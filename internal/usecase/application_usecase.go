package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-careers-backend/internal/domain"
	"go-careers-backend/pkg/apperror"
	"go-careers-backend/pkg/logger"
)

type applicationUsecase struct {
	appRepo    domain.ApplicationRepository
	jobRepo    domain.JobRepository
	noteRepo   domain.NoteRepository
	ratingRepo domain.RatingRepository
	notifier   domain.Notifier
	now        func() time.Time
}

func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	noteRepo domain.NoteRepository,
	ratingRepo domain.RatingRepository,
	notifier domain.Notifier,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		appRepo:    appRepo,
		jobRepo:    jobRepo,
		noteRepo:   noteRepo,
		ratingRepo: ratingRepo,
		notifier:   notifier,
		now:        time.Now,
	}
}

func (u *applicationUsecase) Submit(ctx context.Context, input domain.SubmitApplicationInput) (*domain.Application, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.JobID == "" {
		return nil, apperror.BadRequest("Job is required")
	}
	if input.Name == "" || input.Email == "" {
		return nil, apperror.BadRequest("Name and email are required")
	}

	job, err := u.jobRepo.GetByID(ctx, input.JobID)
	if err != nil {
		return nil, storeError(err, "Job")
	}
	if !job.AcceptsApplications() {
		return nil, apperror.BadRequest("This job is not accepting applications")
	}

	now := u.now().UTC()
	// The deadline is a calendar day; applications are open until it ends
	if job.ApplicationDeadline != nil && !now.Before(job.ApplicationDeadline.UTC().Truncate(24*time.Hour).Add(24*time.Hour)) {
		return nil, apperror.BadRequest("The application deadline for this job has passed")
	}

	app := &domain.Application{
		ID:             uuid.NewString(),
		JobID:          job.ID,
		Name:           input.Name,
		Email:          input.Email,
		Phone:          strings.TrimSpace(input.Phone),
		Position:       job.Title,
		ResumeURL:      optional(input.ResumeURL),
		LinkedIn:       optional(input.LinkedIn),
		Portfolio:      optional(input.Portfolio),
		CoverLetter:    optional(input.CoverLetter),
		Experience:     strings.TrimSpace(input.Experience),
		Status:         domain.StageNew,
		Stage:          domain.StageNew,
		StageChangedAt: now,
		AppliedAt:      now,
		UpdatedAt:      now,
		Tags:           []string{},
	}

	if err := u.appRepo.Create(ctx, app); err != nil {
		return nil, storeError(err, "Job")
	}
	app.JobTitle = job.Title
	logger.Log.Info("Application submitted", "application_id", app.ID, "job_id", job.ID)

	u.notify(ctx, app)
	return app, nil
}

// notify never fails the submission; delivery errors are only logged
func (u *applicationUsecase) notify(ctx context.Context, app *domain.Application) {
	if u.notifier == nil {
		return
	}
	err := u.notifier.NotifyApplicationReceived(ctx, domain.ApplicationNotice{
		ApplicationID:  app.ID,
		CandidateName:  app.Name,
		CandidateEmail: app.Email,
		JobTitle:       app.Position,
	})
	if err != nil {
		logger.Log.Warn("Application email not delivered", "application_id", app.ID, "error", err)
	}
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func (u *applicationUsecase) List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, error) {
	for _, value := range []string{filter.Status, filter.Stage} {
		if value != "" && value != "all" && !domain.PipelineStage(value).IsValid() {
			return nil, apperror.InvalidStage(fmt.Sprintf("Unknown pipeline stage %q", value))
		}
	}
	if filter.Status == "all" {
		filter.Status = ""
	}
	if filter.Stage == "all" {
		filter.Stage = ""
	}

	apps, err := u.appRepo.List(ctx, filter)
	if err != nil {
		return nil, storeError(err, "Application")
	}
	return apps, nil
}

// Get returns the application with its notes and ratings
func (u *applicationUsecase) Get(ctx context.Context, id string) (*domain.Application, error) {
	app, err := u.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Application")
	}

	if app.Notes, err = u.noteRepo.ListByApplication(ctx, id); err != nil {
		return nil, storeError(err, "Note")
	}
	if app.Ratings, err = u.ratingRepo.ListByApplication(ctx, id); err != nil {
		return nil, storeError(err, "Rating")
	}
	return app, nil
}

func (u *applicationUsecase) UpdateStage(ctx context.Context, id string, stage domain.PipelineStage) (*domain.Application, error) {
	if !stage.IsValid() {
		return nil, apperror.InvalidStage(fmt.Sprintf("Unknown pipeline stage %q", stage))
	}
	if err := u.appRepo.UpdateStage(ctx, id, stage, u.now().UTC()); err != nil {
		return nil, storeError(err, "Application")
	}
	return u.Get(ctx, id)
}

func (u *applicationUsecase) AddNote(ctx context.Context, actor domain.Actor, id string, input domain.NoteInput) (*domain.Note, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, apperror.BadRequest("Note content is required")
	}
	if input.NoteType == "" {
		input.NoteType = domain.NoteGeneral
	}
	if !input.NoteType.IsValid() {
		return nil, apperror.BadRequest(fmt.Sprintf("Unknown note type %q", input.NoteType))
	}
	switch input.Visibility {
	case "":
		input.Visibility = domain.VisibilityTeam
	case domain.VisibilityTeam, domain.VisibilityPrivate:
	default:
		return nil, apperror.BadRequest(fmt.Sprintf("Unknown note visibility %q", input.Visibility))
	}

	if _, err := u.appRepo.GetByID(ctx, id); err != nil {
		return nil, storeError(err, "Application")
	}

	note := &domain.Note{
		ID:            uuid.NewString(),
		ApplicationID: id,
		AuthorID:      actor.ID,
		AuthorName:    displayName(actor),
		NoteType:      input.NoteType,
		Content:       content,
		IsPinned:      input.IsPinned,
		Visibility:    input.Visibility,
		CreatedAt:     u.now().UTC(),
	}
	if err := u.noteRepo.Create(ctx, note); err != nil {
		return nil, storeError(err, "Application")
	}
	return note, nil
}

func (u *applicationUsecase) AddRating(ctx context.Context, actor domain.Actor, id string, input domain.RatingInput) (*domain.Rating, error) {
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, apperror.BadRequest("Rating category is required")
	}
	maxScore := input.MaxScore
	if maxScore <= 0 {
		maxScore = domain.RatingScale
	}
	if input.Score < 0 || input.Score > maxScore {
		return nil, apperror.BadRequest(fmt.Sprintf("Score must be between 0 and %g", maxScore))
	}

	if _, err := u.appRepo.GetByID(ctx, id); err != nil {
		return nil, storeError(err, "Application")
	}

	rating := &domain.Rating{
		ID:            uuid.NewString(),
		ApplicationID: id,
		Category:      category,
		Score:         input.Score,
		MaxScore:      maxScore,
		ReviewerID:    actor.ID,
		ReviewerName:  displayName(actor),
		Comment:       optional(input.Comment),
		CreatedAt:     u.now().UTC(),
	}
	avg, err := u.ratingRepo.Create(ctx, rating)
	if err != nil {
		return nil, storeError(err, "Application")
	}
	logger.Log.Debug("Rating recorded", "application_id", id, "average", avg)
	return rating, nil
}

func displayName(actor domain.Actor) string {
	if actor.Name != "" {
		return actor.Name
	}
	return actor.Label()
}

// Delete removes the application with its notes and ratings and releases
// its slot in the job counter
func (u *applicationUsecase) Delete(ctx context.Context, id string) error {
	app, err := u.appRepo.Delete(ctx, id)
	if err != nil {
		return storeError(err, "Application")
	}
	logger.Log.Info("Application deleted", "application_id", id, "job_id", app.JobID)
	return nil
}
