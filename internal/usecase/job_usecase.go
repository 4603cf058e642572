package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-careers-backend/internal/domain"
	"go-careers-backend/pkg/apperror"
	"go-careers-backend/pkg/logger"
	"go-careers-backend/pkg/slug"
)

const (
	defaultTemplateCategory = "General"
	metaDescriptionLength   = 160
)

type jobUsecase struct {
	jobRepo      domain.JobRepository
	templateRepo domain.TemplateRepository
	now          func() time.Time
}

func NewJobUsecase(jobRepo domain.JobRepository, templateRepo domain.TemplateRepository) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:      jobRepo,
		templateRepo: templateRepo,
		now:          time.Now,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, actor string, job *domain.Job) error {
	job.Title = strings.TrimSpace(job.Title)
	if job.Title == "" {
		return apperror.BadRequest("Title is required")
	}
	if job.Type == "" {
		job.Type = domain.JobTypeFullTime
	}
	if !job.Type.IsValid() {
		return apperror.BadRequest(fmt.Sprintf("Unknown job type %q", job.Type))
	}
	if job.Status == "" {
		job.Status = domain.JobStatusDraft
	}
	if !job.Status.IsValid() {
		return apperror.BadRequest(fmt.Sprintf("Unknown job status %q", job.Status))
	}
	if job.Status == domain.JobStatusClosed {
		if job.ClosureReason == nil {
			return apperror.MissingReason("A closure reason is required for closed jobs")
		}
		if !job.ClosureReason.IsValid() {
			return apperror.BadRequest(fmt.Sprintf("Unknown closure reason %q", *job.ClosureReason))
		}
	} else if job.ClosureReason != nil {
		return apperror.BadRequest("A closure reason is only allowed for closed jobs")
	}

	return u.insert(ctx, actor, job)
}

// insert fills the generated fields and stores the job with its creation entry
func (u *jobUsecase) insert(ctx context.Context, actor string, job *domain.Job) error {
	now := u.now().UTC()

	job.ID = uuid.NewString()
	job.Slug = slug.Make(job.Title, job.ID)
	if job.Color == "" {
		job.Color = domain.DefaultJobColor
	}
	if job.Requirements == nil {
		job.Requirements = []string{}
	}
	if job.Responsibilities == nil {
		job.Responsibilities = []string{}
	}
	applyMetaDefaults(job)
	job.ApplicationsCount = 0
	job.StatusChangedAt = now
	job.CreatedAt = now
	job.UpdatedAt = now

	entry := &domain.JobStatusHistory{
		ID:        uuid.NewString(),
		JobID:     job.ID,
		ToStatus:  job.Status,
		ChangedAt: now,
		ChangedBy: actor,
		Reason:    job.ClosureReason,
	}

	if err := u.jobRepo.Create(ctx, job, entry); err != nil {
		return storeError(err, "Job")
	}
	logger.Log.Info("Job created", "job_id", job.ID, "status", job.Status, "actor", actor)
	return nil
}

func applyMetaDefaults(job *domain.Job) {
	if job.MetaTitle == "" {
		job.MetaTitle = job.Title
	}
	if job.MetaDescription == "" {
		job.MetaDescription = truncateRunes(strings.TrimSpace(job.Description), metaDescriptionLength)
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func (u *jobUsecase) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Job")
	}
	return job, nil
}

// GetPublicJob hides every job that is not currently published
func (u *jobUsecase) GetPublicJob(ctx context.Context, id string) (*domain.Job, error) {
	job, err := u.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusPublished {
		return nil, apperror.NotFound("Job not found")
	}
	return job, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	switch filter.Status {
	case "", "all":
		filter.Status = ""
	default:
		status := domain.JobStatus(filter.Status)
		if !status.IsValid() {
			return nil, apperror.BadRequest(fmt.Sprintf("Unknown job status %q", filter.Status))
		}
		// Asking for archived jobs by name is an explicit opt-in
		if status == domain.JobStatusArchived {
			filter.IncludeArchived = true
		}
	}
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Category = strings.TrimSpace(filter.Category)

	jobs, err := u.jobRepo.List(ctx, filter)
	if err != nil {
		return nil, storeError(err, "Job")
	}
	return jobs, nil
}

func (u *jobUsecase) ListPublicJobs(ctx context.Context, search string) ([]domain.Job, error) {
	return u.ListJobs(ctx, domain.JobFilter{
		Status: string(domain.JobStatusPublished),
		Search: search,
	})
}

// StatusCounts returns one entry per status, zero included
func (u *jobUsecase) StatusCounts(ctx context.Context) (map[domain.JobStatus]int, error) {
	counts, err := u.jobRepo.CountByStatus(ctx)
	if err != nil {
		return nil, storeError(err, "Job")
	}
	out := make(map[domain.JobStatus]int, len(domain.JobStatuses))
	for _, s := range domain.JobStatuses {
		out[s] = counts[s]
	}
	return out, nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, actor, id string, patch domain.JobPatch) (*domain.Job, error) {
	return u.saveWithRetry(ctx, id, func(current *domain.Job) (*domain.Job, *domain.JobStatusHistory, error) {
		next := current.Clone()
		if err := applyPatch(next, patch); err != nil {
			return nil, nil, err
		}

		now := u.now().UTC()
		next.UpdatedAt = now

		// A status equal to the current one is not a transition
		if patch.Status != nil && *patch.Status != current.Status {
			if *patch.Status != domain.JobStatusClosed && patch.ClosureReason != nil {
				return nil, nil, apperror.BadRequest("A closure reason is only allowed for closed jobs")
			}
			entry, err := transition(next, *patch.Status, patch.ClosureReason, actor, now)
			if err != nil {
				return nil, nil, err
			}
			return next, entry, nil
		}

		if patch.ClosureReason != nil {
			if current.Status != domain.JobStatusClosed {
				return nil, nil, apperror.BadRequest("A closure reason is only allowed for closed jobs")
			}
			if !patch.ClosureReason.IsValid() {
				return nil, nil, apperror.BadRequest(fmt.Sprintf("Unknown closure reason %q", *patch.ClosureReason))
			}
			reason := *patch.ClosureReason
			next.ClosureReason = &reason
		}
		return next, nil, nil
	})
}

func applyPatch(job *domain.Job, patch domain.JobPatch) error {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return apperror.BadRequest("Title is required")
		}
		job.Title = title
	}
	if patch.Type != nil {
		if !patch.Type.IsValid() {
			return apperror.BadRequest(fmt.Sprintf("Unknown job type %q", *patch.Type))
		}
		job.Type = *patch.Type
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		return apperror.BadRequest(fmt.Sprintf("Unknown job status %q", *patch.Status))
	}
	if patch.SalaryMin != nil {
		job.SalaryMin = *patch.SalaryMin
	}
	if patch.SalaryMax != nil {
		job.SalaryMax = *patch.SalaryMax
	}
	if patch.Location != nil {
		job.Location = *patch.Location
	}
	if patch.Color != nil {
		job.Color = *patch.Color
		if job.Color == "" {
			job.Color = domain.DefaultJobColor
		}
	}
	if patch.Description != nil {
		job.Description = *patch.Description
	}
	if patch.Requirements != nil {
		job.Requirements = append([]string{}, (*patch.Requirements)...)
	}
	if patch.Responsibilities != nil {
		job.Responsibilities = append([]string{}, (*patch.Responsibilities)...)
	}
	if patch.Benefits != nil {
		job.Benefits = append([]string{}, (*patch.Benefits)...)
	}
	if patch.ClearDeadline {
		job.ApplicationDeadline = nil
	} else if patch.ApplicationDeadline != nil {
		deadline := *patch.ApplicationDeadline
		job.ApplicationDeadline = &deadline
	}
	if patch.Category != nil {
		category := strings.TrimSpace(*patch.Category)
		if category == "" {
			job.Category = nil
		} else {
			job.Category = &category
		}
	}
	if patch.MetaTitle != nil {
		job.MetaTitle = *patch.MetaTitle
	}
	if patch.MetaDescription != nil {
		job.MetaDescription = *patch.MetaDescription
	}
	return nil
}

// transition moves job to target in place and returns the history entry to
// store with it. Nothing is modified when the move is not allowed.
func transition(job *domain.Job, target domain.JobStatus, reason *domain.ClosureReason, actor string, now time.Time) (*domain.JobStatusHistory, error) {
	if !job.Status.CanTransitionTo(target) {
		return nil, apperror.InvalidTransition(fmt.Sprintf("Cannot move job from %s to %s", job.Status, target))
	}

	entry := &domain.JobStatusHistory{
		ID:         uuid.NewString(),
		JobID:      job.ID,
		FromStatus: job.Status,
		ToStatus:   target,
		ChangedAt:  now,
		ChangedBy:  actor,
	}

	switch target {
	case domain.JobStatusClosed:
		if reason == nil || *reason == "" {
			return nil, apperror.MissingReason("A closure reason is required to close a job")
		}
		if !reason.IsValid() {
			return nil, apperror.BadRequest(fmt.Sprintf("Unknown closure reason %q", *reason))
		}
		r := *reason
		job.ClosureReason = &r
		entry.Reason = &r
	case domain.JobStatusArchived:
		// The reason survives in the history entry only
		if job.ClosureReason != nil {
			r := *job.ClosureReason
			entry.Reason = &r
		}
		job.ClosureReason = nil
	default:
		job.ClosureReason = nil
	}

	job.Status = target
	job.StatusChangedAt = now
	job.UpdatedAt = now
	return entry, nil
}

// saveWithRetry loads the job, lets mutate build the next version and writes
// it only if the status did not change in between. One stale write is retried
// against a fresh copy.
func (u *jobUsecase) saveWithRetry(ctx context.Context, id string, mutate func(current *domain.Job) (*domain.Job, *domain.JobStatusHistory, error)) (*domain.Job, error) {
	for attempt := 0; attempt < 2; attempt++ {
		current, err := u.jobRepo.GetByID(ctx, id)
		if err != nil {
			return nil, storeError(err, "Job")
		}

		next, entry, err := mutate(current)
		if err != nil {
			return nil, err
		}

		err = u.jobRepo.Save(ctx, next, current.Status, entry)
		if errors.Is(err, domain.ErrStaleWrite) {
			logger.Log.Warn("Job changed concurrently, retrying", "job_id", id, "attempt", attempt+1)
			continue
		}
		if err != nil {
			return nil, storeError(err, "Job")
		}

		if entry != nil {
			logger.Log.Info("Job status changed", "job_id", id, "from", entry.FromStatus, "to", entry.ToStatus, "actor", entry.ChangedBy)
		}
		// The counter is owned by the store and may have moved meanwhile
		next.ApplicationsCount = current.ApplicationsCount
		return next, nil
	}
	return nil, apperror.Conflict("Job was modified concurrently, please retry")
}

func (u *jobUsecase) changeStatus(ctx context.Context, actor, id string, target domain.JobStatus, reason *domain.ClosureReason) (*domain.Job, error) {
	return u.saveWithRetry(ctx, id, func(current *domain.Job) (*domain.Job, *domain.JobStatusHistory, error) {
		next := current.Clone()
		entry, err := transition(next, target, reason, actor, u.now().UTC())
		if err != nil {
			return nil, nil, err
		}
		return next, entry, nil
	})
}

func (u *jobUsecase) Publish(ctx context.Context, actor, id string) (*domain.Job, error) {
	return u.changeStatus(ctx, actor, id, domain.JobStatusPublished, nil)
}

func (u *jobUsecase) Pause(ctx context.Context, actor, id string) (*domain.Job, error) {
	return u.changeStatus(ctx, actor, id, domain.JobStatusPaused, nil)
}

func (u *jobUsecase) Close(ctx context.Context, actor, id string, reason *domain.ClosureReason) (*domain.Job, error) {
	return u.changeStatus(ctx, actor, id, domain.JobStatusClosed, reason)
}

func (u *jobUsecase) Archive(ctx context.Context, actor, id string) (*domain.Job, error) {
	return u.changeStatus(ctx, actor, id, domain.JobStatusArchived, nil)
}

func (u *jobUsecase) History(ctx context.Context, id string) ([]domain.JobStatusHistory, error) {
	if _, err := u.GetJob(ctx, id); err != nil {
		return nil, err
	}
	history, err := u.jobRepo.ListHistory(ctx, id)
	if err != nil {
		return nil, storeError(err, "Job history")
	}
	return history, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, id string) error {
	if err := u.jobRepo.Delete(ctx, id); err != nil {
		return storeError(err, "Job")
	}
	logger.Log.Info("Job deleted", "job_id", id)
	return nil
}

// Duplicate copies a job of any status into a fresh draft
func (u *jobUsecase) Duplicate(ctx context.Context, actor, id string) (*domain.Job, error) {
	source, err := u.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}

	dup := source.Clone()
	dup.Title = source.Title + " (Copy)"
	dup.Status = domain.JobStatusDraft
	dup.ClosureReason = nil
	dup.ApplicationDeadline = nil
	dup.MetaTitle = ""
	if source.MetaTitle != source.Title {
		dup.MetaTitle = source.MetaTitle
	}

	if err := u.insert(ctx, actor, dup); err != nil {
		return nil, err
	}
	return dup, nil
}

func (u *jobUsecase) CreateFromTemplate(ctx context.Context, actor, templateID string) (*domain.Job, error) {
	tpl, err := u.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		return nil, storeError(err, "Template")
	}

	tplID := tpl.ID
	job := &domain.Job{
		Title:            tpl.Title,
		Type:             tpl.Type,
		SalaryMin:        tpl.SalaryMin,
		SalaryMax:        tpl.SalaryMax,
		Location:         tpl.Location,
		Description:      tpl.Description,
		Requirements:     append([]string{}, tpl.Requirements...),
		Responsibilities: append([]string{}, tpl.Responsibilities...),
		Benefits:         append([]string{}, tpl.Benefits...),
		Status:           domain.JobStatusDraft,
		TemplateID:       &tplID,
	}
	if tpl.Category != "" {
		category := tpl.Category
		job.Category = &category
	}
	if !job.Type.IsValid() {
		job.Type = domain.JobTypeFullTime
	}

	if err := u.insert(ctx, actor, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (u *jobUsecase) SaveAsTemplate(ctx context.Context, id, name string) (*domain.JobTemplate, error) {
	job, err := u.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = job.Title
	}
	category := defaultTemplateCategory
	if job.Category != nil && *job.Category != "" {
		category = *job.Category
	}

	tpl := &domain.JobTemplate{
		ID:               uuid.NewString(),
		Name:             name,
		Category:         category,
		Title:            job.Title,
		Type:             job.Type,
		SalaryMin:        job.SalaryMin,
		SalaryMax:        job.SalaryMax,
		Location:         job.Location,
		Description:      job.Description,
		Requirements:     append([]string{}, job.Requirements...),
		Responsibilities: append([]string{}, job.Responsibilities...),
		Benefits:         append([]string{}, job.Benefits...),
		CreatedAt:        u.now().UTC(),
	}
	if err := u.templateRepo.Create(ctx, tpl); err != nil {
		return nil, storeError(err, "Template")
	}
	return tpl, nil
}
