package domain

import (
	"context"
	"time"
)

type JobStatus string

const (
	JobStatusDraft     JobStatus = "draft"
	JobStatusPublished JobStatus = "published"
	JobStatusPaused    JobStatus = "paused"
	JobStatusClosed    JobStatus = "closed"
	JobStatusArchived  JobStatus = "archived"
)

// JobStatuses lists every status in lifecycle order
var JobStatuses = []JobStatus{JobStatusDraft, JobStatusPublished, JobStatusPaused, JobStatusClosed, JobStatusArchived}

type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

type ClosureReason string

const (
	ClosureFilled    ClosureReason = "filled"
	ClosureCancelled ClosureReason = "cancelled"
	ClosureBudget    ClosureReason = "budget"
	ClosureDeadline  ClosureReason = "deadline"
	ClosureOther     ClosureReason = "other"
)

const DefaultJobColor = "#3B82F6"

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusDraft, JobStatusPublished, JobStatusPaused, JobStatusClosed, JobStatusArchived:
		return true
	}
	return false
}

func (t JobType) IsValid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		return true
	}
	return false
}

func (r ClosureReason) IsValid() bool {
	switch r {
	case ClosureFilled, ClosureCancelled, ClosureBudget, ClosureDeadline, ClosureOther:
		return true
	}
	return false
}

// Job is a position on the careers page.
// ClosureReason is non-nil exactly when Status is closed.
type Job struct {
	ID                  string         `json:"id"`
	Slug                string         `json:"slug"`
	Title               string         `json:"title"`
	Type                JobType        `json:"type"`
	SalaryMin           string         `json:"salaryMin"`
	SalaryMax           string         `json:"salaryMax"`
	Location            string         `json:"location"`
	Color               string         `json:"color"`
	Description         string         `json:"description"`
	Requirements        []string       `json:"requirements"`
	Responsibilities    []string       `json:"responsibilities"`
	Benefits            []string       `json:"benefits,omitempty"`
	Status              JobStatus      `json:"status"`
	StatusChangedAt     time.Time      `json:"statusChangedAt"`
	ClosureReason       *ClosureReason `json:"closureReason,omitempty"`
	ApplicationDeadline *time.Time     `json:"applicationDeadline,omitempty"`
	MetaTitle           string         `json:"metaTitle,omitempty"`
	MetaDescription     string         `json:"metaDescription,omitempty"`
	ApplicationsCount   int            `json:"applicationsCount"`
	TemplateID          *string        `json:"templateId,omitempty"`
	Category            *string        `json:"category,omitempty"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

// JobStatusHistory is one immutable audit entry. FromStatus is empty for the
// entry written when the job is created.
type JobStatusHistory struct {
	ID         string         `json:"id"`
	JobID      string         `json:"jobId"`
	FromStatus JobStatus      `json:"fromStatus,omitempty"`
	ToStatus   JobStatus      `json:"toStatus"`
	ChangedAt  time.Time      `json:"changedAt"`
	ChangedBy  string         `json:"changedBy"`
	Reason     *ClosureReason `json:"reason,omitempty"`
}

// JobFilter narrows job listings. Status "" or "all" disables status filtering.
type JobFilter struct {
	Status          string
	IncludeArchived bool
	Search          string
	Category        string
}

// JobPatch carries the fields of a partial update; nil means unchanged
type JobPatch struct {
	Title               *string
	Type                *JobType
	SalaryMin           *string
	SalaryMax           *string
	Location            *string
	Color               *string
	Description         *string
	Requirements        *[]string
	Responsibilities    *[]string
	Benefits            *[]string
	Status              *JobStatus
	ClosureReason       *ClosureReason
	ApplicationDeadline *time.Time
	ClearDeadline       bool
	Category            *string
	MetaTitle           *string
	MetaDescription     *string
}

type JobRepository interface {
	// Create inserts the job and its creation history entry together
	Create(ctx context.Context, job *Job, entry *JobStatusHistory) error
	GetByID(ctx context.Context, id string) (*Job, error)
	List(ctx context.Context, filter JobFilter) ([]Job, error)
	CountByStatus(ctx context.Context) (map[JobStatus]int, error)
	// Save overwrites every stored field except applicationsCount, only if the
	// stored status still equals expected. It returns ErrStaleWrite otherwise.
	// A non-nil entry is appended to the history in the same write.
	Save(ctx context.Context, job *Job, expected JobStatus, entry *JobStatusHistory) error
	Delete(ctx context.Context, id string) error
	// AdjustApplicationsCount atomically adds delta, never going below zero,
	// and returns the new count
	AdjustApplicationsCount(ctx context.Context, id string, delta int) (int, error)
	ListHistory(ctx context.Context, jobID string) ([]JobStatusHistory, error)
}

type JobUsecase interface {
	CreateJob(ctx context.Context, actor string, job *Job) error
	GetJob(ctx context.Context, id string) (*Job, error)
	GetPublicJob(ctx context.Context, id string) (*Job, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]Job, error)
	ListPublicJobs(ctx context.Context, search string) ([]Job, error)
	StatusCounts(ctx context.Context) (map[JobStatus]int, error)
	UpdateJob(ctx context.Context, actor, id string, patch JobPatch) (*Job, error)
	DeleteJob(ctx context.Context, id string) error

	Publish(ctx context.Context, actor, id string) (*Job, error)
	Pause(ctx context.Context, actor, id string) (*Job, error)
	Close(ctx context.Context, actor, id string, reason *ClosureReason) (*Job, error)
	Archive(ctx context.Context, actor, id string) (*Job, error)
	History(ctx context.Context, id string) ([]JobStatusHistory, error)

	Duplicate(ctx context.Context, actor, id string) (*Job, error)
	CreateFromTemplate(ctx context.Context, actor, templateID string) (*Job, error)
	SaveAsTemplate(ctx context.Context, id, name string) (*JobTemplate, error)
}
