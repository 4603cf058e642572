package domain

import (
	"context"
	"time"
)

// PipelineStage is the hiring pipeline position of an application.
// Status and Stage of an Application always hold the same value.
type PipelineStage string

const (
	StageNew                PipelineStage = "new"
	StageScreening          PipelineStage = "screening"
	StageInterviewScheduled PipelineStage = "interview_scheduled"
	StageInterviewComplete  PipelineStage = "interview_complete"
	StageOfferPending       PipelineStage = "offer_pending"
	StageHired              PipelineStage = "hired"
	StageRejected           PipelineStage = "rejected"
	StageOnHold             PipelineStage = "on_hold"
)

var PipelineStages = []PipelineStage{
	StageNew, StageScreening, StageInterviewScheduled, StageInterviewComplete,
	StageOfferPending, StageHired, StageRejected, StageOnHold,
}

func (s PipelineStage) IsValid() bool {
	for _, stage := range PipelineStages {
		if stage == s {
			return true
		}
	}
	return false
}

// IsSensitive marks stages the dashboard asks the reviewer to confirm
func (s PipelineStage) IsSensitive() bool {
	return s == StageRejected || s == StageHired
}

// Application is a candidate's submission against a job
type Application struct {
	ID             string        `json:"id"`
	JobID          string        `json:"jobId"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone"`
	Position       string        `json:"position"` // Job title when the candidate applied
	ResumeURL      *string       `json:"resumeUrl,omitempty"`
	LinkedIn       *string       `json:"linkedIn,omitempty"`
	Portfolio      *string       `json:"portfolio,omitempty"`
	CoverLetter    *string       `json:"coverLetter,omitempty"`
	Experience     string        `json:"experience"`
	Status         PipelineStage `json:"status"`
	Stage          PipelineStage `json:"stage"`
	StageChangedAt time.Time     `json:"stageChangedAt"`
	Rating         float64       `json:"rating"` // Average of Ratings, recomputed on every new rating
	AppliedAt      time.Time     `json:"appliedAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
	IsArchived     bool          `json:"isArchived"`
	Tags           []string      `json:"tags"`
	ReviewerID     *string       `json:"reviewerId,omitempty"`
	Notes          []Note        `json:"notes,omitempty"`
	Ratings        []Rating      `json:"ratings,omitempty"`

	// Joined data for list responses
	JobTitle string `json:"jobTitle,omitempty"`
}

type ApplicationFilter struct {
	JobID           string
	Status          string
	Stage           string
	IncludeArchived bool
}

type SubmitApplicationInput struct {
	JobID       string
	Name        string
	Email       string
	Phone       string
	ResumeURL   string
	LinkedIn    string
	Portfolio   string
	CoverLetter string
	Experience  string
}

type ApplicationRepository interface {
	// Create inserts the application and increments the parent job's
	// applicationsCount in the same transaction
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	List(ctx context.Context, filter ApplicationFilter) ([]Application, error)
	// ListByIDs returns the matching applications joined with their job title
	ListByIDs(ctx context.Context, ids []string) ([]Application, error)
	UpdateStage(ctx context.Context, id string, stage PipelineStage, at time.Time) error
	SetArchived(ctx context.Context, id string, archived bool, at time.Time) error
	// AddTag and RemoveTag are idempotent
	AddTag(ctx context.Context, id, tag string) error
	RemoveTag(ctx context.Context, id, tag string) error
	AssignReviewer(ctx context.Context, id, reviewerID string) error
	// Delete removes the application with its notes and ratings and
	// decrements the job counter, all in one transaction
	Delete(ctx context.Context, id string) (*Application, error)
	// DeleteForJob removes the listed applications of one job and lowers its
	// counter by the number removed, in one transaction. It returns the ids
	// actually removed; ids of other jobs or already gone are skipped.
	DeleteForJob(ctx context.Context, jobID string, ids []string) ([]string, error)
}

type ApplicationUsecase interface {
	Submit(ctx context.Context, input SubmitApplicationInput) (*Application, error)
	List(ctx context.Context, filter ApplicationFilter) ([]Application, error)
	Get(ctx context.Context, id string) (*Application, error)
	UpdateStage(ctx context.Context, id string, stage PipelineStage) (*Application, error)
	AddNote(ctx context.Context, actor Actor, id string, input NoteInput) (*Note, error)
	AddRating(ctx context.Context, actor Actor, id string, input RatingInput) (*Rating, error)
	Delete(ctx context.Context, id string) error
}
