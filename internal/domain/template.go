package domain

import (
	"context"
	"time"
)

// JobTemplate is a reusable starting point for new jobs. Jobs created from it
// keep only a back-reference, no integrity is enforced afterwards.
type JobTemplate struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	Title            string    `json:"title"`
	Type             JobType   `json:"type"`
	SalaryMin        string    `json:"salaryMin"`
	SalaryMax        string    `json:"salaryMax"`
	Location         string    `json:"location"`
	Description      string    `json:"description"`
	Requirements     []string  `json:"requirements"`
	Responsibilities []string  `json:"responsibilities"`
	Benefits         []string  `json:"benefits"`
	CreatedAt        time.Time `json:"createdAt"`
}

type TemplateRepository interface {
	Create(ctx context.Context, tpl *JobTemplate) error
	GetByID(ctx context.Context, id string) (*JobTemplate, error)
	List(ctx context.Context) ([]JobTemplate, error)
	Delete(ctx context.Context, id string) error
}

type TemplateUsecase interface {
	List(ctx context.Context) ([]JobTemplate, error)
	Get(ctx context.Context, id string) (*JobTemplate, error)
	Create(ctx context.Context, tpl *JobTemplate) error
	Delete(ctx context.Context, id string) error
}
