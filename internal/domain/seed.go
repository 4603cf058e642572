package domain

import "context"

// SeedData is a complete dataset that replaces every collection
type SeedData struct {
	Users        []AdminUser
	Templates    []JobTemplate
	Jobs         []Job
	History      []JobStatusHistory
	Applications []Application // Notes and Ratings are inserted with their application
}

type SeedSummary struct {
	Users        int `json:"users"`
	Templates    int `json:"templates"`
	Jobs         int `json:"jobs"`
	Applications int `json:"applications"`
	Notes        int `json:"notes"`
	Ratings      int `json:"ratings"`
}

type SeedRepository interface {
	// Reset truncates every table and inserts data, all or nothing
	Reset(ctx context.Context, data *SeedData) error
}

type SeedUsecase interface {
	Seed(ctx context.Context) (*SeedSummary, error)
}

// SeedSource produces the dataset to load, typically from a fixture file
type SeedSource interface {
	Load() (*SeedData, error)
}
