package domain

import "context"

// Pinger is a dependency whose reachability is part of the health report
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"
)

type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type HealthUsecase interface {
	Check(ctx context.Context) *HealthStatus
}
