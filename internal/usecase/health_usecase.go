package usecase

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"go-careers-backend/internal/domain"
	"go-careers-backend/pkg/logger"
)

type healthUsecase struct {
	required []domain.Pinger
	optional []domain.Pinger
	timeout  time.Duration
}

// NewHealthUsecase checks every required dependency; optional ones are
// reported but never make the service unhealthy.
func NewHealthUsecase(required []domain.Pinger, optional ...domain.Pinger) domain.HealthUsecase {
	return &healthUsecase{
		required: required,
		optional: optional,
		timeout:  3 * time.Second,
	}
}

func (u *healthUsecase) Check(ctx context.Context) *domain.HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	var mu sync.Mutex
	checks := make(map[string]string, len(u.required)+len(u.optional))
	healthy := true

	var g errgroup.Group
	check := func(p domain.Pinger, required bool) {
		g.Go(func() error {
			err := p.Ping(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Log.Warn("Health check failed", "dependency", p.Name(), "error", err)
				checks[p.Name()] = "disconnected"
				if required {
					healthy = false
				}
				return nil
			}
			checks[p.Name()] = "connected"
			return nil
		})
	}

	for _, p := range u.required {
		check(p, true)
	}
	for _, p := range u.optional {
		check(p, false)
	}
	_ = g.Wait()

	status := domain.HealthStatusHealthy
	if !healthy {
		status = domain.HealthStatusUnhealthy
	}
	return &domain.HealthStatus{Status: status, Checks: checks}
}
