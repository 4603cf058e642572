package usecase

import (
	"context"

	"go-careers-backend/internal/domain"
	"go-careers-backend/pkg/apperror"
	"go-careers-backend/pkg/logger"
)

type seedUsecase struct {
	seedRepo domain.SeedRepository
	source   domain.SeedSource
}

func NewSeedUsecase(seedRepo domain.SeedRepository, source domain.SeedSource) domain.SeedUsecase {
	return &seedUsecase{seedRepo: seedRepo, source: source}
}

// Seed replaces every table with the fixture dataset
func (u *seedUsecase) Seed(ctx context.Context) (*domain.SeedSummary, error) {
	data, err := u.source.Load()
	if err != nil {
		logger.Log.Error("Failed to load seed fixtures", "error", err)
		return nil, apperror.Internal(err)
	}

	if err := u.seedRepo.Reset(ctx, data); err != nil {
		return nil, storeError(err, "Seed")
	}

	summary := &domain.SeedSummary{
		Users:        len(data.Users),
		Templates:    len(data.Templates),
		Jobs:         len(data.Jobs),
		Applications: len(data.Applications),
	}
	for _, app := range data.Applications {
		summary.Notes += len(app.Notes)
		summary.Ratings += len(app.Ratings)
	}
	logger.Log.Info("Database seeded", "jobs", summary.Jobs, "applications", summary.Applications)
	return summary, nil
}
