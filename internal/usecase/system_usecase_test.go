package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-careers-backend/internal/domain"
	"go-careers-backend/internal/usecase"
	"go-careers-backend/pkg/apperror"
)

func TestHealthCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("healthy", func(t *testing.T) {
		uc := usecase.NewHealthUsecase([]domain.Pinger{stubPinger{name: "database"}}, stubPinger{name: "redis"})
		status := uc.Check(ctx)
		assert.Equal(t, domain.HealthStatusHealthy, status.Status)
		assert.Equal(t, map[string]string{"database": "connected", "redis": "connected"}, status.Checks)
	})

	t.Run("optional dependency down", func(t *testing.T) {
		uc := usecase.NewHealthUsecase([]domain.Pinger{stubPinger{name: "database"}}, stubPinger{name: "redis", err: errors.New("timeout")})
		status := uc.Check(ctx)
		assert.Equal(t, domain.HealthStatusHealthy, status.Status)
		assert.Equal(t, "disconnected", status.Checks["redis"])
	})

	t.Run("database down", func(t *testing.T) {
		uc := usecase.NewHealthUsecase([]domain.Pinger{stubPinger{name: "database", err: errors.New("refused")}})
		status := uc.Check(ctx)
		assert.Equal(t, domain.HealthStatusUnhealthy, status.Status)
	})
}

type staticSource struct {
	data *domain.SeedData
	err  error
}

func (s staticSource) Load() (*domain.SeedData, error) { return s.data, s.err }

func TestSeed(t *testing.T) {
	ctx := context.Background()
	data := &domain.SeedData{
		Users: []domain.AdminUser{{ID: "u1"}},
		Jobs:  []domain.Job{{ID: "j1"}, {ID: "j2"}},
		Applications: []domain.Application{
			{ID: "a1", Notes: []domain.Note{{ID: "n1"}}, Ratings: []domain.Rating{{ID: "r1"}, {ID: "r2"}}},
		},
	}

	t.Run("summary", func(t *testing.T) {
		repo := new(MockSeedRepo)
		repo.On("Reset", ctx, data).Return(nil)

		summary, err := usecase.NewSeedUsecase(repo, staticSource{data: data}).Seed(ctx)
		require.NoError(t, err)
		assert.Equal(t, &domain.SeedSummary{Users: 1, Jobs: 2, Applications: 1, Notes: 1, Ratings: 2}, summary)
		repo.AssertExpectations(t)
	})

	t.Run("broken fixtures never touch the store", func(t *testing.T) {
		repo := new(MockSeedRepo)
		_, err := usecase.NewSeedUsecase(repo, staticSource{err: errors.New("bad yaml")}).Seed(ctx)
		assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
		repo.AssertNotCalled(t, "Reset", mock.Anything, mock.Anything)
	})
}

func TestTemplates(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	uc := usecase.NewTemplateUsecase(templateStore{store})

	tpl := &domain.JobTemplate{Title: "QA Engineer"}
	require.NoError(t, uc.Create(ctx, tpl))
	assert.NotEmpty(t, tpl.ID)
	assert.Equal(t, "QA Engineer", tpl.Name)
	assert.Equal(t, "General", tpl.Category)
	assert.Equal(t, domain.JobTypeFullTime, tpl.Type)
	assert.Equal(t, []string{}, tpl.Benefits)

	err := uc.Create(ctx, &domain.JobTemplate{Name: "nameless"})
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.Delete(ctx, tpl.ID))
	_, err = uc.Get(ctx, tpl.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
