package usecase_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-careers-backend/internal/domain"
	"go-careers-backend/internal/usecase"
	"go-careers-backend/pkg/apperror"
	"go-careers-backend/pkg/lock"
)

var bulkActor = domain.Actor{ID: "user-1", Email: "admin@example.com"}

type bulkFixture struct {
	store  *memoryStore
	locker *lock.Memory
	apps   domain.ApplicationUsecase
	bulk   domain.BulkUsecase
	job    *domain.Job
	ids    []string
}

func newBulkFixture(t *testing.T, n int) *bulkFixture {
	t.Helper()
	store := newMemoryStore()
	f := &bulkFixture{
		store:  store,
		locker: lock.NewMemory(),
		apps:   newApplicationUsecase(store, nil),
		job:    publishedJob(t, store, "Support Engineer"),
	}
	f.bulk = usecase.NewBulkUsecase(appStore{store}, f.locker, time.Minute)
	for i := 0; i < n; i++ {
		app := submit(t, f.apps, f.job.ID, string(rune('a'+i)))
		f.ids = append(f.ids, app.ID)
	}
	return f
}

func (f *bulkFixture) run(t *testing.T, action domain.BulkAction, ids []string, data domain.BulkData) *domain.BulkResult {
	t.Helper()
	result, err := f.bulk.Execute(context.Background(), bulkActor, domain.BulkRequest{
		ApplicationIDs: ids,
		Action:         action,
		Data:           data,
	})
	require.NoError(t, err)
	return result
}

func TestBulkDeleteDecrementsPerJob(t *testing.T) {
	f := newBulkFixture(t, 3)
	require.Equal(t, 3, jobCount(t, f.store, f.job.ID))

	result := f.run(t, domain.BulkDelete, f.ids[:1], domain.BulkData{})
	assert.Equal(t, 1, result.Succeeded)
	assert.Empty(t, result.Failed)
	assert.Equal(t, 2, jobCount(t, f.store, f.job.ID))

	apps, err := f.apps.List(context.Background(), domain.ApplicationFilter{JobID: f.job.ID})
	require.NoError(t, err)
	assert.Len(t, apps, 2)
}

func TestBulkDeleteKeepsCounterConsistent(t *testing.T) {
	t.Run("a failed group is reported and rolled back", func(t *testing.T) {
		f := newBulkFixture(t, 3)
		f.store.failOn[f.job.ID] = errors.New("connection reset")

		result := f.run(t, domain.BulkDelete, f.ids[:2], domain.BulkData{})
		assert.Equal(t, 0, result.Succeeded)
		require.Len(t, result.Failed, 2)
		for i, failure := range result.Failed {
			assert.Equal(t, f.ids[i], failure.ID)
			assert.Equal(t, apperror.KindStoreUnavailable, failure.Kind)
		}

		apps, err := f.apps.List(context.Background(), domain.ApplicationFilter{JobID: f.job.ID})
		require.NoError(t, err)
		assert.Len(t, apps, 3)
		assert.Equal(t, 3, jobCount(t, f.store, f.job.ID))
	})

	t.Run("groups per job and reports missing ids", func(t *testing.T) {
		f := newBulkFixture(t, 2)
		other := publishedJob(t, f.store, "Data Analyst")
		extra := submit(t, f.apps, other.ID, "z")

		ids := []string{f.ids[0], "missing", extra.ID}
		result := f.run(t, domain.BulkDelete, ids, domain.BulkData{})
		assert.Equal(t, 2, result.Succeeded)
		require.Len(t, result.Failed, 1)
		assert.Equal(t, "missing", result.Failed[0].ID)
		assert.Equal(t, apperror.KindNotFound, result.Failed[0].Kind)

		assert.Equal(t, 1, jobCount(t, f.store, f.job.ID))
		assert.Equal(t, 0, jobCount(t, f.store, other.ID))
	})
}

func TestBulkMovePartialFailure(t *testing.T) {
	f := newBulkFixture(t, 2)

	ids := append(append([]string{}, f.ids...), "missing")
	result := f.run(t, domain.BulkMoveToStage, ids, domain.BulkData{Stage: domain.StageScreening})

	assert.Equal(t, 3, result.Requested)
	assert.Equal(t, 2, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "missing", result.Failed[0].ID)
	assert.Equal(t, apperror.KindNotFound, result.Failed[0].Kind)

	for _, id := range f.ids {
		app, err := f.apps.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, domain.StageScreening, app.Stage)
		assert.Equal(t, domain.StageScreening, app.Status)
	}
}

func TestBulkStoreFailureIsIsolated(t *testing.T) {
	f := newBulkFixture(t, 3)
	f.store.failOn[f.ids[1]] = errors.New("connection reset")

	result := f.run(t, domain.BulkArchive, f.ids, domain.BulkData{})

	assert.Equal(t, 2, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, f.ids[1], result.Failed[0].ID)
	assert.Equal(t, apperror.KindStoreUnavailable, result.Failed[0].Kind)
}

func TestBulkTagsAreIdempotent(t *testing.T) {
	f := newBulkFixture(t, 1)
	ctx := context.Background()

	f.run(t, domain.BulkAddTag, f.ids, domain.BulkData{Tag: "x"})
	f.run(t, domain.BulkAddTag, f.ids, domain.BulkData{Tag: "x"})

	app, err := f.apps.Get(ctx, f.ids[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, app.Tags)

	result := f.run(t, domain.BulkRemoveTag, f.ids, domain.BulkData{Tag: "y"})
	assert.Equal(t, 1, result.Succeeded)

	f.run(t, domain.BulkRemoveTag, f.ids, domain.BulkData{Tag: "x"})
	app, err = f.apps.Get(ctx, f.ids[0])
	require.NoError(t, err)
	assert.Empty(t, app.Tags)
}

func TestBulkRejectAndAssign(t *testing.T) {
	f := newBulkFixture(t, 2)
	ctx := context.Background()

	f.run(t, domain.BulkReject, f.ids, domain.BulkData{})
	f.run(t, domain.BulkAssignReviewer, f.ids, domain.BulkData{ReviewerID: "user-2"})

	for _, id := range f.ids {
		app, err := f.apps.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.StageRejected, app.Stage)
		require.NotNil(t, app.ReviewerID)
		assert.Equal(t, "user-2", *app.ReviewerID)
	}
}

func TestBulkEmailCountsAddressableApplications(t *testing.T) {
	f := newBulkFixture(t, 2)

	ids := append(append([]string{}, f.ids...), "missing")
	result := f.run(t, domain.BulkSendEmail, ids, domain.BulkData{Subject: "Hi", Message: "Hello"})
	assert.Equal(t, 2, result.Succeeded)
	assert.Len(t, result.Failed, 1)
}

func TestBulkExport(t *testing.T) {
	f := newBulkFixture(t, 2)

	t.Run("csv", func(t *testing.T) {
		result := f.run(t, domain.BulkExport, f.ids, domain.BulkData{})
		require.NotNil(t, result.Export)
		assert.Equal(t, domain.ExportCSV, result.Export.Format)
		assert.Contains(t, result.Export.Filename, ".csv")
		require.Len(t, result.Export.Rows, 2)
		assert.Equal(t, "Support Engineer", result.Export.Rows[0].JobTitle)

		records, err := csv.NewReader(bytes.NewReader(result.Export.Content)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "ID", records[0][0])
		assert.Equal(t, f.ids[0], records[1][0])
	})

	t.Run("excel", func(t *testing.T) {
		result := f.run(t, domain.BulkExport, f.ids, domain.BulkData{Format: domain.ExportExcel})
		require.NotNil(t, result.Export)
		assert.Contains(t, result.Export.Filename, ".xlsx")
		// XLSX files are zip archives
		assert.Equal(t, []byte("PK"), result.Export.Content[:2])
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := f.bulk.Execute(context.Background(), bulkActor, domain.BulkRequest{
			ApplicationIDs: f.ids,
			Action:         domain.BulkExport,
			Data:           domain.BulkData{Format: "pdf"},
		})
		assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
	})
}

func TestBulkRequestValidation(t *testing.T) {
	f := newBulkFixture(t, 1)
	ctx := context.Background()

	tests := []struct {
		name string
		req  domain.BulkRequest
		kind string
	}{
		{"empty ids", domain.BulkRequest{Action: domain.BulkArchive}, apperror.KindBadRequest},
		{"blank ids", domain.BulkRequest{ApplicationIDs: []string{" ", ""}, Action: domain.BulkArchive}, apperror.KindBadRequest},
		{"unknown action", domain.BulkRequest{ApplicationIDs: f.ids, Action: "shred"}, apperror.KindInvalidAction},
		{"unknown stage", domain.BulkRequest{ApplicationIDs: f.ids, Action: domain.BulkMoveToStage, Data: domain.BulkData{Stage: "ghosted"}}, apperror.KindInvalidStage},
		{"missing stage", domain.BulkRequest{ApplicationIDs: f.ids, Action: domain.BulkMoveToStage}, apperror.KindInvalidStage},
		{"missing tag", domain.BulkRequest{ApplicationIDs: f.ids, Action: domain.BulkAddTag}, apperror.KindBadRequest},
		{"missing reviewer", domain.BulkRequest{ApplicationIDs: f.ids, Action: domain.BulkAssignReviewer}, apperror.KindBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.bulk.Execute(ctx, bulkActor, tt.req)
			assert.Equal(t, tt.kind, apperror.KindOf(err))
		})
	}

	app, err := f.apps.Get(ctx, f.ids[0])
	require.NoError(t, err)
	assert.Equal(t, domain.StageNew, app.Stage)
}

func TestBulkSelectionLock(t *testing.T) {
	f := newBulkFixture(t, 2)
	ctx := context.Background()

	// Another request holds the same selection in a different order
	unlock, ok, err := f.locker.TryLock(ctx, lockKeyFor(t, f, []string{f.ids[1], f.ids[0]}), time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	processing, err := f.bulk.IsProcessing(ctx, f.ids)
	require.NoError(t, err)
	assert.True(t, processing)

	_, err = f.bulk.Execute(ctx, bulkActor, domain.BulkRequest{ApplicationIDs: f.ids, Action: domain.BulkArchive})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	// A different selection is not blocked
	result := f.run(t, domain.BulkArchive, f.ids[:1], domain.BulkData{})
	assert.Equal(t, 1, result.Succeeded)

	unlock()
	processing, err = f.bulk.IsProcessing(ctx, f.ids)
	require.NoError(t, err)
	assert.False(t, processing)

	result = f.run(t, domain.BulkArchive, f.ids, domain.BulkData{})
	assert.Equal(t, 2, result.Succeeded)
}

// lockKeyFor finds the key the coordinator uses by observing the locker
func lockKeyFor(t *testing.T, f *bulkFixture, ids []string) string {
	t.Helper()
	spy := &spyLocker{inner: lock.NewMemory()}
	uc := usecase.NewBulkUsecase(appStore{f.store}, spy, time.Minute)
	_, err := uc.IsProcessing(context.Background(), ids)
	require.NoError(t, err)
	require.NotEmpty(t, spy.lastKey)
	return spy.lastKey
}

type spyLocker struct {
	inner   domain.BulkLocker
	lastKey string
}

func (s *spyLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	s.lastKey = key
	return s.inner.TryLock(ctx, key, ttl)
}

func (s *spyLocker) IsLocked(ctx context.Context, key string) (bool, error) {
	s.lastKey = key
	return s.inner.IsLocked(ctx, key)
}
