package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-careers-backend/internal/domain"
	"go-careers-backend/internal/usecase"
	"go-careers-backend/pkg/apperror"
)

const actor = "admin@example.com"

func newJobUsecase(store *memoryStore) domain.JobUsecase {
	return usecase.NewJobUsecase(jobStore{store}, templateStore{store})
}

func createJob(t *testing.T, uc domain.JobUsecase, title string) *domain.Job {
	t.Helper()
	job := &domain.Job{
		Title:        title,
		Description:  "Build things",
		Requirements: []string{"Go"},
		Benefits:     []string{"Remote"},
	}
	require.NoError(t, uc.CreateJob(context.Background(), actor, job))
	return job
}

func reason(r domain.ClosureReason) *domain.ClosureReason { return &r }

// assertRejectedUntouched runs a call that must fail and checks the stored job
// and its history are exactly what they were before
func assertRejectedUntouched(t *testing.T, uc domain.JobUsecase, id, kind string, call func() error) {
	t.Helper()
	ctx := context.Background()
	before, err := uc.GetJob(ctx, id)
	require.NoError(t, err)
	historyBefore, err := uc.History(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, kind, apperror.KindOf(call()))

	after, err := uc.GetJob(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	historyAfter, err := uc.History(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, historyBefore, historyAfter)
}

func TestCreateJob(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		store := newMemoryStore()
		uc := newJobUsecase(store)

		job := createJob(t, uc, "Senior Go Engineer")

		assert.Equal(t, domain.JobStatusDraft, job.Status)
		assert.Equal(t, domain.JobTypeFullTime, job.Type)
		assert.Equal(t, domain.DefaultJobColor, job.Color)
		assert.Equal(t, "Senior Go Engineer", job.MetaTitle)
		assert.Equal(t, "Build things", job.MetaDescription)
		assert.Equal(t, []string{}, job.Responsibilities)
		assert.Contains(t, job.Slug, "senior-go-engineer-")
		assert.Zero(t, job.ApplicationsCount)

		history, err := uc.History(ctx, job.ID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Empty(t, history[0].FromStatus)
		assert.Equal(t, domain.JobStatusDraft, history[0].ToStatus)
		assert.Equal(t, actor, history[0].ChangedBy)
	})

	t.Run("closed needs a reason", func(t *testing.T) {
		uc := newJobUsecase(newMemoryStore())
		err := uc.CreateJob(ctx, actor, &domain.Job{Title: "X", Status: domain.JobStatusClosed})
		assert.Equal(t, apperror.KindMissingReason, apperror.KindOf(err))
	})

	t.Run("reason outside closed is rejected", func(t *testing.T) {
		uc := newJobUsecase(newMemoryStore())
		err := uc.CreateJob(ctx, actor, &domain.Job{Title: "X", ClosureReason: reason(domain.ClosureFilled)})
		assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
	})

	t.Run("title required", func(t *testing.T) {
		uc := newJobUsecase(newMemoryStore())
		err := uc.CreateJob(ctx, actor, &domain.Job{Title: "   "})
		assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
	})
}

func TestJobLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("publish pause close archive", func(t *testing.T) {
		store := newMemoryStore()
		uc := newJobUsecase(store)
		job := createJob(t, uc, "Designer")

		published, err := uc.Publish(ctx, actor, job.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusPublished, published.Status)
		assert.False(t, published.StatusChangedAt.Before(job.StatusChangedAt))

		_, err = uc.Pause(ctx, actor, job.ID)
		require.NoError(t, err)

		closed, err := uc.Close(ctx, actor, job.ID, reason(domain.ClosureFilled))
		require.NoError(t, err)
		require.NotNil(t, closed.ClosureReason)
		assert.Equal(t, domain.ClosureFilled, *closed.ClosureReason)

		archived, err := uc.Archive(ctx, actor, job.ID)
		require.NoError(t, err)
		assert.Nil(t, archived.ClosureReason)

		history, err := uc.History(ctx, job.ID)
		require.NoError(t, err)
		require.Len(t, history, 5)
		assert.Equal(t, domain.JobStatusClosed, history[4].FromStatus)
		assert.Equal(t, domain.JobStatusArchived, history[4].ToStatus)
		require.NotNil(t, history[4].Reason)
		assert.Equal(t, domain.ClosureFilled, *history[4].Reason)
	})

	t.Run("closed job cannot be republished", func(t *testing.T) {
		store := newMemoryStore()
		uc := newJobUsecase(store)
		job := createJob(t, uc, "Ops")

		_, err := uc.Publish(ctx, actor, job.ID)
		require.NoError(t, err)
		_, err = uc.Close(ctx, actor, job.ID, reason(domain.ClosureFilled))
		require.NoError(t, err)

		assertRejectedUntouched(t, uc, job.ID, apperror.KindInvalidTransition, func() error {
			_, err := uc.Publish(ctx, actor, job.ID)
			return err
		})

		stored, err := uc.GetJob(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusClosed, stored.Status)
	})

	t.Run("close without reason leaves job untouched", func(t *testing.T) {
		store := newMemoryStore()
		uc := newJobUsecase(store)
		job := createJob(t, uc, "Ops")
		_, err := uc.Publish(ctx, actor, job.ID)
		require.NoError(t, err)

		assertRejectedUntouched(t, uc, job.ID, apperror.KindMissingReason, func() error {
			_, err := uc.Close(ctx, actor, job.ID, nil)
			return err
		})
		assertRejectedUntouched(t, uc, job.ID, apperror.KindBadRequest, func() error {
			_, err := uc.Close(ctx, actor, job.ID, reason("promoted"))
			return err
		})
	})

	t.Run("archived is terminal", func(t *testing.T) {
		store := newMemoryStore()
		uc := newJobUsecase(store)
		job := createJob(t, uc, "Ops")
		for _, step := range []func() (*domain.Job, error){
			func() (*domain.Job, error) { return uc.Publish(ctx, actor, job.ID) },
			func() (*domain.Job, error) { return uc.Close(ctx, actor, job.ID, reason(domain.ClosureBudget)) },
			func() (*domain.Job, error) { return uc.Archive(ctx, actor, job.ID) },
		} {
			_, err := step()
			require.NoError(t, err)
		}

		for _, call := range []func() error{
			func() error { _, err := uc.Publish(ctx, actor, job.ID); return err },
			func() error { _, err := uc.Pause(ctx, actor, job.ID); return err },
			func() error { _, err := uc.Close(ctx, actor, job.ID, reason(domain.ClosureFilled)); return err },
		} {
			assertRejectedUntouched(t, uc, job.ID, apperror.KindInvalidTransition, call)
		}
	})

	t.Run("unknown job", func(t *testing.T) {
		uc := newJobUsecase(newMemoryStore())
		_, err := uc.Publish(ctx, actor, "missing")
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("stale write is revalidated", func(t *testing.T) {
		store := newMemoryStore()
		uc := newJobUsecase(store)
		job := createJob(t, uc, "Race")
		_, err := uc.Publish(ctx, actor, job.ID)
		require.NoError(t, err)

		// A concurrent writer closes the job between load and save
		raced := false
		store.saveHook = func(id string) {
			if raced {
				return
			}
			raced = true
			store.mu.Lock()
			defer store.mu.Unlock()
			store.jobs[id].Status = domain.JobStatusClosed
			store.jobs[id].ClosureReason = reason(domain.ClosureCancelled)
		}

		_, err = uc.Pause(ctx, actor, job.ID)
		assert.Equal(t, apperror.KindInvalidTransition, apperror.KindOf(err))

		stored, _ := uc.GetJob(ctx, job.ID)
		assert.Equal(t, domain.JobStatusClosed, stored.Status)
	})
}

func TestUpdateJob(t *testing.T) {
	ctx := context.Background()

	t.Run("descriptive patch keeps status", func(t *testing.T) {
		store := newMemoryStore()
		uc := newJobUsecase(store)
		job := createJob(t, uc, "Writer")

		title := "Technical Writer"
		updated, err := uc.UpdateJob(ctx, actor, job.ID, domain.JobPatch{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "Technical Writer", updated.Title)
		assert.Equal(t, domain.JobStatusDraft, updated.Status)
		assert.Equal(t, job.StatusChangedAt, updated.StatusChangedAt)

		history, _ := uc.History(ctx, job.ID)
		assert.Len(t, history, 1)
	})

	t.Run("status routed through transitions", func(t *testing.T) {
		store := newMemoryStore()
		uc := newJobUsecase(store)
		job := createJob(t, uc, "Writer")

		closed := domain.JobStatusClosed
		_, err := uc.UpdateJob(ctx, actor, job.ID, domain.JobPatch{Status: &closed, ClosureReason: reason(domain.ClosureOther)})
		assert.Equal(t, apperror.KindInvalidTransition, apperror.KindOf(err))

		published := domain.JobStatusPublished
		updated, err := uc.UpdateJob(ctx, actor, job.ID, domain.JobPatch{Status: &published})
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusPublished, updated.Status)

		history, _ := uc.History(ctx, job.ID)
		assert.Len(t, history, 2)
	})

	t.Run("same status is not a transition", func(t *testing.T) {
		store := newMemoryStore()
		uc := newJobUsecase(store)
		job := createJob(t, uc, "Writer")

		draft := domain.JobStatusDraft
		updated, err := uc.UpdateJob(ctx, actor, job.ID, domain.JobPatch{Status: &draft})
		require.NoError(t, err)
		assert.Equal(t, job.StatusChangedAt, updated.StatusChangedAt)

		history, _ := uc.History(ctx, job.ID)
		assert.Len(t, history, 1)
	})

	t.Run("closure reason with a non-closed status is rejected", func(t *testing.T) {
		store := newMemoryStore()
		uc := newJobUsecase(store)
		job := createJob(t, uc, "Writer")

		published := domain.JobStatusPublished
		assertRejectedUntouched(t, uc, job.ID, apperror.KindBadRequest, func() error {
			_, err := uc.UpdateJob(ctx, actor, job.ID, domain.JobPatch{Status: &published, ClosureReason: reason(domain.ClosureFilled)})
			return err
		})
	})

	t.Run("rejected status change leaves the job untouched", func(t *testing.T) {
		store := newMemoryStore()
		uc := newJobUsecase(store)
		job := createJob(t, uc, "Writer")

		title := "Renamed"
		paused := domain.JobStatusPaused
		assertRejectedUntouched(t, uc, job.ID, apperror.KindInvalidTransition, func() error {
			_, err := uc.UpdateJob(ctx, actor, job.ID, domain.JobPatch{Title: &title, Status: &paused})
			return err
		})
	})
}

func TestListJobs(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	uc := newJobUsecase(store)

	draft := createJob(t, uc, "Draft role")
	live := createJob(t, uc, "Live role")
	gone := createJob(t, uc, "Gone role")

	_, err := uc.Publish(ctx, actor, live.ID)
	require.NoError(t, err)
	for _, step := range []func() (*domain.Job, error){
		func() (*domain.Job, error) { return uc.Publish(ctx, actor, gone.ID) },
		func() (*domain.Job, error) { return uc.Close(ctx, actor, gone.ID, reason(domain.ClosureFilled)) },
		func() (*domain.Job, error) { return uc.Archive(ctx, actor, gone.ID) },
	} {
		_, err := step()
		require.NoError(t, err)
	}

	all, err := uc.ListJobs(ctx, domain.JobFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	withArchived, err := uc.ListJobs(ctx, domain.JobFilter{Status: "all", IncludeArchived: true})
	require.NoError(t, err)
	assert.Len(t, withArchived, 3)

	archived, err := uc.ListJobs(ctx, domain.JobFilter{Status: "archived"})
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, gone.ID, archived[0].ID)

	public, err := uc.ListPublicJobs(ctx, "")
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, live.ID, public[0].ID)

	_, err = uc.GetPublicJob(ctx, draft.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = uc.ListJobs(ctx, domain.JobFilter{Status: "deleted"})
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))

	counts, err := uc.StatusCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[domain.JobStatus]int{
		domain.JobStatusDraft:     1,
		domain.JobStatusPublished: 1,
		domain.JobStatusPaused:    0,
		domain.JobStatusClosed:    0,
		domain.JobStatusArchived:  1,
	}, counts)
}

func TestDuplicateAndTemplates(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate is an independent draft", func(t *testing.T) {
		store := newMemoryStore()
		uc := newJobUsecase(store)
		source := createJob(t, uc, "Closed role")
		_, err := uc.Publish(ctx, actor, source.ID)
		require.NoError(t, err)
		_, err = uc.Close(ctx, actor, source.ID, reason(domain.ClosureFilled))
		require.NoError(t, err)

		dup, err := uc.Duplicate(ctx, actor, source.ID)
		require.NoError(t, err)

		assert.NotEqual(t, source.ID, dup.ID)
		assert.Equal(t, "Closed role (Copy)", dup.Title)
		assert.Equal(t, domain.JobStatusDraft, dup.Status)
		assert.Nil(t, dup.ClosureReason)
		assert.Zero(t, dup.ApplicationsCount)
		assert.Equal(t, source.Requirements, dup.Requirements)

		// Editing the copy must not leak into the source
		reqs := []string{"Rust"}
		_, err = uc.UpdateJob(ctx, actor, dup.ID, domain.JobPatch{Requirements: &reqs})
		require.NoError(t, err)

		stored, _ := uc.GetJob(ctx, source.ID)
		assert.Equal(t, []string{"Go"}, stored.Requirements)
		assert.Equal(t, domain.JobStatusClosed, stored.Status)
	})

	t.Run("template round trip", func(t *testing.T) {
		store := newMemoryStore()
		uc := newJobUsecase(store)
		source := createJob(t, uc, "Backend Engineer")

		tpl, err := uc.SaveAsTemplate(ctx, source.ID, "")
		require.NoError(t, err)
		assert.Equal(t, "Backend Engineer", tpl.Name)
		assert.Equal(t, "General", tpl.Category)

		job, err := uc.CreateFromTemplate(ctx, actor, tpl.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusDraft, job.Status)
		require.NotNil(t, job.TemplateID)
		assert.Equal(t, tpl.ID, *job.TemplateID)
		assert.Equal(t, source.Requirements, job.Requirements)

		_, err = uc.CreateFromTemplate(ctx, actor, "missing")
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestDeleteJob(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	uc := newJobUsecase(store)
	job := createJob(t, uc, "Temp")

	require.NoError(t, uc.DeleteJob(ctx, job.ID))

	err := uc.DeleteJob(ctx, job.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
