package usecase_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"go-careers-backend/internal/domain"
)

// memoryStore is a process-local stand-in for the Postgres repositories
type memoryStore struct {
	mu        sync.Mutex
	jobs      map[string]*domain.Job
	history   map[string][]domain.JobStatusHistory
	apps      map[string]*domain.Application
	notes     map[string][]domain.Note
	ratings   map[string][]domain.Rating
	templates map[string]*domain.JobTemplate

	// saveHook runs inside Save before the status check; tests use it to
	// simulate a concurrent writer
	saveHook func(id string)
	failOn   map[string]error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		jobs:      make(map[string]*domain.Job),
		history:   make(map[string][]domain.JobStatusHistory),
		apps:      make(map[string]*domain.Application),
		notes:     make(map[string][]domain.Note),
		ratings:   make(map[string][]domain.Rating),
		templates: make(map[string]*domain.JobTemplate),
		failOn:    make(map[string]error),
	}
}

type jobStore struct{ *memoryStore }
type appStore struct{ *memoryStore }
type noteStore struct{ *memoryStore }
type ratingStore struct{ *memoryStore }
type templateStore struct{ *memoryStore }

func (s jobStore) Create(_ context.Context, job *domain.Job, entry *domain.JobStatusHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job.Clone()
	if entry != nil {
		s.history[job.ID] = append(s.history[job.ID], *entry)
	}
	return nil
}

func (s jobStore) GetByID(_ context.Context, id string) (*domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return job.Clone(), nil
}

func (s jobStore) List(_ context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Job{}
	for _, job := range s.jobs {
		if filter.Status != "" && string(job.Status) != filter.Status {
			continue
		}
		if !filter.IncludeArchived && job.Status == domain.JobStatusArchived {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(job.Title), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *job.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s jobStore) CountByStatus(_ context.Context) (map[domain.JobStatus]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[domain.JobStatus]int)
	for _, job := range s.jobs {
		counts[job.Status]++
	}
	return counts, nil
}

func (s jobStore) Save(_ context.Context, job *domain.Job, expected domain.JobStatus, entry *domain.JobStatusHistory) error {
	if s.saveHook != nil {
		s.saveHook(job.ID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.jobs[job.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Status != expected {
		return domain.ErrStaleWrite
	}
	next := job.Clone()
	next.ApplicationsCount = stored.ApplicationsCount
	s.jobs[job.ID] = next
	if entry != nil {
		s.history[job.ID] = append(s.history[job.ID], *entry)
	}
	return nil
}

func (s jobStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.jobs, id)
	delete(s.history, id)
	for appID, app := range s.apps {
		if app.JobID == id {
			delete(s.apps, appID)
			delete(s.notes, appID)
			delete(s.ratings, appID)
		}
	}
	return nil
}

func (s jobStore) AdjustApplicationsCount(_ context.Context, id string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adjustLocked(id, delta)
}

func (s *memoryStore) adjustLocked(id string, delta int) (int, error) {
	job, ok := s.jobs[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	job.ApplicationsCount += delta
	if job.ApplicationsCount < 0 {
		job.ApplicationsCount = 0
	}
	return job.ApplicationsCount, nil
}

func (s jobStore) ListHistory(_ context.Context, jobID string) ([]domain.JobStatusHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.JobStatusHistory{}, s.history[jobID]...), nil
}

func (s appStore) Create(_ context.Context, app *domain.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.adjustLocked(app.JobID, 1); err != nil {
		return err
	}
	cp := *app
	cp.Tags = append([]string{}, app.Tags...)
	s.apps[app.ID] = &cp
	return nil
}

func (s appStore) get(id string) (*domain.Application, error) {
	if err, ok := s.failOn[id]; ok {
		return nil, err
	}
	app, ok := s.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return app, nil
}

func (s appStore) GetByID(_ context.Context, id string) (*domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, err := s.get(id)
	if err != nil {
		return nil, err
	}
	cp := *app
	cp.Tags = append([]string{}, app.Tags...)
	return &cp, nil
}

func (s appStore) List(_ context.Context, filter domain.ApplicationFilter) ([]domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Application{}
	for _, app := range s.apps {
		if filter.JobID != "" && app.JobID != filter.JobID {
			continue
		}
		if filter.Stage != "" && string(app.Stage) != filter.Stage {
			continue
		}
		if !filter.IncludeArchived && app.IsArchived {
			continue
		}
		out = append(out, *app)
	}
	return out, nil
}

func (s appStore) ListByIDs(_ context.Context, ids []string) ([]domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Application{}
	for _, id := range ids {
		if app, ok := s.apps[id]; ok {
			cp := *app
			if job, ok := s.jobs[app.JobID]; ok {
				cp.JobTitle = job.Title
			}
			out = append(out, cp)
		}
	}
	return out, nil
}

func (s appStore) UpdateStage(_ context.Context, id string, stage domain.PipelineStage, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, err := s.get(id)
	if err != nil {
		return err
	}
	app.Stage, app.Status, app.StageChangedAt, app.UpdatedAt = stage, stage, at, at
	return nil
}

func (s appStore) SetArchived(_ context.Context, id string, archived bool, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, err := s.get(id)
	if err != nil {
		return err
	}
	app.IsArchived, app.UpdatedAt = archived, at
	return nil
}

func (s appStore) AddTag(_ context.Context, id, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, err := s.get(id)
	if err != nil {
		return err
	}
	for _, t := range app.Tags {
		if t == tag {
			return nil
		}
	}
	app.Tags = append(app.Tags, tag)
	return nil
}

func (s appStore) RemoveTag(_ context.Context, id, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, err := s.get(id)
	if err != nil {
		return err
	}
	kept := app.Tags[:0]
	for _, t := range app.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	app.Tags = kept
	return nil
}

func (s appStore) AssignReviewer(_ context.Context, id, reviewerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, err := s.get(id)
	if err != nil {
		return err
	}
	app.ReviewerID = &reviewerID
	return nil
}

func (s appStore) deleteLocked(id string) (*domain.Application, error) {
	app, err := s.get(id)
	if err != nil {
		return nil, err
	}
	delete(s.apps, id)
	delete(s.notes, id)
	delete(s.ratings, id)
	return app, nil
}

func (s appStore) Delete(_ context.Context, id string) (*domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, err := s.deleteLocked(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.adjustLocked(app.JobID, -1); err != nil && err != domain.ErrNotFound {
		return nil, err
	}
	return app, nil
}

// DeleteForJob fails before touching anything when failOn holds the job id
func (s appStore) DeleteForJob(_ context.Context, jobID string, ids []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failOn[jobID]; ok {
		return nil, err
	}
	deleted := []string{}
	for _, id := range ids {
		app, ok := s.apps[id]
		if !ok || app.JobID != jobID {
			continue
		}
		if _, err := s.deleteLocked(id); err != nil {
			return nil, err
		}
		deleted = append(deleted, id)
	}
	if len(deleted) > 0 {
		if _, err := s.adjustLocked(jobID, -len(deleted)); err != nil && err != domain.ErrNotFound {
			return nil, err
		}
	}
	return deleted, nil
}

func (s noteStore) Create(_ context.Context, note *domain.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[note.ApplicationID] = append(s.notes[note.ApplicationID], *note)
	return nil
}

func (s noteStore) ListByApplication(_ context.Context, id string) ([]domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Note{}, s.notes[id]...), nil
}

func (s ratingStore) Create(_ context.Context, rating *domain.Rating) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[rating.ApplicationID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	s.ratings[rating.ApplicationID] = append(s.ratings[rating.ApplicationID], *rating)
	app.Rating = domain.AverageRating(s.ratings[rating.ApplicationID])
	return app.Rating, nil
}

func (s ratingStore) ListByApplication(_ context.Context, id string) ([]domain.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Rating{}, s.ratings[id]...), nil
}

func (s templateStore) Create(_ context.Context, tpl *domain.JobTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *tpl
	s.templates[tpl.ID] = &cp
	return nil
}

func (s templateStore) GetByID(_ context.Context, id string) (*domain.JobTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tpl, ok := s.templates[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *tpl
	return &cp, nil
}

func (s templateStore) List(_ context.Context) ([]domain.JobTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.JobTemplate{}
	for _, tpl := range s.templates {
		out = append(out, *tpl)
	}
	return out, nil
}

func (s templateStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.templates[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.templates, id)
	return nil
}

// Mocks

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyApplicationReceived(ctx context.Context, notice domain.ApplicationNotice) error {
	return m.Called(ctx, notice).Error(0)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.AdminUser) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminUser), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminUser), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(user *domain.AdminUser) (string, time.Time, error) {
	args := m.Called(user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

type MockLoginGuard struct {
	mock.Mock
}

func (m *MockLoginGuard) IsBlocked(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockLoginGuard) RecordFailedAttempt(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockLoginGuard) ClearAttempts(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

type MockSeedRepo struct {
	mock.Mock
}

func (m *MockSeedRepo) Reset(ctx context.Context, data *domain.SeedData) error {
	return m.Called(ctx, data).Error(0)
}

type stubPinger struct {
	name string
	err  error
}

func (p stubPinger) Name() string                 { return p.name }
func (p stubPinger) Ping(_ context.Context) error { return p.err }
