package v1

import (
	"context"

	"github.com/stretchr/testify/mock"

	"go-careers-backend/internal/domain"
)

type MockJobUsecase struct {
	mock.Mock
}

func (m *MockJobUsecase) job(args mock.Arguments) (*domain.Job, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobUsecase) CreateJob(ctx context.Context, actor string, job *domain.Job) error {
	return m.Called(ctx, actor, job).Error(0)
}

func (m *MockJobUsecase) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	return m.job(m.Called(ctx, id))
}

func (m *MockJobUsecase) GetPublicJob(ctx context.Context, id string) (*domain.Job, error) {
	return m.job(m.Called(ctx, id))
}

func (m *MockJobUsecase) ListJobs(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	args := m.Called(ctx, filter)
	jobs, _ := args.Get(0).([]domain.Job)
	return jobs, args.Error(1)
}

func (m *MockJobUsecase) ListPublicJobs(ctx context.Context, search string) ([]domain.Job, error) {
	args := m.Called(ctx, search)
	jobs, _ := args.Get(0).([]domain.Job)
	return jobs, args.Error(1)
}

func (m *MockJobUsecase) StatusCounts(ctx context.Context) (map[domain.JobStatus]int, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[domain.JobStatus]int)
	return counts, args.Error(1)
}

func (m *MockJobUsecase) UpdateJob(ctx context.Context, actor, id string, patch domain.JobPatch) (*domain.Job, error) {
	return m.job(m.Called(ctx, actor, id, patch))
}

func (m *MockJobUsecase) DeleteJob(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockJobUsecase) Publish(ctx context.Context, actor, id string) (*domain.Job, error) {
	return m.job(m.Called(ctx, actor, id))
}

func (m *MockJobUsecase) Pause(ctx context.Context, actor, id string) (*domain.Job, error) {
	return m.job(m.Called(ctx, actor, id))
}

func (m *MockJobUsecase) Close(ctx context.Context, actor, id string, reason *domain.ClosureReason) (*domain.Job, error) {
	return m.job(m.Called(ctx, actor, id, reason))
}

func (m *MockJobUsecase) Archive(ctx context.Context, actor, id string) (*domain.Job, error) {
	return m.job(m.Called(ctx, actor, id))
}

func (m *MockJobUsecase) History(ctx context.Context, id string) ([]domain.JobStatusHistory, error) {
	args := m.Called(ctx, id)
	history, _ := args.Get(0).([]domain.JobStatusHistory)
	return history, args.Error(1)
}

func (m *MockJobUsecase) Duplicate(ctx context.Context, actor, id string) (*domain.Job, error) {
	return m.job(m.Called(ctx, actor, id))
}

func (m *MockJobUsecase) CreateFromTemplate(ctx context.Context, actor, templateID string) (*domain.Job, error) {
	return m.job(m.Called(ctx, actor, templateID))
}

func (m *MockJobUsecase) SaveAsTemplate(ctx context.Context, id, name string) (*domain.JobTemplate, error) {
	args := m.Called(ctx, id, name)
	tpl, _ := args.Get(0).(*domain.JobTemplate)
	return tpl, args.Error(1)
}

type MockApplicationUsecase struct {
	mock.Mock
}

func (m *MockApplicationUsecase) app(args mock.Arguments) (*domain.Application, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationUsecase) Submit(ctx context.Context, input domain.SubmitApplicationInput) (*domain.Application, error) {
	return m.app(m.Called(ctx, input))
}

func (m *MockApplicationUsecase) List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, error) {
	args := m.Called(ctx, filter)
	apps, _ := args.Get(0).([]domain.Application)
	return apps, args.Error(1)
}

func (m *MockApplicationUsecase) Get(ctx context.Context, id string) (*domain.Application, error) {
	return m.app(m.Called(ctx, id))
}

func (m *MockApplicationUsecase) UpdateStage(ctx context.Context, id string, stage domain.PipelineStage) (*domain.Application, error) {
	return m.app(m.Called(ctx, id, stage))
}

func (m *MockApplicationUsecase) AddNote(ctx context.Context, actor domain.Actor, id string, input domain.NoteInput) (*domain.Note, error) {
	args := m.Called(ctx, actor, id, input)
	note, _ := args.Get(0).(*domain.Note)
	return note, args.Error(1)
}

func (m *MockApplicationUsecase) AddRating(ctx context.Context, actor domain.Actor, id string, input domain.RatingInput) (*domain.Rating, error) {
	args := m.Called(ctx, actor, id, input)
	rating, _ := args.Get(0).(*domain.Rating)
	return rating, args.Error(1)
}

func (m *MockApplicationUsecase) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockBulkUsecase struct {
	mock.Mock
}

func (m *MockBulkUsecase) Execute(ctx context.Context, actor domain.Actor, req domain.BulkRequest) (*domain.BulkResult, error) {
	args := m.Called(ctx, actor, req)
	result, _ := args.Get(0).(*domain.BulkResult)
	return result, args.Error(1)
}

func (m *MockBulkUsecase) IsProcessing(ctx context.Context, ids []string) (bool, error) {
	args := m.Called(ctx, ids)
	return args.Bool(0), args.Error(1)
}

type stubHealth struct {
	status *domain.HealthStatus
}

func (s stubHealth) Check(context.Context) *domain.HealthStatus {
	return s.status
}
