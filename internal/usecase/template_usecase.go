package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-careers-backend/internal/domain"
	"go-careers-backend/pkg/apperror"
)

type templateUsecase struct {
	templateRepo domain.TemplateRepository
}

func NewTemplateUsecase(templateRepo domain.TemplateRepository) domain.TemplateUsecase {
	return &templateUsecase{templateRepo: templateRepo}
}

func (u *templateUsecase) List(ctx context.Context) ([]domain.JobTemplate, error) {
	templates, err := u.templateRepo.List(ctx)
	if err != nil {
		return nil, storeError(err, "Template")
	}
	return templates, nil
}

func (u *templateUsecase) Get(ctx context.Context, id string) (*domain.JobTemplate, error) {
	tpl, err := u.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Template")
	}
	return tpl, nil
}

func (u *templateUsecase) Create(ctx context.Context, tpl *domain.JobTemplate) error {
	tpl.Name = strings.TrimSpace(tpl.Name)
	tpl.Title = strings.TrimSpace(tpl.Title)
	if tpl.Title == "" {
		return apperror.BadRequest("Title is required")
	}
	if tpl.Name == "" {
		tpl.Name = tpl.Title
	}
	if tpl.Category = strings.TrimSpace(tpl.Category); tpl.Category == "" {
		tpl.Category = defaultTemplateCategory
	}
	if tpl.Type == "" {
		tpl.Type = domain.JobTypeFullTime
	}
	if !tpl.Type.IsValid() {
		return apperror.BadRequest("Unknown job type " + string(tpl.Type))
	}
	for _, list := range []*[]string{&tpl.Requirements, &tpl.Responsibilities, &tpl.Benefits} {
		if *list == nil {
			*list = []string{}
		}
	}

	tpl.ID = uuid.NewString()
	tpl.CreatedAt = time.Now().UTC()

	if err := u.templateRepo.Create(ctx, tpl); err != nil {
		return storeError(err, "Template")
	}
	return nil
}

func (u *templateUsecase) Delete(ctx context.Context, id string) error {
	return storeError(u.templateRepo.Delete(ctx, id), "Template")
}
