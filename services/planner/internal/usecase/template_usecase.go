package usecase

import (
	"context"
	"errors"
	"fmt"

	"some-planner/pkg/apperr"
	"some-planner/pkg/logger"
	"some-planner/services/planner/internal/entity"
	"some-planner/services/planner/internal/repo/persistent"

	"gorm.io/gorm"
)

type TemplateUseCase interface {
	ListTemplates(ctx context.Context, activeOnly bool) ([]*entity.Template, error)
	GetTemplate(ctx context.Context, id int64) (*entity.Template, error)
	CreateTemplate(ctx context.Context, template *entity.Template) (int64, error)
	UpdateTemplate(ctx context.Context, id int64, raw map[string]interface{}) error
	DeleteTemplate(ctx context.Context, id int64) error
}

type templateUseCase struct {
	templateRepo persistent.TemplateRepository
	logger       *logger.Logger
}

func NewTemplateUseCase(templateRepo persistent.TemplateRepository, logger *logger.Logger) TemplateUseCase {
	return &templateUseCase{
		templateRepo: templateRepo,
		logger:       logger,
	}
}

func (uc *templateUseCase) ListTemplates(ctx context.Context, activeOnly bool) ([]*entity.Template, error) {
	templates, err := uc.templateRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

func (uc *templateUseCase) GetTemplate(ctx context.Context, id int64) (*entity.Template, error) {
	template, err := uc.templateRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Template not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template %d: %w", id, err)
	}
	return template, nil
}

func (uc *templateUseCase) CreateTemplate(ctx context.Context, template *entity.Template) (int64, error) {
	if err := uc.templateRepo.Create(ctx, template); err != nil {
		return 0, fmt.Errorf("failed to create template: %w", err)
	}
	return template.ID, nil
}

func (uc *templateUseCase) UpdateTemplate(ctx context.Context, id int64, raw map[string]interface{}) error {
	fields, err := templatePatch.build(raw)
	if err != nil {
		return err
	}

	n, err := uc.templateRepo.Update(ctx, id, fields)
	if err != nil {
		return fmt.Errorf("failed to update template %d: %w", id, err)
	}
	if n == 0 {
		return apperr.NotFound("Template not found or no changes made")
	}
	return nil
}

func (uc *templateUseCase) DeleteTemplate(ctx context.Context, id int64) error {
	n, err := uc.templateRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete template %d: %w", id, err)
	}
	if n == 0 {
		return apperr.NotFound("Template not found")
	}
	return nil
}
