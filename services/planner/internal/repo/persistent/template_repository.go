package persistent

import (
	"context"

	"some-planner/services/planner/internal/entity"
	"some-planner/services/planner/internal/model"

	"gorm.io/gorm"
)

type TemplateRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*entity.Template, error)
	GetByID(ctx context.Context, id int64) (*entity.Template, error)
	Create(ctx context.Context, template *entity.Template) error
	Update(ctx context.Context, id int64, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type templateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) List(ctx context.Context, activeOnly bool) ([]*entity.Template, error) {
	var templateModels []model.TemplateModel
	query := r.db.WithContext(ctx).Order("name ASC").Order("id ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if err := query.Find(&templateModels).Error; err != nil {
		return nil, err
	}

	templates := make([]*entity.Template, len(templateModels))
	for i := range templateModels {
		templates[i] = ToTemplateEntity(&templateModels[i])
	}
	return templates, nil
}

func (r *templateRepository) GetByID(ctx context.Context, id int64) (*entity.Template, error) {
	var templateModel model.TemplateModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&templateModel).Error; err != nil {
		return nil, err
	}
	return ToTemplateEntity(&templateModel), nil
}

func (r *templateRepository) Create(ctx context.Context, template *entity.Template) error {
	templateModel := ToTemplateModel(template)
	if err := r.db.WithContext(ctx).Create(templateModel).Error; err != nil {
		return err
	}
	*template = *ToTemplateEntity(templateModel)
	return nil
}

func (r *templateRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.TemplateModel{}).Where("id = ?", id).Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *templateRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.TemplateModel{})
	return result.RowsAffected, result.Error
}
