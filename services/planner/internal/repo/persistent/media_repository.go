package persistent

import (
	"context"

	"some-planner/services/planner/internal/entity"
	"some-planner/services/planner/internal/model"

	"gorm.io/gorm"
)

type MediaRepository interface {
	// Create assigns the next sort order for the post and inserts the row.
	Create(ctx context.Context, media *entity.Media) error
	GetByID(ctx context.Context, id int64) (*entity.Media, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(ctx context.Context, media *entity.Media) error {
	mediaModel := ToMediaModel(media)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next int
		if err := tx.Model(&model.MediaModel{}).
			Where("post_id = ?", mediaModel.PostID).
			Select("COALESCE(MAX(sort_order), -1) + 1").
			Scan(&next).Error; err != nil {
			return err
		}
		mediaModel.SortOrder = next

		if err := tx.Create(mediaModel).Error; err != nil {
			return err
		}
		*media = ToMediaEntity(mediaModel)
		return nil
	})
}

func (r *mediaRepository) GetByID(ctx context.Context, id int64) (*entity.Media, error) {
	var mediaModel model.MediaModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&mediaModel).Error; err != nil {
		return nil, err
	}
	media := ToMediaEntity(&mediaModel)
	return &media, nil
}

func (r *mediaRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.MediaModel{})
	return result.RowsAffected, result.Error
}
