package persistent

import (
	"context"
	"time"

	"some-planner/services/planner/internal/entity"
	"some-planner/services/planner/internal/model"

	"gorm.io/gorm"
)

type PostRepository interface {
	List(ctx context.Context, filter entity.PostFilter) ([]*entity.PostSummary, error)
	GetDetail(ctx context.Context, id int64) (*entity.PostDetail, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, post *entity.Post) error
	Update(ctx context.Context, id int64, fields map[string]interface{}) (int64, error)
	// Delete removes the post and its media rows and returns the file paths
	// those rows referenced. gorm.ErrRecordNotFound when the post is absent.
	Delete(ctx context.Context, id int64) ([]string, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) rows(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("posts AS p").
		Select("p.*, s.name AS shop_name, (SELECT COUNT(*) FROM media m WHERE m.post_id = p.id) AS media_count").
		Joins("LEFT JOIN shops s ON s.id = p.shop_id")
}

func (r *postRepository) List(ctx context.Context, filter entity.PostFilter) ([]*entity.PostSummary, error) {
	query := r.rows(ctx)

	if filter.Month > 0 && filter.Year > 0 {
		from := time.Date(filter.Year, time.Month(filter.Month), 1, 0, 0, 0, 0, time.UTC)
		query = query.Where("p.date >= ? AND p.date < ?", from, from.AddDate(0, 1, 0))
	}
	if filter.Status != "" {
		query = query.Where("p.status = ?", string(filter.Status))
	}

	var rows []model.PostRow
	if err := query.Order("p.date ASC, p.created_at ASC, p.id ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	posts := make([]*entity.PostSummary, len(rows))
	for i := range rows {
		posts[i] = ToPostSummaryEntity(&rows[i])
	}
	return posts, nil
}

func (r *postRepository) GetDetail(ctx context.Context, id int64) (*entity.PostDetail, error) {
	var rows []model.PostRow
	if err := r.rows(ctx).Where("p.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var mediaModels []model.MediaModel
	if err := r.db.WithContext(ctx).Where("post_id = ?", id).Order("sort_order ASC, id ASC").Find(&mediaModels).Error; err != nil {
		return nil, err
	}

	detail := &entity.PostDetail{
		Post:     *ToPostEntity(&rows[0].PostModel),
		ShopName: rows[0].ShopName,
		Media:    make([]entity.Media, len(mediaModels)),
	}
	for i := range mediaModels {
		detail.Media[i] = ToMediaEntity(&mediaModels[i])
	}
	return detail, nil
}

func (r *postRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.PostModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postModel, err := ToPostModel(post)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(postModel).Error; err != nil {
		return err
	}
	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.PostModel{}).Where("id = ?", id).Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *postRepository) Delete(ctx context.Context, id int64) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.MediaModel{}).Where("post_id = ?", id).Order("sort_order ASC").Pluck("file_path", &paths).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.MediaModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.PostModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
