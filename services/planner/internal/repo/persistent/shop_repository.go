package persistent

import (
	"context"

	"some-planner/services/planner/internal/entity"
	"some-planner/services/planner/internal/model"

	"gorm.io/gorm"
)

type ShopRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*entity.Shop, error)
	GetByID(ctx context.Context, id int64) (*entity.Shop, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, shop *entity.Shop) error
	Update(ctx context.Context, id int64, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type shopRepository struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepository{db: db}
}

func (r *shopRepository) List(ctx context.Context, activeOnly bool) ([]*entity.Shop, error) {
	var shopModels []model.ShopModel
	query := r.db.WithContext(ctx).Order("name ASC").Order("id ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if err := query.Find(&shopModels).Error; err != nil {
		return nil, err
	}

	shops := make([]*entity.Shop, len(shopModels))
	for i := range shopModels {
		shops[i] = ToShopEntity(&shopModels[i])
	}
	return shops, nil
}

func (r *shopRepository) GetByID(ctx context.Context, id int64) (*entity.Shop, error) {
	var shopModel model.ShopModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&shopModel).Error; err != nil {
		return nil, err
	}
	return ToShopEntity(&shopModel), nil
}

func (r *shopRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.ShopModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *shopRepository) Create(ctx context.Context, shop *entity.Shop) error {
	shopModel := ToShopModel(shop)
	if err := r.db.WithContext(ctx).Create(shopModel).Error; err != nil {
		return err
	}
	*shop = *ToShopEntity(shopModel)
	return nil
}

// Update applies column -> value pairs and reports matched rows.
func (r *shopRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.ShopModel{}).Where("id = ?", id).Updates(fields)
	return result.RowsAffected, result.Error
}

// Delete detaches the shop's posts and removes the shop in one transaction.
func (r *shopRepository) Delete(ctx context.Context, id int64) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.PostModel{}).Where("shop_id = ?", id).Update("shop_id", nil).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.ShopModel{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}
