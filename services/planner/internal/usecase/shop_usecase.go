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

type ShopUseCase interface {
	ListShops(ctx context.Context, activeOnly bool) ([]*entity.Shop, error)
	GetShop(ctx context.Context, id int64) (*entity.Shop, error)
	CreateShop(ctx context.Context, shop *entity.Shop) (int64, error)
	UpdateShop(ctx context.Context, id int64, raw map[string]interface{}) error
	DeleteShop(ctx context.Context, id int64) error
}

type shopUseCase struct {
	shopRepo persistent.ShopRepository
	logger   *logger.Logger
}

func NewShopUseCase(shopRepo persistent.ShopRepository, logger *logger.Logger) ShopUseCase {
	return &shopUseCase{
		shopRepo: shopRepo,
		logger:   logger,
	}
}

func (uc *shopUseCase) ListShops(ctx context.Context, activeOnly bool) ([]*entity.Shop, error) {
	shops, err := uc.shopRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list shops: %w", err)
	}
	return shops, nil
}

func (uc *shopUseCase) GetShop(ctx context.Context, id int64) (*entity.Shop, error) {
	shop, err := uc.shopRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Shop not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shop %d: %w", id, err)
	}
	return shop, nil
}

func (uc *shopUseCase) CreateShop(ctx context.Context, shop *entity.Shop) (int64, error) {
	if err := uc.shopRepo.Create(ctx, shop); err != nil {
		return 0, fmt.Errorf("failed to create shop: %w", err)
	}
	uc.logger.Info("Shop %d created: %s", shop.ID, shop.Name)
	return shop.ID, nil
}

func (uc *shopUseCase) UpdateShop(ctx context.Context, id int64, raw map[string]interface{}) error {
	fields, err := shopPatch.build(raw)
	if err != nil {
		return err
	}

	n, err := uc.shopRepo.Update(ctx, id, fields)
	if err != nil {
		return fmt.Errorf("failed to update shop %d: %w", id, err)
	}
	if n == 0 {
		return apperr.NotFound("Shop not found or no changes made")
	}
	return nil
}

func (uc *shopUseCase) DeleteShop(ctx context.Context, id int64) error {
	n, err := uc.shopRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete shop %d: %w", id, err)
	}
	if n == 0 {
		return apperr.NotFound("Shop not found")
	}
	uc.logger.Info("Shop %d deleted", id)
	return nil
}
