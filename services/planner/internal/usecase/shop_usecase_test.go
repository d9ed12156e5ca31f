package usecase

import (
	"context"
	"errors"
	"testing"

	"some-planner/pkg/apperr"
	"some-planner/pkg/logger"
	"some-planner/services/planner/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGetShop_NotFound(t *testing.T) {
	mockRepo := new(MockShopRepository)
	uc := NewShopUseCase(mockRepo, logger.NewNop())

	mockRepo.On("GetByID", mock.Anything, int64(3)).Return(nil, gorm.ErrRecordNotFound)

	_, err := uc.GetShop(context.Background(), 3)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "Shop not found", apperr.As(err).Message)
}

func TestCreateShop_ReturnsID(t *testing.T) {
	mockRepo := new(MockShopRepository)
	uc := NewShopUseCase(mockRepo, logger.NewNop())

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Shop")).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.Shop).ID = 1 }).
		Return(nil)

	id, err := uc.CreateShop(context.Background(), &entity.Shop{Name: "Acme", Active: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestUpdateShop(t *testing.T) {
	t.Run("maps allowed fields to columns", func(t *testing.T) {
		mockRepo := new(MockShopRepository)
		uc := NewShopUseCase(mockRepo, logger.NewNop())

		mockRepo.On("Update", mock.Anything, int64(2), map[string]interface{}{
			"name":          "Acme",
			"contact_phone": nil,
		}).Return(int64(1), nil)

		err := uc.UpdateShop(context.Background(), 2, map[string]interface{}{
			"name":          "Acme",
			"contact_phone": "",
			"created_at":    "2020-01-01",
		})
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("zero rows is not found", func(t *testing.T) {
		mockRepo := new(MockShopRepository)
		uc := NewShopUseCase(mockRepo, logger.NewNop())

		mockRepo.On("Update", mock.Anything, int64(2), mock.Anything).Return(int64(0), nil)

		err := uc.UpdateShop(context.Background(), 2, map[string]interface{}{"name": "Acme"})
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
		assert.Equal(t, "Shop not found or no changes made", apperr.As(err).Message)
	})

	t.Run("nothing recognised", func(t *testing.T) {
		mockRepo := new(MockShopRepository)
		uc := NewShopUseCase(mockRepo, logger.NewNop())

		err := uc.UpdateShop(context.Background(), 2, map[string]interface{}{"id": 2})
		assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteShop(t *testing.T) {
	mockRepo := new(MockShopRepository)
	uc := NewShopUseCase(mockRepo, logger.NewNop())

	mockRepo.On("Delete", mock.Anything, int64(1)).Return(int64(1), nil)
	mockRepo.On("Delete", mock.Anything, int64(2)).Return(int64(0), nil)
	mockRepo.On("Delete", mock.Anything, int64(3)).Return(int64(0), errors.New("database is locked"))

	assert.NoError(t, uc.DeleteShop(context.Background(), 1))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(uc.DeleteShop(context.Background(), 2)))

	err := uc.DeleteShop(context.Background(), 3)
	assert.Equal(t, apperr.KindServer, apperr.KindOf(err))
	assert.Equal(t, "An error occurred", apperr.As(err).Message)
}
