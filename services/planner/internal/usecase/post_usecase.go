package usecase

import (
	"context"
	"errors"
	"fmt"

	"some-planner/pkg/apperr"
	"some-planner/pkg/logger"
	"some-planner/pkg/storage"
	"some-planner/services/planner/internal/entity"
	"some-planner/services/planner/internal/repo/persistent"

	"gorm.io/gorm"
)

type PostUseCase interface {
	ListPosts(ctx context.Context, filter entity.PostFilter) ([]*entity.PostSummary, error)
	GetPost(ctx context.Context, id int64) (*entity.PostDetail, error)
	CreatePost(ctx context.Context, post *entity.Post) (int64, error)
	UpdatePost(ctx context.Context, id int64, raw map[string]interface{}) error
	// DeletePost removes the post with its media rows, then the stored
	// files. File removal failures are logged only.
	DeletePost(ctx context.Context, id int64) error
}

type postUseCase struct {
	postRepo persistent.PostRepository
	shopRepo persistent.ShopRepository
	storage  storage.Storage
	notifier notifier
	logger   *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	shopRepo persistent.ShopRepository,
	store storage.Storage,
	publisher EventPublisher,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo: postRepo,
		shopRepo: shopRepo,
		storage:  store,
		notifier: notifier{publisher: publisher, logger: logger},
		logger:   logger,
	}
}

func (uc *postUseCase) ListPosts(ctx context.Context, filter entity.PostFilter) ([]*entity.PostSummary, error) {
	posts, err := uc.postRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (uc *postUseCase) GetPost(ctx context.Context, id int64) (*entity.PostDetail, error) {
	post, err := uc.postRepo.GetDetail(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Post not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post %d: %w", id, err)
	}
	return post, nil
}

func (uc *postUseCase) CreatePost(ctx context.Context, post *entity.Post) (int64, error) {
	if post.Status == "" {
		post.Status = entity.StatusDraft
	}
	if err := uc.checkShop(ctx, post.ShopID); err != nil {
		return 0, err
	}

	if err := uc.postRepo.Create(ctx, post); err != nil {
		return 0, fmt.Errorf("failed to create post: %w", err)
	}

	uc.logger.Info("Post %d created for %s", post.ID, post.Date)
	uc.notifier.notify(ctx, EventPostCreated, post)
	return post.ID, nil
}

func (uc *postUseCase) UpdatePost(ctx context.Context, id int64, raw map[string]interface{}) error {
	fields, err := postPatch.build(raw)
	if err != nil {
		return err
	}
	if shopID, ok := fields["shop_id"].(int64); ok {
		if err := uc.checkShop(ctx, &shopID); err != nil {
			return err
		}
	}

	n, err := uc.postRepo.Update(ctx, id, fields)
	if err != nil {
		return fmt.Errorf("failed to update post %d: %w", id, err)
	}
	if n == 0 {
		return apperr.NotFound("Post not found or no changes made")
	}

	uc.notifier.notify(ctx, EventPostUpdated, map[string]interface{}{"id": id})
	return nil
}

func (uc *postUseCase) DeletePost(ctx context.Context, id int64) error {
	paths, err := uc.postRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Post not found")
	}
	if err != nil {
		return fmt.Errorf("failed to delete post %d: %w", id, err)
	}

	for _, path := range paths {
		if err := uc.storage.Delete(ctx, storage.NameFromPath(path)); err != nil {
			uc.logger.Error("Failed to remove %s of deleted post %d: %v", path, id, err)
		}
	}

	uc.logger.Info("Post %d deleted with %d media files", id, len(paths))
	uc.notifier.notify(ctx, EventPostDeleted, map[string]interface{}{"id": id})
	return nil
}

func (uc *postUseCase) checkShop(ctx context.Context, shopID *int64) error {
	if shopID == nil {
		return nil
	}
	ok, err := uc.shopRepo.Exists(ctx, *shopID)
	if err != nil {
		return fmt.Errorf("failed to check shop %d: %w", *shopID, err)
	}
	if !ok {
		return apperr.Validation(map[string]string{"shop_id": "Shop not found"})
	}
	return nil
}
