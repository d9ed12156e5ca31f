package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"some-planner/pkg/apperr"
	"some-planner/pkg/logger"
	"some-planner/pkg/storage"
	"some-planner/services/planner/internal/entity"
	"some-planner/services/planner/internal/repo/persistent"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// sniffLen is how much of an upload is read to detect its content type.
const sniffLen = 3072

type MediaPolicy struct {
	MaxSize    int64
	ImageTypes []string
	VideoTypes []string
}

type UploadInput struct {
	PostID   int64
	File     io.Reader
	FileName string
	Size     int64
}

type MediaUseCase interface {
	UploadMedia(ctx context.Context, in UploadInput) (*entity.Media, error)
	DeleteMedia(ctx context.Context, id int64) error
}

type mediaUseCase struct {
	mediaRepo persistent.MediaRepository
	postRepo  persistent.PostRepository
	storage   storage.Storage
	policy    MediaPolicy
	notifier  notifier
	logger    *logger.Logger
}

func NewMediaUseCase(
	mediaRepo persistent.MediaRepository,
	postRepo persistent.PostRepository,
	store storage.Storage,
	policy MediaPolicy,
	publisher EventPublisher,
	logger *logger.Logger,
) MediaUseCase {
	return &mediaUseCase{
		mediaRepo: mediaRepo,
		postRepo:  postRepo,
		storage:   store,
		policy:    policy,
		notifier:  notifier{publisher: publisher, logger: logger},
		logger:    logger,
	}
}

// UploadMedia stores the file first and only then records it. A failed
// insert removes the stored file again.
func (uc *mediaUseCase) UploadMedia(ctx context.Context, in UploadInput) (*entity.Media, error) {
	if in.Size > uc.policy.MaxSize {
		return nil, apperr.BadRequest("File size exceeds maximum allowed size")
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(in.File, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, apperr.BadRequest("File upload failed")
	}
	head = head[:n]

	detected := mimetype.Detect(head)
	mimeType, mediaType, ok := uc.classify(detected)
	if !ok {
		uc.logger.Warn("Upload rejected for post %d: %s", in.PostID, detected.String())
		return nil, apperr.BadRequest("File type not allowed")
	}

	exists, err := uc.postRepo.Exists(ctx, in.PostID)
	if err != nil {
		return nil, fmt.Errorf("failed to check post %d: %w", in.PostID, err)
	}
	if !exists {
		return nil, apperr.BadRequest("Post not found")
	}

	name := "media_" + uuid.NewString() + extension(in.FileName, detected)
	if in.FileName == "" {
		in.FileName = name
	}
	body := &countingReader{r: io.MultiReader(bytes.NewReader(head), in.File)}
	if err := uc.storage.Save(ctx, name, body, mimeType); err != nil {
		return nil, apperr.Internal("Failed to save file", err)
	}

	if body.n > uc.policy.MaxSize {
		uc.removeFile(ctx, name)
		return nil, apperr.BadRequest("File size exceeds maximum allowed size")
	}

	media := &entity.Media{
		PostID:    in.PostID,
		FilePath:  storage.PathPrefix + name,
		FileName:  in.FileName,
		MediaType: mediaType,
		FileSize:  body.n,
		MimeType:  mimeType,
	}
	if err := uc.mediaRepo.Create(ctx, media); err != nil {
		uc.removeFile(ctx, name)
		return nil, fmt.Errorf("failed to record media for post %d: %w", in.PostID, err)
	}

	uc.logger.Info("Media %d uploaded to post %d as %s (%d bytes)", media.ID, media.PostID, media.FilePath, media.FileSize)
	uc.notifier.notify(ctx, EventMediaUploaded, media)
	return media, nil
}

func (uc *mediaUseCase) DeleteMedia(ctx context.Context, id int64) error {
	media, err := uc.mediaRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Media not found")
	}
	if err != nil {
		return fmt.Errorf("failed to get media %d: %w", id, err)
	}

	n, err := uc.mediaRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete media %d: %w", id, err)
	}
	if n == 0 {
		return apperr.NotFound("Media not found")
	}

	uc.removeFile(ctx, storage.NameFromPath(media.FilePath))
	uc.notifier.notify(ctx, EventMediaDeleted, map[string]interface{}{"id": id, "post_id": media.PostID})
	return nil
}

// classify matches detected against the allow-lists, images first.
func (uc *mediaUseCase) classify(detected *mimetype.MIME) (string, entity.MediaType, bool) {
	for _, t := range uc.policy.ImageTypes {
		if detected.Is(t) {
			return t, entity.MediaTypeImage, true
		}
	}
	for _, t := range uc.policy.VideoTypes {
		if detected.Is(t) {
			return t, entity.MediaTypeVideo, true
		}
	}
	return "", "", false
}

func (uc *mediaUseCase) removeFile(ctx context.Context, name string) {
	if err := uc.storage.Delete(ctx, name); err != nil {
		uc.logger.Error("Failed to remove stored file %s: %v", name, err)
	}
}

// extension keeps the client's extension when it is plain alphanumerics,
// otherwise uses the one of the detected type.
func extension(fileName string, detected *mimetype.MIME) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if len(ext) > 1 && len(ext) <= 10 && strings.IndexFunc(ext[1:], func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	}) < 0 {
		return ext
	}
	return detected.Extension()
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
