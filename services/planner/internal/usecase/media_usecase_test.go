package usecase

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"some-planner/pkg/apperr"
	"some-planner/pkg/logger"
	"some-planner/services/planner/internal/entity"

	"github.com/gabriel-vasile/mimetype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0}, 64)...)
	mp4Bytes = append([]byte{0, 0, 0, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm', 0, 0, 2, 0, 'i', 's', 'o', 'm', 'i', 's', 'o', '2'}, bytes.Repeat([]byte{0}, 64)...)
	pdfBytes = []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n")
)

var testPolicy = MediaPolicy{
	MaxSize:    1024,
	ImageTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
	VideoTypes: []string{"video/mp4", "video/quicktime", "video/x-msvideo"},
}

func newMediaUseCase() (MediaUseCase, *MockMediaRepository, *MockPostRepository, *spyStorage) {
	mediaRepo := new(MockMediaRepository)
	postRepo := new(MockPostRepository)
	store := newSpyStorage()
	return NewMediaUseCase(mediaRepo, postRepo, store, testPolicy, nil, logger.NewNop()), mediaRepo, postRepo, store
}

func TestUploadMedia_Image(t *testing.T) {
	uc, mediaRepo, postRepo, store := newMediaUseCase()
	ctx := context.Background()

	postRepo.On("Exists", ctx, int64(10)).Return(true, nil)
	mediaRepo.On("Create", ctx, mock.AnythingOfType("*entity.Media")).Run(func(args mock.Arguments) {
		m := args.Get(1).(*entity.Media)
		m.ID = 1
		m.SortOrder = 0
	}).Return(nil)

	media, err := uc.UploadMedia(ctx, UploadInput{
		PostID:   10,
		File:     bytes.NewReader(pngBytes),
		FileName: "Shelf.PNG",
		Size:     int64(len(pngBytes)),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), media.ID)
	assert.Equal(t, entity.MediaTypeImage, media.MediaType)
	assert.Equal(t, "image/png", media.MimeType)
	assert.Equal(t, "Shelf.PNG", media.FileName)
	assert.Equal(t, int64(len(pngBytes)), media.FileSize)
	assert.True(t, strings.HasPrefix(media.FilePath, "uploads/media_"))
	assert.True(t, strings.HasSuffix(media.FilePath, ".png"))

	require.Len(t, store.saves, 1)
	assert.Equal(t, "uploads/"+store.saves[0], media.FilePath)
	assert.Equal(t, pngBytes, store.files[store.saves[0]])
}

func TestUploadMedia_VideoWithoutExtension(t *testing.T) {
	uc, mediaRepo, postRepo, store := newMediaUseCase()
	ctx := context.Background()

	postRepo.On("Exists", ctx, int64(10)).Return(true, nil)
	mediaRepo.On("Create", ctx, mock.Anything).Return(nil)

	media, err := uc.UploadMedia(ctx, UploadInput{PostID: 10, File: bytes.NewReader(mp4Bytes), FileName: "clip", Size: int64(len(mp4Bytes))})
	require.NoError(t, err)

	assert.Equal(t, entity.MediaTypeVideo, media.MediaType)
	assert.Equal(t, "video/mp4", media.MimeType)
	assert.True(t, strings.HasSuffix(store.saves[0], ".mp4"))
}

func TestUploadMedia_DisallowedTypeLeavesNothing(t *testing.T) {
	uc, mediaRepo, postRepo, store := newMediaUseCase()

	// a PDF renamed to .jpg is still a PDF
	_, err := uc.UploadMedia(context.Background(), UploadInput{PostID: 10, File: bytes.NewReader(pdfBytes), FileName: "photo.jpg", Size: int64(len(pdfBytes))})
	require.Error(t, err)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
	assert.Equal(t, "File type not allowed", apperr.As(err).Message)

	assert.Empty(t, store.saves)
	mediaRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	postRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestUploadMedia_TooLarge(t *testing.T) {
	uc, _, _, store := newMediaUseCase()

	_, err := uc.UploadMedia(context.Background(), UploadInput{PostID: 10, File: bytes.NewReader(pngBytes), FileName: "a.png", Size: 2048})
	assert.Equal(t, "File size exceeds maximum allowed size", apperr.As(err).Message)
	assert.Empty(t, store.saves)
}

func TestUploadMedia_UnderstatedSizeIsCaught(t *testing.T) {
	uc, mediaRepo, postRepo, store := newMediaUseCase()
	ctx := context.Background()
	big := append(append([]byte{}, pngBytes...), bytes.Repeat([]byte{1}, 2048)...)

	postRepo.On("Exists", ctx, int64(10)).Return(true, nil)

	_, err := uc.UploadMedia(ctx, UploadInput{PostID: 10, File: bytes.NewReader(big), FileName: "a.png", Size: 10})
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
	assert.Len(t, store.deletes, 1)
	assert.Empty(t, store.files)
	mediaRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUploadMedia_UnknownPost(t *testing.T) {
	uc, _, postRepo, store := newMediaUseCase()
	ctx := context.Background()

	postRepo.On("Exists", ctx, int64(99)).Return(false, nil)

	_, err := uc.UploadMedia(ctx, UploadInput{PostID: 99, File: bytes.NewReader(pngBytes), FileName: "a.png", Size: int64(len(pngBytes))})
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
	assert.Equal(t, "Post not found", apperr.As(err).Message)
	assert.Empty(t, store.saves)
}

func TestUploadMedia_StorageFailureCreatesNoRow(t *testing.T) {
	uc, mediaRepo, postRepo, store := newMediaUseCase()
	ctx := context.Background()
	store.saveErr = errors.New("disk full")

	postRepo.On("Exists", ctx, int64(10)).Return(true, nil)

	_, err := uc.UploadMedia(ctx, UploadInput{PostID: 10, File: bytes.NewReader(pngBytes), FileName: "a.png", Size: int64(len(pngBytes))})
	assert.Equal(t, apperr.KindServer, apperr.KindOf(err))
	assert.Equal(t, "Failed to save file", apperr.As(err).Message)
	mediaRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUploadMedia_InsertFailureRemovesFile(t *testing.T) {
	uc, mediaRepo, postRepo, store := newMediaUseCase()
	ctx := context.Background()

	postRepo.On("Exists", ctx, int64(10)).Return(true, nil)
	mediaRepo.On("Create", ctx, mock.Anything).Return(errors.New("insert failed"))

	_, err := uc.UploadMedia(ctx, UploadInput{PostID: 10, File: bytes.NewReader(pngBytes), FileName: "a.png", Size: int64(len(pngBytes))})
	assert.Equal(t, apperr.KindServer, apperr.KindOf(err))
	require.Len(t, store.saves, 1)
	assert.Equal(t, store.saves, store.deletes)
	assert.Empty(t, store.files)
}

func TestDeleteMedia(t *testing.T) {
	uc, mediaRepo, _, store := newMediaUseCase()
	ctx := context.Background()

	mediaRepo.On("GetByID", ctx, int64(1)).Return(&entity.Media{ID: 1, PostID: 10, FilePath: "uploads/media_a.png"}, nil)
	mediaRepo.On("Delete", ctx, int64(1)).Return(int64(1), nil)

	require.NoError(t, uc.DeleteMedia(ctx, 1))
	assert.Equal(t, []string{"media_a.png"}, store.deletes)
}

func TestDeleteMedia_NotFound(t *testing.T) {
	uc, mediaRepo, _, store := newMediaUseCase()
	ctx := context.Background()

	mediaRepo.On("GetByID", ctx, int64(1)).Return(nil, gorm.ErrRecordNotFound)

	err := uc.DeleteMedia(ctx, 1)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "Media not found", apperr.As(err).Message)
	assert.Empty(t, store.deletes)
}

func TestExtension(t *testing.T) {
	cases := map[string]string{
		"photo.JPG":      ".jpg",
		"archive.tar.gz": ".gz",
		"noext":          ".png",
		"weird.p$p":      ".png",
		"":               ".png",
	}
	for name, want := range cases {
		assert.Equal(t, want, extension(name, mimetype.Detect(pngBytes)), name)
	}
}
