package http

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"

	"some-planner/pkg/apperr"
	"some-planner/pkg/logger"
	"some-planner/pkg/response"
	"some-planner/pkg/storage"
	"some-planner/services/planner/internal/usecase"

	"github.com/gin-gonic/gin"
)

// multipartOverhead is allowed on top of the file size limit for the form
// boundaries and the post_id field.
const multipartOverhead = 1 << 20

type MediaHandler struct {
	mediaUseCase usecase.MediaUseCase
	logger       *logger.Logger
}

func NewMediaHandler(mediaUseCase usecase.MediaUseCase, logger *logger.Logger) *MediaHandler {
	return &MediaHandler{
		mediaUseCase: mediaUseCase,
		logger:       logger,
	}
}

// LimitUploadBody caps the request body so oversized uploads fail while
// the form is parsed.
func LimitUploadBody(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize+multipartOverhead)
		c.Next()
	}
}

// UploadMedia godoc
// @Summary      Upload media
// @Description  Attach an image or video to a post. The type is detected from the content.
// @Tags         media
// @Accept       multipart/form-data
// @Produce      json
// @Param        X-CSRF-Token header string true "CSRF token"
// @Param        post_id formData int true "Post ID"
// @Param        file formData file true "Image or video"
// @Success      200  {object}  response.Envelope{data=entity.Media}
// @Failure      400  {object}  response.Envelope
// @Failure      500  {object}  response.Envelope
// @Router       /api/media [post]
func (h *MediaHandler) UploadMedia(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Fail(c, h.logger, apperr.BadRequest("File size exceeds maximum allowed size"))
			return
		}
		response.Fail(c, h.logger, apperr.BadRequest("File and post_id are required"))
		return
	}
	rawPostID := c.PostForm("post_id")
	if rawPostID == "" {
		response.Fail(c, h.logger, apperr.BadRequest("File and post_id are required"))
		return
	}
	postID, err := strconv.ParseInt(rawPostID, 10, 64)
	if err != nil || postID <= 0 {
		response.Fail(c, h.logger, apperr.BadRequest("Invalid post ID"))
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Fail(c, h.logger, apperr.Internal("File upload failed", err))
		return
	}
	defer file.Close()

	media, err := h.mediaUseCase.UploadMedia(c.Request.Context(), usecase.UploadInput{
		PostID:   postID,
		File:     file,
		FileName: header.Filename,
		Size:     header.Size,
	})
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	response.Success(c, gin.H{
		"id":         media.ID,
		"post_id":    media.PostID,
		"file_path":  media.FilePath,
		"file_name":  media.FileName,
		"media_type": media.MediaType,
		"file_size":  media.FileSize,
		"mime_type":  media.MimeType,
		"sort_order": media.SortOrder,
	}, "File uploaded successfully")
}

// DeleteMedia godoc
// @Summary      Delete media
// @Tags         media
// @Produce      json
// @Param        X-CSRF-Token header string true "CSRF token"
// @Param        id path int false "Media ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/media/{id} [delete]
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	raw, err := readJSONMap(c)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	id, err := resourceID(c, raw, "Media")
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	if err := h.mediaUseCase.DeleteMedia(c.Request.Context(), id); err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	response.Success(c, nil, "Media deleted successfully")
}

// ServeUpload returns a handler streaming stored files from local storage.
//
// @Summary      Stored media file
// @Tags         media
// @Produce      octet-stream
// @Param        name path string true "Stored file name"
// @Success      200
// @Failure      404  {object}  response.Envelope
// @Router       /uploads/{name} [get]
func ServeUpload(store *storage.Local, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path, err := store.Path(strings.TrimPrefix(c.Param("filepath"), "/"))
		if err != nil {
			response.Fail(c, log, apperr.NotFound("File not found"))
			return
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			response.Fail(c, log, apperr.NotFound("File not found"))
			return
		}
		c.File(path)
	}
}
