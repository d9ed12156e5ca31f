package http

import (
	"strconv"

	"some-planner/pkg/apperr"
	"some-planner/pkg/logger"
	"some-planner/pkg/response"
	"some-planner/services/planner/internal/entity"
	"some-planner/services/planner/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

type CreatePostRequest struct {
	Date    string     `json:"date" binding:"required,datetime=2006-01-02"`
	Type    string     `json:"type" binding:"required,oneof=post reel"`
	Format  string     `json:"format"`
	ShopID  OptionalID `json:"shop_id" swaggertype:"integer"`
	Status  string     `json:"status" binding:"omitempty,oneof=draft ready published"`
	Caption string     `json:"caption"`
	Notes   string     `json:"notes"`
}

var postLabels = map[string]string{
	"date":    "Date",
	"type":    "Type",
	"status":  "Status",
	"shop_id": "Shop",
}

// ListPosts godoc
// @Summary      List posts
// @Description  Calendar rows with shop name and media count. month and year filter only when both are given.
// @Tags         posts
// @Produce      json
// @Param        id query int false "Post ID"
// @Param        month query int false "Month 1-12"
// @Param        year query int false "Year"
// @Param        status query string false "Status" Enums(draft, ready, published)
// @Success      200  {object}  response.Envelope{data=[]entity.PostSummary}
// @Failure      400  {object}  response.Envelope
// @Router       /api/posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	if c.Query("id") != "" {
		h.GetPost(c)
		return
	}

	filter, err := postFilter(c)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	posts, err := h.postUseCase.ListPosts(c.Request.Context(), filter)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	response.Success(c, posts, "")
}

func postFilter(c *gin.Context) (entity.PostFilter, error) {
	filter := entity.PostFilter{Status: entity.PostStatus(c.Query("status"))}

	month, year := c.Query("month"), c.Query("year")
	if month == "" || year == "" {
		return filter, nil
	}

	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return filter, apperr.BadRequest("Month must be between 1 and 12")
	}
	y, err := strconv.Atoi(year)
	if err != nil || y < 1 {
		return filter, apperr.BadRequest("Invalid year")
	}
	filter.Month, filter.Year = m, y
	return filter, nil
}

// GetPost godoc
// @Summary      Get post
// @Description  Post with its shop name and media ordered by sort order
// @Tags         posts
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200  {object}  response.Envelope{data=entity.PostDetail}
// @Failure      404  {object}  response.Envelope
// @Router       /api/posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := resourceID(c, nil, "Post")
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	post, err := h.postUseCase.GetPost(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	response.Success(c, post, "")
}

// CreatePost godoc
// @Summary      Create post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        X-CSRF-Token header string true "CSRF token"
// @Param        request body CreatePostRequest true "Post"
// @Success      200  {object}  response.Envelope
// @Failure      422  {object}  response.Envelope
// @Router       /api/posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := bindJSON(c, &req, postLabels); err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	status := entity.PostStatus(req.Status)
	if status == "" {
		status = entity.StatusDraft
	}

	id, err := h.postUseCase.CreatePost(c.Request.Context(), &entity.Post{
		Date:    req.Date,
		Type:    entity.PostType(req.Type),
		Format:  nullable(req.Format),
		ShopID:  req.ShopID.Value,
		Status:  status,
		Caption: nullable(req.Caption),
		Notes:   nullable(req.Notes),
	})
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	response.Success(c, gin.H{"id": id}, "Post created successfully")
}

// UpdatePost godoc
// @Summary      Update post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        X-CSRF-Token header string true "CSRF token"
// @Param        id path int false "Post ID"
// @Param        request body object true "Fields to change"
// @Success      200  {object}  response.Envelope
// @Failure      400  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Failure      422  {object}  response.Envelope
// @Router       /api/posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	raw, err := readJSONMap(c)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	id, err := resourceID(c, raw, "Post")
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	if err := h.postUseCase.UpdatePost(c.Request.Context(), id, raw); err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	response.Success(c, gin.H{"id": id}, "Post updated successfully")
}

// DeletePost godoc
// @Summary      Delete post
// @Description  Deletes the post, its media rows and the stored files
// @Tags         posts
// @Produce      json
// @Param        X-CSRF-Token header string true "CSRF token"
// @Param        id path int false "Post ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	raw, err := readJSONMap(c)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	id, err := resourceID(c, raw, "Post")
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	if err := h.postUseCase.DeletePost(c.Request.Context(), id); err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	response.Success(c, nil, "Post deleted successfully")
}
