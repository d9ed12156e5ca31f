package http

import (
	"some-planner/pkg/logger"
	"some-planner/pkg/response"
	"some-planner/services/planner/internal/entity"
	"some-planner/services/planner/internal/usecase"

	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	templateUseCase usecase.TemplateUseCase
	logger          *logger.Logger
}

func NewTemplateHandler(templateUseCase usecase.TemplateUseCase, logger *logger.Logger) *TemplateHandler {
	return &TemplateHandler{
		templateUseCase: templateUseCase,
		logger:          logger,
	}
}

type CreateTemplateRequest struct {
	Name            string `json:"name" binding:"required"`
	CaptionTemplate string `json:"caption_template"`
	MediaGuide      string `json:"media_guide"`
	Active          *Flag  `json:"active" swaggertype:"boolean"`
}

var templateLabels = map[string]string{
	"name":   "Template name",
	"active": "Active",
}

// ListTemplates godoc
// @Summary      List templates
// @Tags         templates
// @Produce      json
// @Param        id query int false "Template ID"
// @Param        active query int false "1 to list active templates only"
// @Success      200  {object}  response.Envelope{data=[]entity.Template}
// @Router       /api/templates [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	if c.Query("id") != "" {
		h.GetTemplate(c)
		return
	}

	templates, err := h.templateUseCase.ListTemplates(c.Request.Context(), c.Query("active") == "1")
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	response.Success(c, templates, "")
}

// GetTemplate godoc
// @Summary      Get template
// @Tags         templates
// @Produce      json
// @Param        id path int true "Template ID"
// @Success      200  {object}  response.Envelope{data=entity.Template}
// @Failure      404  {object}  response.Envelope
// @Router       /api/templates/{id} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	id, err := resourceID(c, nil, "Template")
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	template, err := h.templateUseCase.GetTemplate(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	response.Success(c, template, "")
}

// CreateTemplate godoc
// @Summary      Create template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        X-CSRF-Token header string true "CSRF token"
// @Param        request body CreateTemplateRequest true "Template"
// @Success      200  {object}  response.Envelope
// @Failure      422  {object}  response.Envelope
// @Router       /api/templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := bindJSON(c, &req, templateLabels); err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	id, err := h.templateUseCase.CreateTemplate(c.Request.Context(), &entity.Template{
		Name:            req.Name,
		CaptionTemplate: nullable(req.CaptionTemplate),
		MediaGuide:      nullable(req.MediaGuide),
		Active:          flagOr(req.Active, true),
	})
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	response.Success(c, gin.H{"id": id}, "Template created successfully")
}

// UpdateTemplate godoc
// @Summary      Update template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        X-CSRF-Token header string true "CSRF token"
// @Param        id path int false "Template ID"
// @Param        request body object true "Fields to change"
// @Success      200  {object}  response.Envelope
// @Failure      400  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/templates/{id} [put]
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	raw, err := readJSONMap(c)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	id, err := resourceID(c, raw, "Template")
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	if err := h.templateUseCase.UpdateTemplate(c.Request.Context(), id, raw); err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	response.Success(c, gin.H{"id": id}, "Template updated successfully")
}

// DeleteTemplate godoc
// @Summary      Delete template
// @Tags         templates
// @Produce      json
// @Param        X-CSRF-Token header string true "CSRF token"
// @Param        id path int false "Template ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/templates/{id} [delete]
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	raw, err := readJSONMap(c)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	id, err := resourceID(c, raw, "Template")
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	if err := h.templateUseCase.DeleteTemplate(c.Request.Context(), id); err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	response.Success(c, nil, "Template deleted successfully")
}
