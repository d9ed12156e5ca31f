package http

import (
	"some-planner/pkg/logger"
	"some-planner/pkg/response"
	"some-planner/services/planner/internal/entity"
	"some-planner/services/planner/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ShopHandler struct {
	shopUseCase usecase.ShopUseCase
	logger      *logger.Logger
}

func NewShopHandler(shopUseCase usecase.ShopUseCase, logger *logger.Logger) *ShopHandler {
	return &ShopHandler{
		shopUseCase: shopUseCase,
		logger:      logger,
	}
}

type CreateShopRequest struct {
	Name         string `json:"name" binding:"required"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone string `json:"contact_phone"`
	Active       *Flag  `json:"active" swaggertype:"boolean"`
}

var shopLabels = map[string]string{
	"name":          "Shop name",
	"contact_email": "Contact email",
	"active":        "Active",
}

// ListShops godoc
// @Summary      List shops
// @Description  List shops ordered by name, or return one shop when id is given
// @Tags         shops
// @Produce      json
// @Param        id query int false "Shop ID"
// @Param        active query int false "1 to list active shops only"
// @Success      200  {object}  response.Envelope{data=[]entity.Shop}
// @Failure      401  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/shops [get]
func (h *ShopHandler) ListShops(c *gin.Context) {
	if c.Query("id") != "" {
		h.GetShop(c)
		return
	}

	shops, err := h.shopUseCase.ListShops(c.Request.Context(), c.Query("active") == "1")
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	response.Success(c, shops, "")
}

// GetShop godoc
// @Summary      Get shop
// @Tags         shops
// @Produce      json
// @Param        id path int true "Shop ID"
// @Success      200  {object}  response.Envelope{data=entity.Shop}
// @Failure      404  {object}  response.Envelope
// @Router       /api/shops/{id} [get]
func (h *ShopHandler) GetShop(c *gin.Context) {
	id, err := resourceID(c, nil, "Shop")
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	shop, err := h.shopUseCase.GetShop(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	response.Success(c, shop, "")
}

// CreateShop godoc
// @Summary      Create shop
// @Tags         shops
// @Accept       json
// @Produce      json
// @Param        X-CSRF-Token header string true "CSRF token"
// @Param        request body CreateShopRequest true "Shop"
// @Success      200  {object}  response.Envelope
// @Failure      422  {object}  response.Envelope
// @Router       /api/shops [post]
func (h *ShopHandler) CreateShop(c *gin.Context) {
	var req CreateShopRequest
	if err := bindJSON(c, &req, shopLabels); err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	id, err := h.shopUseCase.CreateShop(c.Request.Context(), &entity.Shop{
		Name:         req.Name,
		ContactName:  nullable(req.ContactName),
		ContactEmail: nullable(req.ContactEmail),
		ContactPhone: nullable(req.ContactPhone),
		Active:       flagOr(req.Active, true),
	})
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	response.Success(c, gin.H{"id": id}, "Shop created successfully")
}

// UpdateShop godoc
// @Summary      Update shop
// @Description  Apply the given fields; the id comes from the path, the body or the query
// @Tags         shops
// @Accept       json
// @Produce      json
// @Param        X-CSRF-Token header string true "CSRF token"
// @Param        id path int false "Shop ID"
// @Param        request body object true "Fields to change"
// @Success      200  {object}  response.Envelope
// @Failure      400  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Failure      422  {object}  response.Envelope
// @Router       /api/shops/{id} [put]
func (h *ShopHandler) UpdateShop(c *gin.Context) {
	raw, err := readJSONMap(c)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	id, err := resourceID(c, raw, "Shop")
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	if err := h.shopUseCase.UpdateShop(c.Request.Context(), id, raw); err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	response.Success(c, gin.H{"id": id}, "Shop updated successfully")
}

// DeleteShop godoc
// @Summary      Delete shop
// @Description  Posts of the shop are kept and lose their shop
// @Tags         shops
// @Produce      json
// @Param        X-CSRF-Token header string true "CSRF token"
// @Param        id path int false "Shop ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/shops/{id} [delete]
func (h *ShopHandler) DeleteShop(c *gin.Context) {
	raw, err := readJSONMap(c)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	id, err := resourceID(c, raw, "Shop")
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	if err := h.shopUseCase.DeleteShop(c.Request.Context(), id); err != nil {
		response.Fail(c, h.logger, err)
		return
	}
	response.Success(c, nil, "Shop deleted successfully")
}
