package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/checkout/internal/domain/errors"
	"github.com/polkiloo/checkout/internal/server/http/dto"
)

// CartHandler manages cart-related endpoints.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Snapshot handles GET /api/cart.
func (h *CartHandler) Snapshot(c *gin.Context) {
	userID := CurrentUserID(c)
	items, err := h.facade.CartItems(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.CartItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, dto.CartItemResponse{Product: item.ProductID, Quantity: item.Quantity})
	}

	c.JSON(http.StatusOK, response)
}

// Update handles POST /api/cart.
func (h *CartHandler) Update(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.CartUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.UpdateCart(c.Request.Context(), userID, req.Product, req.Quantity); err != nil {
		if errors.Is(err, domainErrors.ErrInvalidRequest) {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}
