package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/checkout/internal/domain/errors"
	"github.com/polkiloo/checkout/internal/domain/model"
	"github.com/polkiloo/checkout/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/order/create.
func (h *OrderHandler) Create(c *gin.Context) {
	userID := CurrentUserID(c)

	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.OrderResponse{Success: false, Message: "invalid order data"})
		return
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.OrderItem{ProductID: item.Product, Quantity: item.Quantity})
	}

	order, err := h.facade.SubmitOrder(c.Request.Context(), userID, req.Address, items)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, dto.OrderResponse{Success: false, Message: "invalid order data"})
			return
		}
		// Internal failure details stay out of the response body.
		c.JSON(http.StatusInternalServerError, dto.OrderResponse{Success: false, Message: "order submission failed"})
		return
	}

	c.JSON(http.StatusOK, dto.OrderResponse{
		Success: true,
		Message: "order submitted for processing",
		OrderID: order.ID,
	})
}

// List handles GET /api/order/list.
func (h *OrderHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	orders, err := h.facade.Orders(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderSummaryResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderSummary(o))
	}

	c.JSON(http.StatusOK, response)
}

func toOrderSummary(order model.Order) dto.OrderSummaryResponse {
	return dto.OrderSummaryResponse{
		ID:        order.ID,
		Status:    string(order.Status),
		Amount:    order.Amount,
		Address:   order.AddressID,
		CreatedAt: order.CreatedAt,
	}
}
