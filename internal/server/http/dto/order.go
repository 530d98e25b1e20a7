package dto

import "time"

// OrderItemRequest is a single cart line in the submission payload.
type OrderItemRequest struct {
	Product  string `json:"product" binding:"required"`
	Quantity int64  `json:"quantity"`
}

// OrderRequest describes the order submission payload.
type OrderRequest struct {
	Address string             `json:"address" binding:"required"`
	Items   []OrderItemRequest `json:"items" binding:"required"`
}

// OrderResponse is the submission outcome returned to the client.
type OrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"orderId,omitempty"`
}

// OrderSummaryResponse is a single entry of the order history listing.
type OrderSummaryResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Amount    int64     `json:"amount"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}
