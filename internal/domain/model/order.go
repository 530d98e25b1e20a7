package model

import "time"

// OrderStatus describes publish lifecycle of a submitted order.
type OrderStatus string

const (
	// OrderStatusPending marks orders durably recorded and awaiting downstream processing.
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusFailedToPublish marks orders whose broker publish failed and which
	// await reconciliation.
	OrderStatusFailedToPublish OrderStatus = "FAILED_TO_PUBLISH"
)

// OrderItem is a raw cart line as submitted by the user.
type OrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

// PricedItem is an order line with its resolved unit price in minor units.
type PricedItem struct {
	ProductID string
	Quantity  int64
	UnitPrice int64
}

// Order describes a durable order record. Amount is kept in integer minor units.
type Order struct {
	ID        string
	UserID    string
	Items     []OrderItem
	Amount    int64
	AddressID string
	Status    OrderStatus
	EventID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
