package model

import (
	"time"

	"github.com/google/uuid"
)

// EventTypeOrderProcessingRequested marks events asking downstream consumers to
// process a newly submitted order.
const EventTypeOrderProcessingRequested = "OrderProcessingRequested"

// EventItem mirrors a raw order line inside the published payload. Unit price is
// deliberately omitted from the wire contract.
type EventItem struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

// OrderEventPayload carries the order fields downstream consumers need.
type OrderEventPayload struct {
	OrderID   string      `json:"orderId"`
	UserID    string      `json:"userId"`
	Items     []EventItem `json:"items"`
	Amount    int64       `json:"amount"`
	AddressID string      `json:"addressId"`
}

// OrderEvent is the wire envelope published to the broker. Never mutated after
// construction.
type OrderEvent struct {
	EventID   string            `json:"eventId"`
	EventType string            `json:"eventType"`
	Timestamp int64             `json:"timestamp"`
	Payload   OrderEventPayload `json:"payload"`
}

// NewOrderEvent builds the publish envelope for a persisted order. The envelope
// carries its own fresh event id, independent from the order's stored EventID,
// and a millisecond timestamp.
func NewOrderEvent(order *Order, at time.Time) OrderEvent {
	items := make([]EventItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, EventItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return OrderEvent{
		EventID:   uuid.NewString(),
		EventType: EventTypeOrderProcessingRequested,
		Timestamp: at.UnixMilli(),
		Payload: OrderEventPayload{
			OrderID:   order.ID,
			UserID:    order.UserID,
			Items:     items,
			Amount:    order.Amount,
			AddressID: order.AddressID,
		},
	}
}
