package repository

import (
	"context"

	"github.com/polkiloo/checkout/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create persists the order and fills its ID and timestamps.
	Create(ctx context.Context, order *model.Order) error
	// UpdateStatus moves an existing order to the given status.
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	// GetByID fetches a single order.
	GetByID(ctx context.Context, orderID string) (*model.Order, error)
	// ListByUser returns the user's orders newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	// SelectFailedForRepublish returns orders stuck in FAILED_TO_PUBLISH,
	// least recently touched first.
	SelectFailedForRepublish(ctx context.Context, limit int) ([]model.Order, error)
}
