package repository

import (
	"context"

	"github.com/polkiloo/checkout/internal/domain/model"
)

// CartRepository stores per-user shopping carts.
type CartRepository interface {
	// Items returns the current cart lines for the user.
	Items(ctx context.Context, userID string) ([]model.OrderItem, error)
	// SetItem stores the quantity for a product; non-positive quantity removes the line.
	SetItem(ctx context.Context, userID, productID string, quantity int64) error
	// Clear removes the user's cart entirely.
	Clear(ctx context.Context, userID string) error
}
