package handlers

import (
	"context"

	"github.com/polkiloo/checkout/internal/domain/model"
)

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	SubmitOrder(ctx context.Context, userID, addressID string, items []model.OrderItem) (*model.Order, error)
	Orders(ctx context.Context, userID string) ([]model.Order, error)
}

// CartFacade provides cart related operations.
type CartFacade interface {
	CartItems(ctx context.Context, userID string) ([]model.OrderItem, error)
	UpdateCart(ctx context.Context, userID, productID string, quantity int64) error
}

// CheckoutFacade aggregates the full set of operations used across handlers.
type CheckoutFacade interface {
	ParseToken(token string) (string, error)
	OrderFacade
	CartFacade
}
