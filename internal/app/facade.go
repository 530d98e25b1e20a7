package app

import (
	"context"

	"github.com/polkiloo/checkout/internal/domain/model"
	pkgAuth "github.com/polkiloo/checkout/internal/pkg/auth"
	"github.com/polkiloo/checkout/internal/usecase"
)

// CheckoutFacade aggregates the checkout use case and auth strategy behind the
// surface the HTTP layer and the republish worker consume.
type CheckoutFacade struct {
	checkout *usecase.CheckoutUseCase
	tokens   pkgAuth.Strategy
}

func NewCheckoutFacade(checkout *usecase.CheckoutUseCase, tokens pkgAuth.Strategy) *CheckoutFacade {
	return &CheckoutFacade{checkout: checkout, tokens: tokens}
}

func (f *CheckoutFacade) IssueToken(userID string) (string, error) {
	return f.tokens.IssueToken(userID)
}

func (f *CheckoutFacade) ParseToken(token string) (string, error) {
	return f.tokens.ParseToken(token)
}

func (f *CheckoutFacade) SubmitOrder(ctx context.Context, userID, addressID string, items []model.OrderItem) (*model.Order, error) {
	return f.checkout.Submit(ctx, userID, addressID, items)
}

func (f *CheckoutFacade) Orders(ctx context.Context, userID string) ([]model.Order, error) {
	return f.checkout.ListByUser(ctx, userID)
}

func (f *CheckoutFacade) CartItems(ctx context.Context, userID string) ([]model.OrderItem, error) {
	return f.checkout.CartItems(ctx, userID)
}

func (f *CheckoutFacade) UpdateCart(ctx context.Context, userID, productID string, quantity int64) error {
	return f.checkout.UpdateCart(ctx, userID, productID, quantity)
}

func (f *CheckoutFacade) FailedOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return f.checkout.FailedOrders(ctx, limit)
}

func (f *CheckoutFacade) RepublishOrder(ctx context.Context, order model.Order) error {
	return f.checkout.Republish(ctx, order)
}
