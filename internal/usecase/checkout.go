package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/checkout/internal/domain/errors"
	"github.com/polkiloo/checkout/internal/domain/model"
	"github.com/polkiloo/checkout/internal/domain/repository"
)

// surchargePercent is the fixed processing surcharge applied to the base total.
// Amounts are integer minor units, so the division truncates toward zero.
const surchargePercent = 2

// EventPublisher sends an order event keyed by the broker partitioning key.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event model.OrderEvent) error
}

// CheckoutUseCase orchestrates order submission: pricing, persistence, event
// publish and cart clearing.
type CheckoutUseCase struct {
	orders    repository.OrderRepository
	catalog   repository.CatalogRepository
	carts     repository.CartRepository
	publisher EventPublisher
	logger    *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(orders repository.OrderRepository, catalog repository.CatalogRepository, carts repository.CartRepository, publisher EventPublisher, logger *slog.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{orders: orders, catalog: catalog, carts: carts, publisher: publisher, logger: logger}
}

// Submit runs the order submission pipeline. The durable record is always
// written before the publish attempt: on publish failure there is a
// reconciliable row instead of an orphan event. Once the order is persisted the
// pipeline runs to completion even if the caller's context is cancelled.
func (u *CheckoutUseCase) Submit(ctx context.Context, userID, addressID string, items []model.OrderItem) (*model.Order, error) {
	if userID == "" || addressID == "" || len(items) == 0 {
		return nil, domainErrors.ErrInvalidRequest
	}

	priced, err := u.priceItems(ctx, userID, items)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrPricingFailure, err)
	}

	base := baseAmount(priced)
	if base <= 0 {
		return nil, fmt.Errorf("%w: no valid total", domainErrors.ErrInvalidRequest)
	}
	amount := base + base*surchargePercent/100

	order := &model.Order{
		UserID:    userID,
		Items:     items,
		Amount:    amount,
		AddressID: addressID,
		Status:    model.OrderStatusPending,
		EventID:   uuid.NewString(),
	}
	if err := u.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrPersistenceFailure, err)
	}

	// The order is durable now; steps after this point must not be abandoned
	// when the caller goes away.
	ctx = context.WithoutCancel(ctx)

	event := model.NewOrderEvent(order, time.Now())
	if err := u.publisher.Publish(ctx, order.UserID, event); err != nil {
		u.logger.Error("order event publish failed",
			slog.String("order_id", order.ID),
			slog.String("user_id", order.UserID),
			slog.String("error", err.Error()),
		)
		if markErr := u.orders.UpdateStatus(ctx, order.ID, model.OrderStatusFailedToPublish); markErr != nil {
			u.logger.Error("mark order failed-to-publish failed",
				slog.String("order_id", order.ID),
				slog.String("error", markErr.Error()),
			)
		} else {
			order.Status = model.OrderStatusFailedToPublish
		}
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrPublishFailure, err)
	}

	if err := u.carts.Clear(ctx, userID); err != nil {
		u.logger.Warn("cart clear failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	return order, nil
}

// ListByUser returns the user's orders newest first.
func (u *CheckoutUseCase) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// CartItems returns the user's current cart.
func (u *CheckoutUseCase) CartItems(ctx context.Context, userID string) ([]model.OrderItem, error) {
	return u.carts.Items(ctx, userID)
}

// UpdateCart stores the quantity for a product in the user's cart.
func (u *CheckoutUseCase) UpdateCart(ctx context.Context, userID, productID string, quantity int64) error {
	if userID == "" || productID == "" {
		return domainErrors.ErrInvalidRequest
	}
	return u.carts.SetItem(ctx, userID, productID, quantity)
}

// FailedOrders returns orders awaiting publish reconciliation.
func (u *CheckoutUseCase) FailedOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.SelectFailedForRepublish(ctx, limit)
}

// Republish retries the event publish for an order whose earlier publish failed
// and returns it to the pending state. A fresh envelope id is used; downstream
// de-duplication keys on the order payload.
func (u *CheckoutUseCase) Republish(ctx context.Context, order model.Order) error {
	event := model.NewOrderEvent(&order, time.Now())
	if err := u.publisher.Publish(ctx, order.UserID, event); err != nil {
		return fmt.Errorf("%w: %w", domainErrors.ErrPublishFailure, err)
	}
	if err := u.orders.UpdateStatus(ctx, order.ID, model.OrderStatusPending); err != nil {
		return fmt.Errorf("%w: %w", domainErrors.ErrPersistenceFailure, err)
	}
	return nil
}
