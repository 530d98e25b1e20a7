package test

import (
	"context"

	domainErrors "github.com/polkiloo/checkout/internal/domain/errors"
	"github.com/polkiloo/checkout/internal/domain/model"
)

// OrderCreateCall records a persisted order for later assertions.
type OrderCreateCall struct {
	Order model.Order
}

// OrderStatusCall records an UpdateStatus invocation.
type OrderStatusCall struct {
	OrderID string
	Status  model.OrderStatus
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, *model.Order) error
	UpdateStatusFn func(context.Context, string, model.OrderStatus) error
	GetByIDFn      func(context.Context, string) (*model.Order, error)
	ListByUserFn   func(context.Context, string) ([]model.Order, error)
	SelectFailedFn func(context.Context, int) ([]model.Order, error)

	Created     []OrderCreateCall
	Orders      []model.Order
	Failed      []model.Order
	StatusCalls []OrderStatusCall
}

// Create tracks invocations and assigns a deterministic id.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	order.ID = "order-1"
	s.Created = append(s.Created, OrderCreateCall{Order: *order})
	return nil
}

// UpdateStatus records update invocations.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	s.StatusCalls = append(s.StatusCalls, OrderStatusCall{OrderID: orderID, Status: status})
	return nil
}

// GetByID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, orderID)
	}
	for _, o := range s.Orders {
		if o.ID == orderID {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns orders from configured slice.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	return s.Orders, nil
}

// SelectFailedForRepublish returns queued orders for reconciliation.
func (s *OrderRepositoryStub) SelectFailedForRepublish(ctx context.Context, limit int) ([]model.Order, error) {
	if s.SelectFailedFn != nil {
		return s.SelectFailedFn(ctx, limit)
	}
	return s.Failed, nil
}

// CatalogRepositoryStub prices products from an in-memory map.
type CatalogRepositoryStub struct {
	UnitPriceFn func(context.Context, string) (int64, error)
	Prices      map[string]int64
}

// UnitPrice returns the configured price or not found.
func (s *CatalogRepositoryStub) UnitPrice(ctx context.Context, productID string) (int64, error) {
	if s.UnitPriceFn != nil {
		return s.UnitPriceFn(ctx, productID)
	}
	if price, ok := s.Prices[productID]; ok {
		return price, nil
	}
	return 0, domainErrors.ErrNotFound
}

// CartRepositoryStub keeps carts in memory for tests.
type CartRepositoryStub struct {
	ItemsFn   func(context.Context, string) ([]model.OrderItem, error)
	SetItemFn func(context.Context, string, string, int64) error
	ClearFn   func(context.Context, string) error

	Carts   map[string][]model.OrderItem
	Cleared []string
}

// Items returns the configured cart contents.
func (s *CartRepositoryStub) Items(ctx context.Context, userID string) ([]model.OrderItem, error) {
	if s.ItemsFn != nil {
		return s.ItemsFn(ctx, userID)
	}
	return s.Carts[userID], nil
}

// SetItem stores a quantity in the in-memory cart.
func (s *CartRepositoryStub) SetItem(ctx context.Context, userID, productID string, quantity int64) error {
	if s.SetItemFn != nil {
		return s.SetItemFn(ctx, userID, productID, quantity)
	}
	if s.Carts == nil {
		s.Carts = make(map[string][]model.OrderItem)
	}
	items := s.Carts[userID]
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			s.Carts[userID] = items
			return nil
		}
	}
	s.Carts[userID] = append(items, model.OrderItem{ProductID: productID, Quantity: quantity})
	return nil
}

// Clear records cleared carts.
func (s *CartRepositoryStub) Clear(ctx context.Context, userID string) error {
	if s.ClearFn != nil {
		return s.ClearFn(ctx, userID)
	}
	s.Cleared = append(s.Cleared, userID)
	delete(s.Carts, userID)
	return nil
}
