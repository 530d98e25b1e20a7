package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/polkiloo/checkout/internal/domain/model"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	SubmitFn func(context.Context, string, string, []model.OrderItem) (*model.Order, error)
	OrdersFn func(context.Context, string) ([]model.Order, error)
}

// SubmitOrder delegates to provided function or returns default order.
func (s OrderFacadeStub) SubmitOrder(ctx context.Context, userID, addressID string, items []model.OrderItem) (*model.Order, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, userID, addressID, items)
	}
	return &model.Order{ID: "order-1", UserID: userID, AddressID: addressID, Items: items, Status: model.OrderStatusPending}, nil
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID string) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{ID: "order-1", UserID: userID}}, nil
}

// CartFacadeStub simulates cart operations.
type CartFacadeStub struct {
	ItemsFn  func(context.Context, string) ([]model.OrderItem, error)
	UpdateFn func(context.Context, string, string, int64) error
}

// CartItems returns stored cart or default data.
func (s CartFacadeStub) CartItems(ctx context.Context, userID string) ([]model.OrderItem, error) {
	if s.ItemsFn != nil {
		return s.ItemsFn(ctx, userID)
	}
	return []model.OrderItem{{ProductID: "p1", Quantity: 1}}, nil
}

// UpdateCart executes configured handler.
func (s CartFacadeStub) UpdateCart(ctx context.Context, userID, productID string, quantity int64) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, userID, productID, quantity)
	}
	return nil
}

// RepublishCall stores information about RepublishOrder invocations.
type RepublishCall struct {
	Order model.Order
}

// WorkerFacadeStub mimics worker interactions with the checkout facade.
type WorkerFacadeStub struct {
	Batches     [][]model.Order
	FailedFn    func(context.Context, int) ([]model.Order, error)
	RepublishFn func(context.Context, model.Order) error
	Republished []RepublishCall

	mu              sync.Mutex
	failedCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// FailedOrders returns batches from configured queue.
func (s *WorkerFacadeStub) FailedOrders(ctx context.Context, limit int) ([]model.Order, error) {
	if s.FailedFn != nil {
		return s.FailedFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.failedCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// RepublishOrder records republish requests.
func (s *WorkerFacadeStub) RepublishOrder(ctx context.Context, order model.Order) error {
	if s.RepublishFn != nil {
		return s.RepublishFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Republished = append(s.Republished, RepublishCall{Order: order})
	return nil
}

// PublishCall stores a published event and its partition key.
type PublishCall struct {
	Key   string
	Event model.OrderEvent
}

// PublisherStub captures published order events.
type PublisherStub struct {
	PublishFn func(context.Context, string, model.OrderEvent) error
	Published []PublishCall
}

// Publish records the event or delegates to the override.
func (s *PublisherStub) Publish(ctx context.Context, key string, event model.OrderEvent) error {
	if s.PublishFn != nil {
		return s.PublishFn(ctx, key, event)
	}
	s.Published = append(s.Published, PublishCall{Key: key, Event: event})
	return nil
}

// CheckoutFacadeStub aggregates facade dependencies for HTTP layer tests.
type CheckoutFacadeStub struct {
	TokenParserStub
	OrderFacadeStub
	CartFacadeStub
}
