package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/checkout/internal/domain/errors"
	"github.com/polkiloo/checkout/internal/domain/model"
)

// CheckoutFacade exposes the subset of application functionality required by the worker.
type CheckoutFacade interface {
	FailedOrders(ctx context.Context, limit int) ([]model.Order, error)
	RepublishOrder(ctx context.Context, order model.Order) error
}

// Republisher sweeps orders whose event publish failed and retries them
// concurrently.
type Republisher struct {
	facade       CheckoutFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewRepublisher constructs republish worker pool.
func NewRepublisher(facade CheckoutFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *Republisher {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Republisher{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background processing.
func (p *Republisher) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *Republisher) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Republisher) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *Republisher) fetchAndDispatch(ctx context.Context) {
	orders, err := p.facade.FailedOrders(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch orders for republish failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- order:
		}
	}
}

func (p *Republisher) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleOrder(ctx, order)
		}
	}
}

func (p *Republisher) handleOrder(ctx context.Context, order model.Order) {
	if err := p.facade.RepublishOrder(ctx, order); err != nil {
		if errors.Is(err, domainErrors.ErrPublishFailure) {
			// Broker still unavailable; the row stays FAILED_TO_PUBLISH and a
			// later sweep picks it up again.
			p.logger.Warn("order republish deferred",
				slog.String("order_id", order.ID),
				slog.String("error", err.Error()))
			return
		}
		p.logger.Error("order republish failed",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()))
		return
	}
	p.logger.Info("order event republished", slog.String("order_id", order.ID))
}
