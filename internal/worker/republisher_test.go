package worker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/checkout/internal/domain/errors"
	"github.com/polkiloo/checkout/internal/domain/model"
	testhelpers "github.com/polkiloo/checkout/internal/test"
)

func TestNewRepublisherDefaults(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	proc := NewRepublisher(&testhelpers.WorkerFacadeStub{}, time.Second, 0, 0, logger)
	if proc.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", proc.batchSize)
	}
	if proc.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", proc.workers)
	}
}

func TestRepublisherProcessesOrders(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.Order{{{ID: "order-1", UserID: "u1", Status: model.OrderStatusFailedToPublish}}},
	}
	proc := NewRepublisher(facade, 10*time.Millisecond, 1, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		processed := len(facade.Republished) > 0
		facade.Unlock()
		if processed {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for republish")
		case <-time.After(10 * time.Millisecond):
		}
	}

	proc.Stop()
	facade.Lock()
	defer facade.Unlock()
	if len(facade.Republished) == 0 {
		t.Fatalf("expected republish call")
	}
	if facade.Republished[0].Order.ID != "order-1" {
		t.Fatalf("unexpected order %+v", facade.Republished[0].Order)
	}
}

func TestRepublisherRetriesAfterPublishFailure(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	attempts := int32(0)
	done := make(chan struct{})
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.Order{
			{{ID: "order-1", UserID: "u1"}},
			{{ID: "order-1", UserID: "u1"}},
		},
		RepublishFn: func(ctx context.Context, order model.Order) error {
			if atomic.AddInt32(&attempts, 1) == 1 {
				return fmt.Errorf("%w: broker down", domainErrors.ErrPublishFailure)
			}
			select {
			case done <- struct{}{}:
			default:
			}
			return nil
		},
	}

	proc := NewRepublisher(facade, 5*time.Millisecond, 1, 1, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.Start(ctx)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for retry")
	}
	proc.Stop()
}

func TestRepublisherStopBeforeStart(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	proc := NewRepublisher(&testhelpers.WorkerFacadeStub{}, time.Second, 1, 1, logger)
	proc.Stop()
}
