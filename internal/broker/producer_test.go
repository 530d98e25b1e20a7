package broker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type stubHandle struct {
	sendFn func(ctx context.Context, topic string, key, value []byte) error
	closed int32
}

func (h *stubHandle) Send(ctx context.Context, topic string, key, value []byte) error {
	if h.sendFn != nil {
		return h.sendFn(ctx, topic, key, value)
	}
	return nil
}

func (h *stubHandle) Close() error {
	atomic.AddInt32(&h.closed, 1)
	return nil
}

type stubTransport struct {
	connectFn func(ctx context.Context) (Handle, error)
	connects  int32
}

func (t *stubTransport) Connect(ctx context.Context) (Handle, error) {
	atomic.AddInt32(&t.connects, 1)
	if t.connectFn != nil {
		return t.connectFn(ctx)
	}
	return &stubHandle{}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestAcquireConnectsOnce(t *testing.T) {
	transport := &stubTransport{}
	producer := NewProducer(transport, discardLogger())

	first, err := producer.Acquire(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := producer.Acquire(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Fatal("expected the shared handle to be reused")
	}
	if got := atomic.LoadInt32(&transport.connects); got != 1 {
		t.Fatalf("expected a single connect attempt, got %d", got)
	}
	if producer.State() != StateReady {
		t.Fatalf("expected ready state, got %v", producer.State())
	}
}

func TestAcquireConcurrentCallersShareOneAttempt(t *testing.T) {
	gate := make(chan struct{})
	handle := &stubHandle{}
	transport := &stubTransport{connectFn: func(ctx context.Context) (Handle, error) {
		<-gate
		return handle, nil
	}}
	producer := NewProducer(transport, discardLogger())

	const callers = 16
	var wg sync.WaitGroup
	results := make(chan Handle, callers)
	errs := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := producer.Acquire(context.Background())
			if err != nil {
				errs <- err
				return
			}
			results <- h
		}()
	}

	// Let all callers pile up on the single in-flight attempt, then resolve it.
	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		t.Fatalf("unexpected error: %v", err)
	}
	count := 0
	for h := range results {
		count++
		if h != handle {
			t.Fatal("expected every caller to receive the shared handle")
		}
	}
	if count != callers {
		t.Fatalf("expected %d handles, got %d", callers, count)
	}
	if got := atomic.LoadInt32(&transport.connects); got != 1 {
		t.Fatalf("expected exactly one connect attempt, got %d", got)
	}
}

func TestAcquireConnectFailurePropagatesAndAllowsRetry(t *testing.T) {
	dialErr := errors.New("broker unreachable")
	failing := int32(1)
	transport := &stubTransport{connectFn: func(ctx context.Context) (Handle, error) {
		if atomic.LoadInt32(&failing) == 1 {
			return nil, dialErr
		}
		return &stubHandle{}, nil
	}}
	producer := NewProducer(transport, discardLogger())

	_, err := producer.Acquire(context.Background())
	var connectErr *ConnectError
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected ConnectError, got %v", err)
	}
	if !errors.Is(err, dialErr) {
		t.Fatalf("expected underlying dial error to be wrapped, got %v", err)
	}
	if producer.State() != StateDisconnected {
		t.Fatalf("expected disconnected state after failure, got %v", producer.State())
	}

	// No retry inside the call: the next acquisition dials again.
	atomic.StoreInt32(&failing, 0)
	if _, err := producer.Acquire(context.Background()); err != nil {
		t.Fatalf("expected retry on next acquire to succeed, got %v", err)
	}
	if got := atomic.LoadInt32(&transport.connects); got != 2 {
		t.Fatalf("expected two connect attempts, got %d", got)
	}
}

func TestAcquireWaiterObservesFailedAttempt(t *testing.T) {
	gate := make(chan struct{})
	dialErr := errors.New("dial timeout")
	transport := &stubTransport{connectFn: func(ctx context.Context) (Handle, error) {
		<-gate
		return nil, dialErr
	}}
	producer := NewProducer(transport, discardLogger())

	ownerErr := make(chan error, 1)
	go func() {
		_, err := producer.Acquire(context.Background())
		ownerErr <- err
	}()

	waitForState(t, producer, StateConnecting)

	waiterErr := make(chan error, 1)
	go func() {
		_, err := producer.Acquire(context.Background())
		waiterErr <- err
	}()

	time.Sleep(20 * time.Millisecond)
	close(gate)

	if err := <-ownerErr; !errors.Is(err, dialErr) {
		t.Fatalf("expected owner to see dial error, got %v", err)
	}
	// The waiter re-evaluates after the failed attempt and runs its own dial,
	// which fails against the same closed gate transport.
	if err := <-waiterErr; !errors.Is(err, dialErr) {
		t.Fatalf("expected waiter to observe a connect failure, got %v", err)
	}
	if got := atomic.LoadInt32(&transport.connects); got != 2 {
		t.Fatalf("expected waiter to start its own attempt after failure, got %d attempts", got)
	}
}

func TestAcquireWaiterHonorsContext(t *testing.T) {
	gate := make(chan struct{})
	defer close(gate)
	transport := &stubTransport{connectFn: func(ctx context.Context) (Handle, error) {
		<-gate
		return &stubHandle{}, nil
	}}
	producer := NewProducer(transport, discardLogger())

	go func() {
		_, _ = producer.Acquire(context.Background())
	}()
	waitForState(t, producer, StateConnecting)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := producer.Acquire(ctx)
	var connectErr *ConnectError
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected ConnectError for cancelled waiter, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation cause, got %v", err)
	}
}

func TestInvalidateForcesReconnect(t *testing.T) {
	transport := &stubTransport{}
	producer := NewProducer(transport, discardLogger())

	handle, err := producer.Acquire(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	producer.Invalidate(handle)
	if producer.State() != StateDisconnected {
		t.Fatalf("expected disconnected after invalidate, got %v", producer.State())
	}

	fresh, err := producer.Acquire(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fresh == handle {
		t.Fatal("expected a fresh handle after disconnect notification")
	}
	if got := atomic.LoadInt32(&transport.connects); got != 2 {
		t.Fatalf("expected reconnect after invalidate, got %d attempts", got)
	}
}

func TestInvalidateIgnoresStaleHandle(t *testing.T) {
	transport := &stubTransport{}
	producer := NewProducer(transport, discardLogger())

	old, err := producer.Acquire(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	producer.Invalidate(old)

	current, err := producer.Acquire(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A caller still holding the old handle must not tear down the new one.
	producer.Invalidate(old)
	if producer.State() != StateReady {
		t.Fatalf("expected ready state, got %v", producer.State())
	}

	again, err := producer.Acquire(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != current {
		t.Fatal("expected the current handle to survive a stale invalidation")
	}
}

func TestReleaseClosesHandleAndIsIdempotent(t *testing.T) {
	handle := &stubHandle{}
	transport := &stubTransport{connectFn: func(ctx context.Context) (Handle, error) {
		return handle, nil
	}}
	producer := NewProducer(transport, discardLogger())

	if _, err := producer.Acquire(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := producer.Release(context.Background()); err != nil {
		t.Fatalf("unexpected release error: %v", err)
	}
	if got := atomic.LoadInt32(&handle.closed); got != 1 {
		t.Fatalf("expected handle to be closed once, got %d", got)
	}
	if producer.State() != StateDisconnected {
		t.Fatalf("expected disconnected after release, got %v", producer.State())
	}

	if err := producer.Release(context.Background()); err != nil {
		t.Fatalf("expected idempotent release, got %v", err)
	}
	if got := atomic.LoadInt32(&handle.closed); got != 1 {
		t.Fatalf("expected no second close, got %d", got)
	}
}

func waitForState(t *testing.T, producer *Producer, want State) {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		if producer.State() == want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timeout waiting for state %v", want)
		case <-time.After(time.Millisecond):
		}
	}
}
