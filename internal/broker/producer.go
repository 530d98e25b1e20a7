package broker

import (
	"context"
	"log/slog"
	"sync"
)

// State enumerates producer connection lifecycle states.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateReady
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	default:
		return "disconnected"
	}
}

// Handle is a ready-to-use broker connection shared by all concurrent callers.
type Handle interface {
	Send(ctx context.Context, topic string, key, value []byte) error
	Close() error
}

// Transport establishes broker connections.
type Transport interface {
	Connect(ctx context.Context) (Handle, error)
}

// Producer owns the single outbound broker connection. Acquire hands the shared
// handle to concurrent callers while guaranteeing that at most one connect
// attempt is in flight; every waiter observes that attempt's outcome and then
// re-evaluates the state.
type Producer struct {
	transport Transport
	logger    *slog.Logger

	mu      sync.Mutex
	state   State
	handle  Handle
	attempt chan struct{} // closed when the in-flight connect attempt resolves
}

// NewProducer constructs the lifecycle manager in Disconnected state. The
// connection is established lazily by the first Acquire.
func NewProducer(transport Transport, logger *slog.Logger) *Producer {
	return &Producer{transport: transport, logger: logger}
}

// State reports the current lifecycle state.
func (p *Producer) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Acquire returns the shared ready handle, establishing the connection when
// needed. Callers arriving while another connect attempt is in flight suspend
// until it resolves. Connection failures surface as *ConnectError; there is no
// retry inside the call, the next unit of work simply acquires again.
func (p *Producer) Acquire(ctx context.Context) (Handle, error) {
	for {
		p.mu.Lock()
		switch p.state {
		case StateReady:
			handle := p.handle
			p.mu.Unlock()
			return handle, nil

		case StateConnecting:
			resolved := p.attempt
			p.mu.Unlock()
			select {
			case <-resolved:
			case <-ctx.Done():
				return nil, &ConnectError{Err: ctx.Err()}
			}

		default: // StateDisconnected: this caller owns the connect attempt
			resolved := make(chan struct{})
			p.state = StateConnecting
			p.attempt = resolved
			p.mu.Unlock()
			return p.connect(ctx, resolved)
		}
	}
}

func (p *Producer) connect(ctx context.Context, resolved chan struct{}) (Handle, error) {
	p.logger.Info("connecting broker producer")
	handle, err := p.transport.Connect(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	defer close(resolved)
	p.attempt = nil

	if err != nil {
		p.state = StateDisconnected
		p.logger.Error("broker producer connect failed", slog.String("error", err.Error()))
		return nil, &ConnectError{Err: err}
	}

	p.state = StateReady
	p.handle = handle
	p.logger.Info("broker producer connected")
	return handle, nil
}

// Invalidate handles a disconnect notification: the stored handle is discarded
// and the next Acquire re-establishes the connection. Handles from older
// incarnations are ignored so a slow caller cannot tear down a fresh connection.
func (p *Producer) Invalidate(handle Handle) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateReady {
		return
	}
	if handle != nil && handle != p.handle {
		return
	}

	p.handle = nil
	p.state = StateDisconnected
	p.logger.Warn("broker producer disconnected")
}

// Release closes the connection for graceful shutdown. Idempotent when already
// disconnected; an in-flight connect attempt is waited out so its handle does
// not leak.
func (p *Producer) Release(ctx context.Context) error {
	for {
		p.mu.Lock()
		switch p.state {
		case StateDisconnected:
			p.mu.Unlock()
			return nil

		case StateConnecting:
			resolved := p.attempt
			p.mu.Unlock()
			select {
			case <-resolved:
			case <-ctx.Done():
				return ctx.Err()
			}

		default: // StateReady
			handle := p.handle
			p.handle = nil
			p.state = StateDisconnected
			p.mu.Unlock()

			if err := handle.Close(); err != nil {
				p.logger.Error("broker producer close failed", slog.String("error", err.Error()))
				return err
			}
			p.logger.Info("broker producer released")
			return nil
		}
	}
}
