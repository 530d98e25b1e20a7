package broker

import "fmt"

// ConnectError reports a failed attempt to establish the producer connection.
type ConnectError struct {
	Err error
}

func (e *ConnectError) Error() string { return fmt.Sprintf("broker connect: %v", e.Err) }

func (e *ConnectError) Unwrap() error { return e.Err }

// SendError reports a transport failure while sending a message over an
// established connection.
type SendError struct {
	Err error
}

func (e *SendError) Error() string { return fmt.Sprintf("broker send: %v", e.Err) }

func (e *SendError) Unwrap() error { return e.Err }

// PublishError wraps the fault underlying a failed publish, either a
// *ConnectError or a *SendError.
type PublishError struct {
	Err error
}

func (e *PublishError) Error() string { return fmt.Sprintf("publish: %v", e.Err) }

func (e *PublishError) Unwrap() error { return e.Err }
