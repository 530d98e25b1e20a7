package errors

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrPricingFailure     = errors.New("pricing failure")
	ErrPersistenceFailure = errors.New("persistence failure")
	ErrPublishFailure     = errors.New("publish failure")
)
