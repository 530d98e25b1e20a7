package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"not found", ErrNotFound},
		{"invalid request", ErrInvalidRequest},
		{"pricing failure", ErrPricingFailure},
		{"persistence failure", ErrPersistenceFailure},
		{"publish failure", ErrPublishFailure},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}

func TestSentinelErrorsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("%w: no valid total", ErrInvalidRequest)
	if !stdErrors.Is(wrapped, ErrInvalidRequest) {
		t.Fatalf("expected wrapped error to match sentinel")
	}
	if stdErrors.Is(wrapped, ErrPublishFailure) {
		t.Fatalf("did not expect wrapped error to match unrelated sentinel")
	}
}
