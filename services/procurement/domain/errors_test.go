package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors_WrappedIdentity(t *testing.T) {
	wrapped := fmt.Errorf("close procurement 7: %w", ErrIDConflict)
	if !errors.Is(wrapped, ErrIDConflict) {
		t.Fatal("errors.Is must match wrapped ErrIDConflict")
	}

	wrapped2 := fmt.Errorf("%w: %w", ErrInternal, errors.New("connection refused"))
	if !errors.Is(wrapped2, ErrInternal) {
		t.Fatal("errors.Is must match double-wrapped ErrInternal")
	}
}

func TestIsValidation(t *testing.T) {
	validation := []error{
		ErrNotFound,
		ErrDuplicateKey,
		ErrInvalidChecksum,
		ErrInvalidTransition,
		ErrIncompleteUpls,
		ErrInvalidState,
		ErrIDConflict,
		ErrUnknownSku,
		ErrMissingPrice,
		ErrMissingExpiry,
		ErrQuantityMismatch,
	}
	for _, err := range validation {
		if !IsValidation(err) {
			t.Errorf("%v must be a validation error", err)
		}
		if !IsValidation(fmt.Errorf("context: %w", err)) {
			t.Errorf("wrapped %v must be a validation error", err)
		}
	}

	if IsValidation(ErrInternal) {
		t.Error("ErrInternal must not be a validation error")
	}
	if IsValidation(errors.New("anything else")) {
		t.Error("arbitrary errors must not be validation errors")
	}
	if IsValidation(nil) {
		t.Error("nil must not be a validation error")
	}
}
