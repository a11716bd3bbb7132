package models

import (
	"errors"
	"testing"

	"github.com/ghuser/procurement/services/procurement/domain"
)

func TestNewUplID_Valid(t *testing.T) {
	tests := []string{
		"18",
		"26",
		"79927398713",
		"490154203237518",
		"4242424242424242",
	}

	for _, id := range tests {
		t.Run(id, func(t *testing.T) {
			got, err := NewUplID(id)
			if err != nil {
				t.Fatalf("expected %q to be valid, got %v", id, err)
			}
			if got.String() != id {
				t.Fatalf("expected %q, got %q", id, got)
			}
		})
	}
}

func TestNewUplID_Invalid(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"single digit", "7"},
		{"wrong check digit", "79927398710"},
		{"off by one", "19"},
		{"letter in payload", "7992a398713"},
		{"letter as check digit", "7992739871x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUplID(tt.id)
			if err == nil {
				t.Fatalf("expected %q to be rejected", tt.id)
			}
			if !errors.Is(err, domain.ErrInvalidChecksum) {
				t.Fatalf("expected ErrInvalidChecksum, got %v", err)
			}
		})
	}
}
