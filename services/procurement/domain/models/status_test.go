package models

import (
	"errors"
	"testing"
	"time"

	"github.com/ghuser/procurement/services/procurement/domain"
)

var allStatuses = []Status{StatusNew, StatusOrdered, StatusArrived, StatusProcessing, StatusClosed}

func TestParseStatus(t *testing.T) {
	for _, s := range allStatuses {
		t.Run(string(s), func(t *testing.T) {
			got, err := ParseStatus(string(s))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != s {
				t.Fatalf("expected %s, got %s", s, got)
			}
		})
	}

	t.Run("unknown", func(t *testing.T) {
		if _, err := ParseStatus("cancelled"); err == nil {
			t.Fatal("expected error for unknown status")
		}
	})
}

// TestSetStatus_AllPairs walks every (from, to) pair of the state machine and
// asserts exactly the documented edges are allowed. The aggregate is prepared
// so that every guard would pass, isolating the edge table itself.
func TestSetStatus_AllPairs(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusNew, StatusOrdered}:        true,
		{StatusOrdered, StatusArrived}:    true,
		{StatusOrdered, StatusProcessing}: true,
		{StatusArrived, StatusProcessing}: true,
		{StatusProcessing, StatusClosed}:  true,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			t.Run(string(from)+"_to_"+string(to), func(t *testing.T) {
				p := coveredProcurement(t)
				p.Status = from

				err := p.SetStatus(to, 42)
				if allowed[[2]Status{from, to}] {
					if err != nil {
						t.Fatalf("expected %s -> %s to succeed, got %v", from, to, err)
					}
					if p.Status != to {
						t.Fatalf("status not updated, still %s", p.Status)
					}
					return
				}
				if !errors.Is(err, domain.ErrInvalidTransition) {
					t.Fatalf("expected ErrInvalidTransition for %s -> %s, got %v", from, to, err)
				}
				if p.Status != from {
					t.Fatalf("failed transition must not change status, got %s", p.Status)
				}
			})
		}
	}
}

func TestSetStatus_OrderedGuard(t *testing.T) {
	t.Run("no delivery date", func(t *testing.T) {
		p := NewProcurement(1, 10, 42)
		if err := p.AddItem(100, 5, 250); err != nil {
			t.Fatal(err)
		}
		err := p.SetStatus(StatusOrdered, 42)
		if !errors.Is(err, domain.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("no items", func(t *testing.T) {
		p := NewProcurement(1, 10, 42)
		d := time.Now().UTC().Add(48 * time.Hour)
		p.SetDeliveryDate(&d)
		err := p.SetStatus(StatusOrdered, 42)
		if !errors.Is(err, domain.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})
}

func TestSetStatus_ClosedGuard(t *testing.T) {
	t.Run("under-covered", func(t *testing.T) {
		p := coveredProcurement(t)
		p.Status = StatusProcessing
		if err := p.UpdateItemAmount(100, 99); err != nil {
			t.Fatal(err)
		}

		err := p.SetStatus(StatusClosed, 42)
		if !errors.Is(err, domain.ErrIncompleteUpls) {
			t.Fatalf("expected ErrIncompleteUpls, got %v", err)
		}
		if p.Status != StatusProcessing {
			t.Fatalf("failed close must not change status, got %s", p.Status)
		}
	})

	t.Run("over-covered", func(t *testing.T) {
		p := coveredProcurement(t)
		p.Status = StatusProcessing
		if err := p.UpdateItemAmount(100, 1); err != nil {
			t.Fatal(err)
		}

		err := p.SetStatus(StatusClosed, 42)
		if !errors.Is(err, domain.ErrIncompleteUpls) {
			t.Fatalf("expected ErrIncompleteUpls, got %v", err)
		}
	})

	t.Run("exactly covered", func(t *testing.T) {
		p := coveredProcurement(t)
		p.Status = StatusProcessing
		if err := p.SetStatus(StatusClosed, 42); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Status != StatusClosed {
			t.Fatalf("expected closed, got %s", p.Status)
		}
	})
}

// coveredProcurement builds an aggregate with a delivery date, one item of
// five units and candidates that cover it exactly: one sealed 4-piece
// unit-load plus one opened unit counting as a single unit.
func coveredProcurement(t *testing.T) *Procurement {
	t.Helper()

	p := NewProcurement(1, 10, 42)
	d := time.Now().UTC().Add(48 * time.Hour)
	p.SetDeliveryDate(&d)
	if err := p.AddItem(100, 5, 250); err != nil {
		t.Fatal(err)
	}
	if err := p.AddUplCandidate("79927398713", 100, 4, false, nil); err != nil {
		t.Fatal(err)
	}
	if err := p.AddUplCandidate("4242424242424242", 100, 12, true, nil); err != nil {
		t.Fatal(err)
	}
	return p
}
