package models

import (
	"errors"
	"testing"
	"time"

	"github.com/ghuser/procurement/services/procurement/domain"
)

func TestAddItem(t *testing.T) {
	t.Run("appends a new sku line", func(t *testing.T) {
		p := NewProcurement(1, 10, 42)
		if err := p.AddItem(100, 5, 250); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(p.Items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(p.Items))
		}
		got := p.Items[0]
		if got.Sku != 100 || got.OrderedAmount != 5 || got.ExpectedNetPrice != 250 {
			t.Fatalf("unexpected item: %+v", got)
		}
	})

	t.Run("rejects a duplicate sku", func(t *testing.T) {
		p := NewProcurement(1, 10, 42)
		if err := p.AddItem(100, 5, 250); err != nil {
			t.Fatal(err)
		}
		err := p.AddItem(100, 9, 300)
		if !errors.Is(err, domain.ErrDuplicateKey) {
			t.Fatalf("expected ErrDuplicateKey, got %v", err)
		}
		if len(p.Items) != 1 || p.Items[0].OrderedAmount != 5 {
			t.Fatalf("duplicate add must not change existing line: %+v", p.Items)
		}
	})
}

func TestUpdateItem(t *testing.T) {
	p := NewProcurement(1, 10, 42)
	if err := p.AddItem(100, 5, 250); err != nil {
		t.Fatal(err)
	}

	t.Run("amount", func(t *testing.T) {
		if err := p.UpdateItemAmount(100, 8); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Items[0].OrderedAmount != 8 {
			t.Fatalf("expected amount 8, got %d", p.Items[0].OrderedAmount)
		}
	})

	t.Run("price", func(t *testing.T) {
		if err := p.UpdateItemPrice(100, 199); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Items[0].ExpectedNetPrice != 199 {
			t.Fatalf("expected price 199, got %d", p.Items[0].ExpectedNetPrice)
		}
	})

	t.Run("unknown sku", func(t *testing.T) {
		if err := p.UpdateItemAmount(999, 1); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if err := p.UpdateItemPrice(999, 1); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestRemoveItem(t *testing.T) {
	p := NewProcurement(1, 10, 42)
	if err := p.AddItem(100, 5, 250); err != nil {
		t.Fatal(err)
	}
	if err := p.AddItem(200, 3, 120); err != nil {
		t.Fatal(err)
	}

	if err := p.RemoveItem(100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Items) != 1 || p.Items[0].Sku != 200 {
		t.Fatalf("unexpected items after removal: %+v", p.Items)
	}

	if err := p.RemoveItem(100); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddUplCandidate(t *testing.T) {
	t.Run("appends a valid candidate", func(t *testing.T) {
		p := NewProcurement(1, 10, 42)
		bb := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
		if err := p.AddUplCandidate("79927398713", 100, 4, false, &bb); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(p.UplCandidates) != 1 {
			t.Fatalf("expected 1 candidate, got %d", len(p.UplCandidates))
		}
		c := p.UplCandidates[0]
		if c.UplID != "79927398713" || c.Sku != 100 || c.UplPiece != 4 || c.OpenedSku {
			t.Fatalf("unexpected candidate: %+v", c)
		}
		if c.BestBefore == nil || !c.BestBefore.Equal(bb) {
			t.Fatalf("unexpected best-before: %v", c.BestBefore)
		}
	})

	t.Run("rejects a bad check digit", func(t *testing.T) {
		p := NewProcurement(1, 10, 42)
		err := p.AddUplCandidate("79927398710", 100, 4, false, nil)
		if !errors.Is(err, domain.ErrInvalidChecksum) {
			t.Fatalf("expected ErrInvalidChecksum, got %v", err)
		}
		if len(p.UplCandidates) != 0 {
			t.Fatal("invalid candidate must not be appended")
		}
	})

	t.Run("rejects a duplicate id", func(t *testing.T) {
		p := NewProcurement(1, 10, 42)
		if err := p.AddUplCandidate("79927398713", 100, 4, false, nil); err != nil {
			t.Fatal(err)
		}
		err := p.AddUplCandidate("79927398713", 200, 1, true, nil)
		if !errors.Is(err, domain.ErrDuplicateKey) {
			t.Fatalf("expected ErrDuplicateKey, got %v", err)
		}
	})
}

func TestUpdateUplCandidate(t *testing.T) {
	p := NewProcurement(1, 10, 42)
	if err := p.AddUplCandidate("79927398713", 100, 4, false, nil); err != nil {
		t.Fatal(err)
	}

	bb := time.Date(2027, 6, 15, 0, 0, 0, 0, time.UTC)
	if err := p.UpdateUplCandidate("79927398713", 200, 6, &bb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := p.UplCandidates[0]
	if c.Sku != 200 || c.UplPiece != 6 || c.BestBefore == nil || !c.BestBefore.Equal(bb) {
		t.Fatalf("update not applied atomically: %+v", c)
	}

	if err := p.UpdateUplCandidate("18", 1, 1, nil); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveUplCandidate(t *testing.T) {
	p := NewProcurement(1, 10, 42)
	if err := p.AddUplCandidate("79927398713", 100, 4, false, nil); err != nil {
		t.Fatal(err)
	}

	if err := p.RemoveUplCandidate("79927398713"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.UplCandidates) != 0 {
		t.Fatalf("expected no candidates, got %d", len(p.UplCandidates))
	}

	if err := p.RemoveUplCandidate("79927398713"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCoveredAmount(t *testing.T) {
	p := NewProcurement(1, 10, 42)
	if err := p.AddUplCandidate("79927398713", 100, 4, false, nil); err != nil {
		t.Fatal(err)
	}
	// Opened candidate counts as one unit no matter its piece count.
	if err := p.AddUplCandidate("4242424242424242", 100, 12, true, nil); err != nil {
		t.Fatal(err)
	}
	if err := p.AddUplCandidate("490154203237518", 200, 7, false, nil); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		sku  uint32
		want uint32
	}{
		{100, 5},
		{200, 7},
		{999, 0},
	}
	for _, tt := range tests {
		if got := p.CoveredAmount(tt.sku); got != tt.want {
			t.Errorf("CoveredAmount(%d) = %d, want %d", tt.sku, got, tt.want)
		}
	}
}

func TestCandidatesForSku(t *testing.T) {
	p := NewProcurement(1, 10, 42)
	if err := p.AddUplCandidate("79927398713", 100, 4, false, nil); err != nil {
		t.Fatal(err)
	}
	if err := p.AddUplCandidate("490154203237518", 200, 7, false, nil); err != nil {
		t.Fatal(err)
	}
	if err := p.AddUplCandidate("4242424242424242", 100, 1, true, nil); err != nil {
		t.Fatal(err)
	}

	got := p.CandidatesForSku(100)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].UplID != "79927398713" || got[1].UplID != "4242424242424242" {
		t.Fatalf("candidates out of order: %+v", got)
	}
	if p.CandidatesForSku(999) != nil {
		t.Fatal("expected nil for unknown sku")
	}
}

func TestClone(t *testing.T) {
	p := NewProcurement(1, 10, 42)
	d := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	p.SetDeliveryDate(&d)
	if err := p.AddItem(100, 5, 250); err != nil {
		t.Fatal(err)
	}
	bb := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
	if err := p.AddUplCandidate("79927398713", 100, 4, false, &bb); err != nil {
		t.Fatal(err)
	}

	cp := p.Clone()

	// Mutate the clone; the original must not move.
	cp.Items[0].OrderedAmount = 99
	*cp.UplCandidates[0].BestBefore = bb.AddDate(1, 0, 0)
	*cp.EstimatedDeliveryDate = d.AddDate(0, 1, 0)

	if p.Items[0].OrderedAmount != 5 {
		t.Fatal("clone shares the items slice")
	}
	if !p.UplCandidates[0].BestBefore.Equal(bb) {
		t.Fatal("clone shares a best-before pointer")
	}
	if !p.EstimatedDeliveryDate.Equal(d) {
		t.Fatal("clone shares the delivery date pointer")
	}
}

func TestSummarize(t *testing.T) {
	p := NewProcurement(7, 10, 42)
	if err := p.AddItem(100, 5, 250); err != nil {
		t.Fatal(err)
	}
	if err := p.AddItem(200, 3, 120); err != nil {
		t.Fatal(err)
	}
	if err := p.AddUplCandidate("79927398713", 100, 4, false, nil); err != nil {
		t.Fatal(err)
	}
	if err := p.AddUplCandidate("4242424242424242", 100, 12, true, nil); err != nil {
		t.Fatal(err)
	}

	s := p.Summarize()
	if s.ID != 7 || s.SourceID != 10 || s.CreatedBy != 42 {
		t.Fatalf("unexpected identity fields: %+v", s)
	}
	if s.SkuCount != 2 {
		t.Fatalf("expected 2 skus, got %d", s.SkuCount)
	}
	if s.SkuPieceCount != 8 {
		t.Fatalf("expected 8 ordered units, got %d", s.SkuPieceCount)
	}
	if s.UplCount != 5 {
		t.Fatalf("expected 5 covered units, got %d", s.UplCount)
	}
	if s.Status != StatusNew {
		t.Fatalf("expected status new, got %s", s.Status)
	}
}
