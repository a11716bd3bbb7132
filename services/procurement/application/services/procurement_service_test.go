package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ghuser/procurement/services/procurement/domain"
	"github.com/ghuser/procurement/services/procurement/domain/models"
	"github.com/ghuser/procurement/services/procurement/infrastructure/persistence/memory"
)

func newProcurementService(t *testing.T, seed ...*models.Procurement) *ProcurementService {
	t.Helper()
	repo, err := memory.New(context.Background(), &nullStore{seed: seed})
	if err != nil {
		t.Fatal(err)
	}
	return NewProcurementService(repo, nil, newTestLogger())
}

func TestProcurementService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := newProcurementService(t)

	created, err := svc.Create(ctx, 10, 42)
	if err != nil {
		t.Fatal(err)
	}
	if created.ID != 1 || created.Status != models.StatusNew {
		t.Fatalf("unexpected new procurement: %+v", created)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.SourceID != 10 || got.CreatedBy != 42 {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}

func TestProcurementService_List(t *testing.T) {
	ctx := context.Background()
	svc := newProcurementService(t)
	for range 3 {
		if _, err := svc.Create(ctx, 10, 42); err != nil {
			t.Fatal(err)
		}
	}

	summaries, err := svc.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(summaries))
	}
	for i, s := range summaries {
		if s.ID != uint32(i+1) {
			t.Fatalf("expected ascending ids, got %+v", summaries)
		}
	}
}

func TestProcurementService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := newProcurementService(t)
	p, err := svc.Create(ctx, 10, 42)
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(ctx, p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProcurementService_ItemLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newProcurementService(t)
	p, err := svc.Create(ctx, 10, 42)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.AddItem(ctx, p.ID, 100, 5, 250); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateItemAmount(ctx, p.ID, 100, 8); err != nil {
		t.Fatal(err)
	}
	snap, err := svc.UpdateItemPrice(ctx, p.ID, 100, 199)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Items[0].OrderedAmount != 8 || snap.Items[0].ExpectedNetPrice != 199 {
		t.Fatalf("unexpected item state: %+v", snap.Items[0])
	}

	if _, err := svc.RemoveItem(ctx, p.ID, 100); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RemoveItem(ctx, p.ID, 100); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProcurementService_UplCandidateLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newProcurementService(t)
	p, err := svc.Create(ctx, 10, 42)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.AddUplCandidate(ctx, p.ID, "79927398713", 100, 4, false, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddUplCandidate(ctx, p.ID, "79927398710", 100, 4, false, nil); !errors.Is(err, domain.ErrInvalidChecksum) {
		t.Fatalf("expected ErrInvalidChecksum, got %v", err)
	}

	bb := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
	snap, err := svc.UpdateUplCandidate(ctx, p.ID, "79927398713", 200, 6, &bb)
	if err != nil {
		t.Fatal(err)
	}
	if snap.UplCandidates[0].Sku != 200 || snap.UplCandidates[0].UplPiece != 6 {
		t.Fatalf("unexpected candidate state: %+v", snap.UplCandidates[0])
	}

	if _, err := svc.RemoveUplCandidate(ctx, p.ID, "79927398713"); err != nil {
		t.Fatal(err)
	}
}

func TestProcurementService_SetStatus(t *testing.T) {
	ctx := context.Background()
	svc := newProcurementService(t)
	p, err := svc.Create(ctx, 10, 42)
	if err != nil {
		t.Fatal(err)
	}

	// Not orderable yet: no delivery date, no items.
	if _, err := svc.SetStatus(ctx, p.ID, models.StatusOrdered, 42); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	d := time.Now().UTC().Add(72 * time.Hour)
	if _, err := svc.SetDeliveryDate(ctx, p.ID, &d); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddItem(ctx, p.ID, 100, 5, 250); err != nil {
		t.Fatal(err)
	}

	snap, err := svc.SetStatus(ctx, p.ID, models.StatusOrdered, 42)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Status != models.StatusOrdered {
		t.Fatalf("expected ordered, got %s", snap.Status)
	}

	// Ordered procurements are part of the audit trail.
	if err := svc.Delete(ctx, p.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestProcurementService_SetReference(t *testing.T) {
	ctx := context.Background()
	svc := newProcurementService(t)
	p, err := svc.Create(ctx, 10, 42)
	if err != nil {
		t.Fatal(err)
	}

	snap, err := svc.SetReference(ctx, p.ID, "PO-2026-0912")
	if err != nil {
		t.Fatal(err)
	}
	if snap.Reference != "PO-2026-0912" {
		t.Fatalf("unexpected reference %q", snap.Reference)
	}
}
