package models

import (
	"fmt"
	"time"

	procdomain "github.com/ghuser/procurement/services/procurement/domain"
)

// Procurement is the aggregate root for one procurement order. It tracks the
// ordered stock-keeping units, the unit-load candidates expected to satisfy
// them, and the order's progress through the status workflow.
//
// Invariant: Items is unique by Sku and UplCandidates is unique by UplID.
// Every mutating operation preserves both; no operation leaves the aggregate
// in a transiently invalid state.
//
// The aggregate is owned by its repository. Callers outside a mutation
// callback only ever see deep copies (see Clone).
type Procurement struct {
	ID                    uint32            `json:"id"`
	SourceID              uint32            `json:"source_id"`
	Reference             string            `json:"reference"`
	EstimatedDeliveryDate *time.Time        `json:"estimated_delivery_date,omitempty"`
	Items                 []ProcurementItem `json:"items"`
	UplCandidates         []UplCandidate    `json:"upl_candidates"`
	Status                Status            `json:"status"`
	CreatedAt             time.Time         `json:"created_at"`
	CreatedBy             uint32            `json:"created_by"`
}

// ProcurementItem is one ordered sku line. Sku is immutable after creation;
// amount and price are updated in place. Prices are minor currency units.
type ProcurementItem struct {
	Sku              uint32 `json:"sku"`
	OrderedAmount    uint32 `json:"ordered_amount"`
	ExpectedNetPrice uint32 `json:"expected_net_price"`
}

// UplCandidate is a provisional, not-yet-materialized unit-load proposed by
// the order. OpenedSku marks an already-opened, divisible unit: it covers one
// ordered unit regardless of its piece count, while a sealed candidate covers
// UplPiece units.
type UplCandidate struct {
	UplID      UplID      `json:"upl_id"`
	Sku        uint32     `json:"sku"`
	UplPiece   uint32     `json:"upl_piece"`
	OpenedSku  bool       `json:"opened_sku"`
	BestBefore *time.Time `json:"best_before,omitempty"`
}

// NewProcurement returns a fresh aggregate in status New with no items or
// candidates. The id is assigned by the repository, never by the caller.
func NewProcurement(id, sourceID, createdBy uint32) *Procurement {
	return &Procurement{
		ID:            id,
		SourceID:      sourceID,
		Reference:     "",
		Items:         []ProcurementItem{},
		UplCandidates: []UplCandidate{},
		Status:        StatusNew,
		CreatedAt:     time.Now().UTC(),
		CreatedBy:     createdBy,
	}
}

// SetReference replaces the free-text reference. Allowed in any status.
func (p *Procurement) SetReference(reference string) {
	p.Reference = reference
}

// SetDeliveryDate replaces the estimated delivery date. A nil date means the
// delivery date is unknown. Allowed in any status.
func (p *Procurement) SetDeliveryDate(date *time.Time) {
	p.EstimatedDeliveryDate = date
}

// AddItem appends a new sku line. Fails if the sku is already ordered.
func (p *Procurement) AddItem(sku, amount, netPrice uint32) error {
	if p.findItem(sku) != nil {
		return fmt.Errorf("%w: sku %d is already on the order", procdomain.ErrDuplicateKey, sku)
	}
	p.Items = append(p.Items, ProcurementItem{
		Sku:              sku,
		OrderedAmount:    amount,
		ExpectedNetPrice: netPrice,
	})
	return nil
}

// UpdateItemAmount changes the ordered amount of an existing sku line.
func (p *Procurement) UpdateItemAmount(sku, amount uint32) error {
	item := p.findItem(sku)
	if item == nil {
		return fmt.Errorf("%w: sku %d is not on the order", procdomain.ErrNotFound, sku)
	}
	item.OrderedAmount = amount
	return nil
}

// UpdateItemPrice changes the expected net price of an existing sku line.
func (p *Procurement) UpdateItemPrice(sku, netPrice uint32) error {
	item := p.findItem(sku)
	if item == nil {
		return fmt.Errorf("%w: sku %d is not on the order", procdomain.ErrNotFound, sku)
	}
	item.ExpectedNetPrice = netPrice
	return nil
}

// RemoveItem deletes a sku line.
func (p *Procurement) RemoveItem(sku uint32) error {
	for i := range p.Items {
		if p.Items[i].Sku == sku {
			p.Items = append(p.Items[:i], p.Items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: sku %d is not on the order", procdomain.ErrNotFound, sku)
}

// AddUplCandidate appends a new unit-load candidate. The id must pass the
// Luhn check-digit test and must not already be on the order. The sku is not
// checked against the item lines here; reconciliation happens at close time.
func (p *Procurement) AddUplCandidate(uplID string, sku, piece uint32, opened bool, bestBefore *time.Time) error {
	id, err := NewUplID(uplID)
	if err != nil {
		return err
	}
	if p.findCandidate(id) != nil {
		return fmt.Errorf("%w: unit-load id %s is already on the order", procdomain.ErrDuplicateKey, id)
	}
	p.UplCandidates = append(p.UplCandidates, UplCandidate{
		UplID:      id,
		Sku:        sku,
		UplPiece:   piece,
		OpenedSku:  opened,
		BestBefore: bestBefore,
	})
	return nil
}

// UpdateUplCandidate replaces sku, piece count and best-before of an existing
// candidate as one logical change: either all three are applied or none is.
func (p *Procurement) UpdateUplCandidate(uplID string, sku, piece uint32, bestBefore *time.Time) error {
	c := p.findCandidate(UplID(uplID))
	if c == nil {
		return fmt.Errorf("%w: unit-load id %s is not on the order", procdomain.ErrNotFound, uplID)
	}
	c.Sku = sku
	c.UplPiece = piece
	c.BestBefore = bestBefore
	return nil
}

// RemoveUplCandidate deletes a candidate.
func (p *Procurement) RemoveUplCandidate(uplID string) error {
	for i := range p.UplCandidates {
		if p.UplCandidates[i].UplID == UplID(uplID) {
			p.UplCandidates = append(p.UplCandidates[:i], p.UplCandidates[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: unit-load id %s is not on the order", procdomain.ErrNotFound, uplID)
}

// SetStatus requests a transition to target. The allowed edges and their
// guards live in the transitions table; every pair not listed there fails
// with ErrInvalidTransition. The actor is accepted for a future status
// history and is not interpreted today, matching the source system.
func (p *Procurement) SetStatus(target Status, actor uint32) error {
	_ = actor
	edge := findEdge(p.Status, target)
	if edge == nil {
		return fmt.Errorf("%w: %s -> %s", procdomain.ErrInvalidTransition, p.Status, target)
	}
	if edge.guard != nil {
		if err := edge.guard(p); err != nil {
			return err
		}
	}
	p.Status = target
	return nil
}

// CoveredAmount returns the quantity of one sku covered by the current
// candidates: 1 per opened candidate, the piece count per sealed candidate.
// This is the single counting rule shared by the local Closed guard and the
// close workflow's reconciliation.
func (p *Procurement) CoveredAmount(sku uint32) uint32 {
	var covered uint32
	for i := range p.UplCandidates {
		c := &p.UplCandidates[i]
		if c.Sku != sku {
			continue
		}
		if c.OpenedSku {
			covered++
		} else {
			covered += c.UplPiece
		}
	}
	return covered
}

// CandidatesForSku returns the candidates referencing the given sku, in order.
func (p *Procurement) CandidatesForSku(sku uint32) []UplCandidate {
	var out []UplCandidate
	for _, c := range p.UplCandidates {
		if c.Sku == sku {
			out = append(out, c)
		}
	}
	return out
}

// Clone returns a deep copy. The repository hands clones to callers so no
// live aggregate reference escapes the lock.
func (p *Procurement) Clone() *Procurement {
	cp := *p
	cp.Items = append([]ProcurementItem(nil), p.Items...)
	cp.UplCandidates = make([]UplCandidate, len(p.UplCandidates))
	for i, c := range p.UplCandidates {
		cp.UplCandidates[i] = c
		if c.BestBefore != nil {
			bb := *c.BestBefore
			cp.UplCandidates[i].BestBefore = &bb
		}
	}
	if p.EstimatedDeliveryDate != nil {
		dd := *p.EstimatedDeliveryDate
		cp.EstimatedDeliveryDate = &dd
	}
	return &cp
}

// Summary is the denormalized list/read-model projection of a procurement.
type Summary struct {
	ID                    uint32     `json:"id"`
	SourceID              uint32     `json:"source_id"`
	SkuCount              uint32     `json:"sku_count"`
	SkuPieceCount         uint32     `json:"sku_piece_count"`
	UplCount              uint32     `json:"upl_count"`
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date,omitempty"`
	Status                Status     `json:"status"`
	CreatedAt             time.Time  `json:"created_at"`
	CreatedBy             uint32     `json:"created_by"`
}

// Summarize returns the Summary projection of the aggregate.
func (p *Procurement) Summarize() Summary {
	var pieces, uplPieces uint32
	for _, item := range p.Items {
		pieces += item.OrderedAmount
	}
	for _, c := range p.UplCandidates {
		if c.OpenedSku {
			uplPieces++
		} else {
			uplPieces += c.UplPiece
		}
	}
	return Summary{
		ID:                    p.ID,
		SourceID:              p.SourceID,
		SkuCount:              uint32(len(p.Items)),
		SkuPieceCount:         pieces,
		UplCount:              uplPieces,
		EstimatedDeliveryDate: p.EstimatedDeliveryDate,
		Status:                p.Status,
		CreatedAt:             p.CreatedAt,
		CreatedBy:             p.CreatedBy,
	}
}

func (p *Procurement) findItem(sku uint32) *ProcurementItem {
	for i := range p.Items {
		if p.Items[i].Sku == sku {
			return &p.Items[i]
		}
	}
	return nil
}

func (p *Procurement) findCandidate(id UplID) *UplCandidate {
	for i := range p.UplCandidates {
		if p.UplCandidates[i].UplID == id {
			return &p.UplCandidates[i]
		}
	}
	return nil
}
