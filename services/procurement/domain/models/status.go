package models

import (
	"fmt"

	procdomain "github.com/ghuser/procurement/services/procurement/domain"
)

// Status is the workflow state of a Procurement.
// The lifecycle is strictly monotonic: New, Ordered, Arrived, Processing,
// Closed, with Arrived optional. No edge ever points backward and there are
// no self-loops.
type Status string

const (
	StatusNew        Status = "new"
	StatusOrdered    Status = "ordered"
	StatusArrived    Status = "arrived"
	StatusProcessing Status = "processing"
	StatusClosed     Status = "closed"
)

// ParseStatus converts the wire representation into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNew, StatusOrdered, StatusArrived, StatusProcessing, StatusClosed:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: unknown status %q", procdomain.ErrInvalidTransition, s)
}

// String returns the wire representation.
func (s Status) String() string {
	return string(s)
}

// transitionEdge is one allowed edge of the state machine. The guard runs
// before the status is changed; a guard error rejects the transition and
// leaves the aggregate untouched.
type transitionEdge struct {
	from  Status
	to    Status
	guard func(p *Procurement) error
}

// transitions is the full allowed-edges table. Every (from, to) pair not
// listed here is an invalid transition. Keeping the table as data makes the
// exhaustiveness of the state machine directly testable.
var transitions = []transitionEdge{
	{
		from: StatusNew,
		to:   StatusOrdered,
		guard: func(p *Procurement) error {
			if p.EstimatedDeliveryDate == nil {
				return fmt.Errorf("%w: estimated delivery date is not set", procdomain.ErrInvalidTransition)
			}
			if len(p.Items) == 0 {
				return fmt.Errorf("%w: procurement has no items", procdomain.ErrInvalidTransition)
			}
			return nil
		},
	},
	{from: StatusOrdered, to: StatusArrived},
	{from: StatusOrdered, to: StatusProcessing},
	{from: StatusArrived, to: StatusProcessing},
	{
		from:  StatusProcessing,
		to:    StatusClosed,
		guard: guardFullCoverage,
	},
}

// guardFullCoverage requires every item's ordered amount to be exactly covered
// by its unit-load candidates. An opened candidate covers one unit, a sealed
// candidate covers its piece count.
func guardFullCoverage(p *Procurement) error {
	for i := range p.Items {
		item := &p.Items[i]
		covered := p.CoveredAmount(item.Sku)
		if covered != item.OrderedAmount {
			return fmt.Errorf("%w: sku %d has %d of %d units covered",
				procdomain.ErrIncompleteUpls, item.Sku, covered, item.OrderedAmount)
		}
	}
	return nil
}

// findEdge returns the edge for (from, to), or nil if the pair is not allowed.
func findEdge(from, to Status) *transitionEdge {
	for i := range transitions {
		if transitions[i].from == from && transitions[i].to == to {
			return &transitions[i]
		}
	}
	return nil
}
