// Package services contains stateless domain services for the procurement
// bounded context. They enforce the close-workflow business rules that operate
// purely on domain types, so the application-layer orchestrator stays a thin
// sequencing of remote calls around them.
package services

import (
	"fmt"
	"strings"

	procdomain "github.com/ghuser/procurement/services/procurement/domain"
	"github.com/ghuser/procurement/services/procurement/domain/models"
)

// RequireFreshIDs fails when the remote registry reported any of the candidate
// ids as already existing. Ids must be fresh: a close must never recreate a
// unit-load that was materialized before.
func RequireFreshIDs(existing []string) error {
	if len(existing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", procdomain.ErrIDConflict, strings.Join(existing, ", "))
}

// RequireExpiry fails when a perishable product has a candidate without a
// best-before date. Non-perishable products pass unconditionally.
func RequireExpiry(sku uint32, perishable bool, candidates []models.UplCandidate) error {
	if !perishable {
		return nil
	}
	for _, c := range candidates {
		if c.BestBefore == nil {
			return fmt.Errorf("%w: sku %d is perishable but candidate %s has no best-before date",
				procdomain.ErrMissingExpiry, sku, c.UplID)
		}
	}
	return nil
}

// RequireExactCoverage fails unless the opened-aware covered quantity equals
// the ordered amount exactly. Over-coverage is as much an error as
// under-coverage.
func RequireExactCoverage(item models.ProcurementItem, covered uint32) error {
	if covered == item.OrderedAmount {
		return nil
	}
	return fmt.Errorf("%w: sku %d has %d units covered, %d ordered",
		procdomain.ErrQuantityMismatch, item.Sku, covered, item.OrderedAmount)
}
