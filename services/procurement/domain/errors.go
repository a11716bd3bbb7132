// Package domain holds the error taxonomy for the procurement bounded context.
package domain

import "errors"

// Sentinel errors for the procurement domain. Use errors.Is() to check these.
//
// The first group covers local validation failures: retrying without changing
// the underlying data will never succeed. The second group covers gaps
// discovered while reconciling against remote services during close. ErrInternal
// marks collaborator or transport failures, the only kind where a retry may be
// meaningful.
var (
	// ErrNotFound indicates the referenced procurement, sku or upl id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey indicates a uniqueness constraint (procurement id, sku,
	// upl id) would be violated.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidChecksum indicates a unit-load identifier failed the Luhn
	// check-digit test.
	ErrInvalidChecksum = errors.New("invalid unit-load id checksum")

	// ErrInvalidTransition indicates an illegal status change was requested.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrIncompleteUpls indicates an item's candidate coverage does not match
	// its ordered amount on the local Closed transition.
	ErrIncompleteUpls = errors.New("incomplete unit-load coverage")

	// ErrInvalidState indicates the close workflow was started on a
	// procurement that is not in Processing status.
	ErrInvalidState = errors.New("procurement is not in processing status")

	// ErrIDConflict indicates one or more candidate unit-load ids already
	// exist in the remote registry.
	ErrIDConflict = errors.New("unit-load id already registered")

	// ErrUnknownSku indicates the product catalog has no record for an ordered sku.
	ErrUnknownSku = errors.New("unknown sku")

	// ErrMissingPrice indicates the pricing service has no price for an ordered sku.
	ErrMissingPrice = errors.New("missing price")

	// ErrMissingExpiry indicates a perishable product has a candidate without
	// a best-before date.
	ErrMissingExpiry = errors.New("missing best-before date")

	// ErrQuantityMismatch indicates candidate coverage does not equal the
	// ordered amount during the close workflow.
	ErrQuantityMismatch = errors.New("quantity mismatch")

	// ErrInternal indicates a collaborator or transport failure.
	ErrInternal = errors.New("internal error")
)

// IsValidation reports whether err is a business-rule violation rather than an
// infrastructure failure. Callers use this to decide whether retrying could
// ever help: validation failures stay failed until the underlying data changes.
func IsValidation(err error) bool {
	for _, sentinel := range []error{
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
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
