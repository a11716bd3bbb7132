package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the procurement context.
const (
	// TopicProcurementCreated is published after a new procurement is persisted.
	TopicProcurementCreated = "procurement.created"

	// TopicProcurementClosed is published after a procurement is closed and
	// its unit-loads were submitted for creation.
	TopicProcurementClosed = "procurement.closed"
)

// ProcurementCreatedEvent is published after a new procurement is persisted.
type ProcurementCreatedEvent struct {
	EventID       uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version       int       `json:"version"`  // Schema version; increment on breaking changes
	ProcurementID uint32    `json:"procurement_id"`
	SourceID      uint32    `json:"source_id"`
	CreatedBy     uint32    `json:"created_by"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// ProcurementClosedEvent is published after the close workflow committed a
// procurement to Closed. RequestedUpls and CreatedUpls let consumers observe
// a partial creation: the registry is authoritative and nothing is rolled
// back, so a shortfall here is the signal operations acts on.
type ProcurementClosedEvent struct {
	EventID       uuid.UUID `json:"event_id"`
	Version       int       `json:"version"`
	ProcurementID uint32    `json:"procurement_id"`
	SourceID      uint32    `json:"source_id"`
	RequestedUpls int       `json:"requested_upls"`
	CreatedUpls   int       `json:"created_upls"`
	ClosedBy      uint32    `json:"closed_by"`
	OccurredAt    time.Time `json:"occurred_at"`
}
