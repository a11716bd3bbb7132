package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/procurement/services/procurement/domain/events"
)

func TestTopics_Values(t *testing.T) {
	if events.TopicProcurementCreated != "procurement.created" {
		t.Errorf("unexpected created topic %q", events.TopicProcurementCreated)
	}
	if events.TopicProcurementClosed != "procurement.closed" {
		t.Errorf("unexpected closed topic %q", events.TopicProcurementClosed)
	}
}

// The closed event is the cross-context contract consumers parse by field
// name; a silent rename would break them.
func TestProcurementClosedEvent_JSONFieldNames(t *testing.T) {
	evt := events.ProcurementClosedEvent{
		EventID:       uuid.New(),
		Version:       1,
		ProcurementID: 7,
		SourceID:      10,
		RequestedUpls: 3,
		CreatedUpls:   2,
		ClosedBy:      42,
		OccurredAt:    time.Now().UTC(),
	}

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}

	for _, field := range []string{
		"event_id", "version", "procurement_id", "source_id",
		"requested_upls", "created_upls", "closed_by", "occurred_at",
	} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %s", field, data)
		}
	}
}
