package v1

import (
	"encoding/json"
	"time"
)

// Envelope is the canonical, versioned event envelope published on the bus.
// Field names are part of the wire contract and must stay backward compatible.
type Envelope struct {
	EventID          string          `json:"event_id"`
	EventType        string          `json:"event_type"`
	OccurredAt       time.Time       `json:"occurred_at"`
	SourceService    string          `json:"source_service"`
	TraceID          string          `json:"trace_id"`
	SchemaVersion    int             `json:"schema_version"`
	PartitionKeyPath string          `json:"partition_key_path"`
	PartitionKey     string          `json:"partition_key"`
	Data             json.RawMessage `json:"data"`
}

// NewEnvelope marshals data and stamps the routing metadata shared by all producers.
func NewEnvelope(
	eventID string,
	eventType string,
	sourceService string,
	partitionKeyPath string,
	partitionKey string,
	occurredAt time.Time,
	data any,
) (Envelope, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    sourceService,
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: partitionKeyPath,
		PartitionKey:     partitionKey,
		Data:             payload,
	}, nil
}
