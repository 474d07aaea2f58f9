package types

import (
	"encoding/json"
	"time"

	"github.com/quickwishapp/quickwish-backend/pkg/enums"
)

// Envelope is the canonical analytics view of a domain Pub/Sub message.
// The worker assembles it from the stored payload envelope plus the
// message attributes stamped by the outbox publisher.
type Envelope struct {
	EventID       string                    `json:"event_id"`
	EventType     enums.OutboxEventType     `json:"event_type"`
	AggregateType enums.OutboxAggregateType `json:"aggregate_type"`
	AggregateID   string                    `json:"aggregate_id"`
	OccurredAt    time.Time                 `json:"occurred_at"`
	Payload       json.RawMessage           `json:"payload"`
}
