package eventbus

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/mizanapp/mizan/internal/shared/domain"
)

// Envelope is the wire form of a domain event.
type Envelope struct {
	EventID       string          `json:"event_id"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	RoutingKey    string          `json:"routing_key"`
	OccurredAt    time.Time       `json:"occurred_at"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Data          json.RawMessage `json:"data"`
}

// Encode wraps a domain event in an envelope and serializes it. The
// event's exported fields become the Data payload.
func Encode(ev sharedDomain.DomainEvent) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}

	env := Envelope{
		EventID:       ev.EventID().String(),
		AggregateID:   ev.AggregateID().String(),
		AggregateType: ev.AggregateType(),
		RoutingKey:    ev.RoutingKey(),
		OccurredAt:    ev.OccurredAt(),
		Data:          data,
	}
	if cid := ev.CorrelationID(); cid != uuid.Nil {
		env.CorrelationID = cid.String()
	}
	return json.Marshal(env)
}
