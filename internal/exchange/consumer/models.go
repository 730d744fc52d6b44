package consumer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Envelope mirrors the producer's wire format; the payload stays raw because
// the feed is materialised as-is.
type Envelope struct {
	Kind       string          `json:"kind"`
	MessageID  uuid.UUID       `json:"messageId"`
	EmployeeID string          `json:"employeeId"`
	Payload    json.RawMessage `json:"payload"`
	Timestamp  time.Time       `json:"timestamp"`
	Source     string          `json:"source"`
}
