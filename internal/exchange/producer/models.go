package producer

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindCreated = "created"
	KindUpdated = "updated"
	KindDeleted = "deleted"
)

// DeletedPayload — deletions carry only the key of the removed record.
type DeletedPayload struct {
	EmployeeID string `json:"employeeId" example:"AB1-CD2-EF3-GH4"`
}

// Envelope wraps every message on the employees.changes topic.
type Envelope[T any] struct {
	Kind       string    `json:"kind" example:"created"`                                   // created | updated | deleted
	MessageID  uuid.UUID `json:"messageId" example:"c7e06db5-4b71-4c54-9334-3f9a6e6c5d0e"` // Event id (UUID v4), idempotency key
	EmployeeID string    `json:"employeeId" example:"AB1-CD2-EF3-GH4"`                     // Record key, also the Kafka message key
	Payload    T         `json:"payload"`                                                  // Full record for created/updated, key only for deleted
	Timestamp  time.Time `json:"timestamp" example:"2026-08-28T12:34:56Z"`                 // Event creation time
	Source     string    `json:"source" example:"employee-registry-api"`                   // Producing service
}
