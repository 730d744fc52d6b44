package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

// ChangeEvent — one materialised record from the employees.changes topic.
type ChangeEvent struct {
	ID         int64           `json:"id"`
	MessageID  uuid.UUID       `json:"messageId"`
	Kind       string          `json:"kind"` // created | updated | deleted
	EmployeeID string          `json:"employeeId"`
	Topic      string          `json:"topic"`
	Partition  int             `json:"partition"`
	Offset     int64           `json:"offset"`
	Payload    json.RawMessage `json:"payload"`
	ReceivedAt string          `json:"receivedAt"`
}

// DLQMessage — a change event that could not be processed.
type DLQMessage struct {
	ID         int64           `json:"id"`
	Topic      string          `json:"topic"`
	Key        string          `json:"key"`
	Payload    json.RawMessage `json:"payload"`
	Error      string          `json:"error"`
	ReceivedAt string          `json:"receivedAt"`
}
