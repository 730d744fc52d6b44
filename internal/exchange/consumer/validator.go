package consumer

import (
	"fmt"

	"github.com/google/uuid"
)

var allowedKinds = map[string]struct{}{
	"created": {}, "updated": {}, "deleted": {},
}

func validateEnvelope(env Envelope) string {
	if env.MessageID == uuid.Nil {
		return "missing required field 'messageId'"
	}

	if env.EmployeeID == "" {
		return "missing required field 'employeeId'"
	}

	if env.Kind == "" {
		return "missing required field 'kind'"
	}

	if _, ok := allowedKinds[env.Kind]; !ok {
		return fmt.Sprintf("invalid enum value: kind %s not in allowed kinds %v", env.Kind, allowedKinds)
	}

	if len(env.Payload) == 0 {
		return "missing required field 'payload'"
	}

	return ""
}
