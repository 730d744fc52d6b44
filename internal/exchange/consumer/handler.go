package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"employee-registry/internal/dto"
)

type handler struct {
	events      EventsRepository
	log         zerolog.Logger
	commitOnDLQ bool
}

func (h *handler) Setup(_ sarama.ConsumerGroupSession) error   { return nil }
func (h *handler) Cleanup(_ sarama.ConsumerGroupSession) error { return nil }

func (h *handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		var env Envelope
		if err := json.Unmarshal(msg.Value, &env); err != nil {
			h.toDLQ(sess.Context(), msg, fmt.Sprintf("invalid_json: %v", err))
			if h.commitOnDLQ {
				sess.MarkMessage(msg, "")
			}
			continue
		}

		if ok := h.processChange(sess, msg, env); ok {
			sess.MarkMessage(msg, "")
		}
	}
	return nil
}

func (h *handler) processChange(sess sarama.ConsumerGroupSession, msg *sarama.ConsumerMessage, env Envelope) bool {
	ctx := sess.Context()

	if verr := validateEnvelope(env); verr != "" {
		h.toDLQ(ctx, msg, verr)
		return h.commitOnDLQ
	}

	exists, err := h.events.ExistsMessage(ctx, env.MessageID)
	if err != nil {
		h.toDLQ(ctx, msg, fmt.Sprintf("events.ExistsMessage: %v", err))
		return h.commitOnDLQ
	}

	if exists {
		h.log.Info().
			Str("message_id", env.MessageID.String()).
			Str("employee_id", env.EmployeeID).
			Msg("duplicate message, skip (idempotency)")
		return true // already materialised, safe to commit
	}

	if err := h.events.InsertEvent(ctx, dto.ChangeEvent{
		MessageID:  env.MessageID,
		Kind:       env.Kind,
		EmployeeID: env.EmployeeID,
		Topic:      msg.Topic,
		Partition:  int(msg.Partition),
		Offset:     msg.Offset,
		Payload:    append([]byte(nil), msg.Value...),
	}); err != nil {
		h.toDLQ(ctx, msg, fmt.Sprintf("events.InsertEvent: %v", err))
		return h.commitOnDLQ
	}

	return true
}

func (h *handler) toDLQ(ctx context.Context, msg *sarama.ConsumerMessage, reason string) {
	_ = h.events.InsertDLQ(ctx, dto.DLQMessage{
		Topic:   msg.Topic,
		Key:     string(msg.Key),
		Payload: append([]byte(nil), msg.Value...),
		Error:   reason,
	})

	h.log.Warn().
		Str("topic", msg.Topic).
		Int32("partition", msg.Partition).
		Int64("offset", msg.Offset).
		Str("reason", reason).
		Msg("message sent to DLQ")
}
