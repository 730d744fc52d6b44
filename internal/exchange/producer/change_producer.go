package producer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"employee-registry/internal/dto"
)

// ChangeProducer publishes employee mutations to the changes topic. Messages
// are keyed by employee_id so the feed stays ordered per record.
type ChangeProducer struct {
	sp     sarama.SyncProducer
	topic  string
	source string
	log    zerolog.Logger
}

type Config struct {
	TopicChanges string
	Source       string
}

func NewChangeProducer(sp sarama.SyncProducer, cfg Config, log zerolog.Logger) *ChangeProducer {
	return &ChangeProducer{
		sp:     sp,
		topic:  cfg.TopicChanges,
		source: cfg.Source,
		log:    log.With().Str("component", "ChangeProducer").Logger(),
	}
}

func (p *ChangeProducer) Close() error {
	if p == nil || p.sp == nil {
		return nil
	}
	return p.sp.Close()
}

func (p *ChangeProducer) ProduceCreated(ctx context.Context, messageID uuid.UUID, e dto.Employee) error {
	return produce(p, ctx, KindCreated, messageID, e.EmployeeID, e)
}

func (p *ChangeProducer) ProduceUpdated(ctx context.Context, messageID uuid.UUID, e dto.Employee) error {
	return produce(p, ctx, KindUpdated, messageID, e.EmployeeID, e)
}

func (p *ChangeProducer) ProduceDeleted(ctx context.Context, messageID uuid.UUID, employeeID string) error {
	return produce(p, ctx, KindDeleted, messageID, employeeID, DeletedPayload{EmployeeID: employeeID})
}

func produce[T any](p *ChangeProducer, ctx context.Context, kind string, messageID uuid.UUID, employeeID string, payload T) error {
	env := Envelope[T]{
		Kind:       kind,
		MessageID:  messageID,
		EmployeeID: employeeID,
		Payload:    payload,
		Timestamp:  time.Now().UTC(),
		Source:     p.source,
	}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	return p.send(ctx, employeeID, body, map[string]string{
		"event-kind":   kind,
		"source":       p.source,
		"content-type": "application/json",
	})
}

func (p *ChangeProducer) send(_ context.Context, key string, value []byte, headers map[string]string) error {
	if p == nil || p.sp == nil {
		return errors.New("sync producer is not initialized")
	}

	var hs []sarama.RecordHeader
	for k, v := range headers {
		hs = append(hs, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}

	msg := &sarama.ProducerMessage{
		Topic:   p.topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(value),
		Headers: hs,
	}

	part, off, err := p.sp.SendMessage(msg)
	if err != nil {
		p.log.Error().
			Err(err).
			Str("topic", p.topic).
			Str("key", key).
			Int("bytes", len(value)).
			Msg("failed to send kafka message")
		return fmt.Errorf("send kafka message: %w", err)
	}

	p.log.Info().
		Str("topic", p.topic).
		Str("key", key).
		Int32("partition", part).
		Int64("offset", off).
		Int("bytes", len(value)).
		Msg("kafka message sent")
	return nil
}
