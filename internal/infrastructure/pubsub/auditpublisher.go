package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"github.com/frigoservis/servis/internal/domain/shared/events"
	sharedConfig "github.com/frigoservis/servis/internal/shared/config"
	"github.com/frigoservis/servis/internal/shared/logger"
)

// AuditPublisher streams committed domain events to a kafka topic, keyed by
// aggregate id so one service's transitions stay ordered within a partition.
type AuditPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   logger.Interface
}

func NewAuditPublisher(cfg sharedConfig.KafkaConfig, log logger.Interface) (*AuditPublisher, error) {
	config := sarama.NewConfig()
	config.ClientID = cfg.ClientID
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Timeout = 5 * time.Second
	config.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return NewAuditPublisherWithProducer(producer, cfg.Topic, log), nil
}

func NewAuditPublisherWithProducer(producer sarama.SyncProducer, topic string, log logger.Interface) *AuditPublisher {
	return &AuditPublisher{producer: producer, topic: topic, logger: log}
}

type auditEnvelope struct {
	EventType   string             `json:"event_type"`
	AggregateID string             `json:"aggregate_id"`
	OccurredAt  time.Time          `json:"occurred_at"`
	Version     int                `json:"version"`
	Payload     events.DomainEvent `json:"payload"`
}

func (p *AuditPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(auditEnvelope{
		EventType:   event.GetEventType(),
		AggregateID: event.GetAggregateID(),
		OccurredAt:  event.GetOccurredAt(),
		Version:     event.GetVersion(),
		Payload:     event,
	})
	if err != nil {
		return fmt.Errorf("failed to encode audit event: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.GetAggregateID()),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.GetEventType())},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish audit event: %w", err)
	}

	p.logger.Debugw("audit event published",
		"topic", p.topic,
		"event_type", event.GetEventType(),
		"partition", partition,
		"offset", offset)
	return nil
}

func (p *AuditPublisher) Close() error {
	return p.producer.Close()
}
