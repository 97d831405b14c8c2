package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher публикует события в Kafka.
// Ключ сообщения - provide_date, чтобы события одной даты попадали
// в одну партицию и сохраняли порядок.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher создает publisher для заданных брокеров и топика
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
	}
}

// Publish отправляет событие в Kafka
func (p *KafkaPublisher) Publish(ctx context.Context, event ReservationEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: failed to marshal event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ProvideDate),
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("events: failed to write message: %w", err)
	}

	return nil
}

// Close закрывает соединение с Kafka
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
