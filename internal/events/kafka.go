package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher публикует события бронирований в топик Kafka.
// Ключ сообщения равен ID бронирования: события одной брони идут по порядку.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
}

// NewKafkaPublisher создаёт publisher поверх kafka.Writer
func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaPublisher{
		writer: writer,
		topic:  topic,
		logger: logger,
	}
}

// Publish отправляет событие
func (p *KafkaPublisher) Publish(ctx context.Context, event BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal booking event: %w", err)
	}

	message := kafka.Message{
		Topic: p.topic,
		Key:   []byte(strconv.FormatInt(event.BookingID, 10)),
		Value: data,
		Time:  event.OccurredAt,
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("write booking event to kafka: %w", err)
	}

	p.logger.Debug("Booking event published",
		zap.String("topic", p.topic),
		zap.String("type", string(event.Type)),
		zap.Int64("booking_id", event.BookingID),
	)
	return nil
}

// Close закрывает writer
func (p *KafkaPublisher) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
