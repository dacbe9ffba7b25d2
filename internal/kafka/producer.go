package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/airsales/internal/domain"
	"github.com/Domenick1991/airsales/internal/logger"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const EventReservationCreated = "reservation_created"

type ReservationEvent struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	ReservationID int64     `json:"reservation_id"`
	Code          string    `json:"code"`
	PassengerID   int64     `json:"passenger_id"`
	FlightID      int64     `json:"flight_id"`
	Status        string    `json:"status"`
	Total         string    `json:"total"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewReservationEvent(eventType string, r *domain.Reservation) ReservationEvent {
	return ReservationEvent{
		ID:            uuid.NewString(),
		Type:          eventType,
		ReservationID: r.ID,
		Code:          r.Code,
		PassengerID:   r.PassengerID,
		FlightID:      r.FlightID,
		Status:        string(r.Status),
		Total:         r.Total(),
		CreatedAt:     r.CreatedAt,
	}
}

type Producer struct {
	brokers []string
	writer  *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	return &Producer{
		brokers: brokers,
		writer:  writer,
	}
}

// Publish writes payload as JSON. Messages sharing a key land on the same partition.
func (p *Producer) Publish(ctx context.Context, topic, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	logger.InfoLogger.WithFields(logrus.Fields{"topic": topic, "key": key}).Debug("published to kafka")
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// CheckConnection dials the first broker and lists partitions.
func (p *Producer) CheckConnection(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return fmt.Errorf("no kafka brokers configured")
	}
	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return fmt.Errorf("failed to connect to Kafka: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ReadPartitions(); err != nil {
		return fmt.Errorf("failed to read partitions: %w", err)
	}
	return nil
}
