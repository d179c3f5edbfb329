package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"voyago/internal/bookings"
	"voyago/internal/shared/config"
	"voyago/pkg/logger"
)

// BookingEventProducer publishes booking lifecycle events to Kafka. It
// implements bookings.EventPublisher.
type BookingEventProducer struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

var _ bookings.EventPublisher = (*BookingEventProducer)(nil)

// NewBookingEventProducer connects a synchronous idempotent producer to the
// configured brokers.
func NewBookingEventProducer(cfg *config.KafkaConfig, log *logger.Logger) (*BookingEventProducer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Timeout = 10 * time.Second
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &BookingEventProducer{
		producer: producer,
		topic:    cfg.Topic,
		log:      log,
	}, nil
}

// PublishBookingEvent serializes the booking into a BookingEvent and sends
// it keyed by booking ID.
func (p *BookingEventProducer) PublishBookingEvent(ctx context.Context, eventType string, booking *bookings.Booking) error {
	event := &BookingEvent{
		ID:            uuid.New(),
		EventType:     eventType,
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		DestinationID: booking.DestinationID,
		EventID:       booking.EventID,
		Seats:         booking.Seats,
		TotalAmount:   booking.TotalAmount,
		BookingStatus: string(booking.BookingStatus),
		PaymentStatus: string(booking.PaymentStatus),
		TravelDate:    booking.TravelDate,
		OccurredAt:    time.Now().UTC(),
	}

	payload, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.PartitionKey()),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_id"), Value: []byte(event.ID.String())},
			{Key: []byte("event_type"), Value: []byte(eventType)},
			{Key: []byte("booking_id"), Value: []byte(booking.ID.String())},
			{Key: []byte("produced_at"), Value: []byte(event.OccurredAt.Format(time.RFC3339))},
		},
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send booking event: %w", err)
	}

	p.log.Debug("booking event published",
		"topic", p.topic,
		"event_type", eventType,
		"booking_id", booking.ID.String(),
		"partition", partition,
		"offset", offset,
	)
	return nil
}

// Close releases the underlying producer.
func (p *BookingEventProducer) Close() error {
	if p.producer == nil {
		return nil
	}
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	return nil
}
