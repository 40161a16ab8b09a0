package notification

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const RoutingKeyBookingConfirmed = "booking.confirmed"

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// BookingEvent is the broker payload for a committed booking.
type BookingEvent struct {
	MessageID     string `json:"message_id"`
	BookingID     uint   `json:"booking_id"`
	UserID        uint   `json:"user_id"`
	CourtID       uint   `json:"court_id"`
	SlotID        uint   `json:"slot_id"`
	CourtName     string `json:"court_name"`
	Email         string `json:"email"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Status        string `json:"status"`
	PaymentMethod string `json:"payment_method"`
	Amount        string `json:"amount"`
}

func eventFor(msg Message) BookingEvent {
	b := msg.Booking
	return BookingEvent{
		MessageID:     msg.ID,
		BookingID:     b.ID,
		UserID:        b.UserID,
		CourtID:       b.CourtID,
		SlotID:        b.SlotID,
		CourtName:     msg.CourtName,
		Email:         msg.To,
		Date:          b.Date,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Status:        b.Status,
		PaymentMethod: b.PaymentMethod,
		Amount:        b.Amount.StringFixed(2),
	}
}

// AMQPSink publishes booking events to a topic exchange.
type AMQPSink struct {
	conn     *amqp.Connection
	ch       publisher
	exchange string
}

func NewAMQPSink(url, exchange string) (*AMQPSink, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPSink{conn: conn, ch: ch, exchange: exchange}, nil
}

func (s *AMQPSink) Name() string { return "amqp" }

func (s *AMQPSink) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(eventFor(msg))
	if err != nil {
		return err
	}
	return s.ch.PublishWithContext(ctx, s.exchange, RoutingKeyBookingConfirmed, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID,
		Body:         body,
	})
}

func (s *AMQPSink) Close() error {
	if c, ok := s.ch.(*amqp.Channel); ok && c != nil {
		_ = c.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
