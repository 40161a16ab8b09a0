package notification

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// Sink delivers a rendered message somewhere (email, broker, archive).
type Sink interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// LogSink writes the message to the process log.
type LogSink struct{}

func NewLogSink() *LogSink {
	return &LogSink{}
}

func (LogSink) Name() string { return "log" }

func (LogSink) Send(_ context.Context, msg Message) error {
	log.Printf("[notify] to=%s subject=%q booking=%d", msg.To, msg.Subject, msg.Booking.ID)
	return nil
}

// MultiSink fans a message out to every sink and joins their errors.
type MultiSink struct {
	sinks []Sink
}

func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) Name() string { return "multi" }

func (m *MultiSink) Send(ctx context.Context, msg Message) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Send(ctx, msg); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}
