package notification

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/BruksfildServices01/court-reservations/internal/metrics"
)

const sendTimeout = 30 * time.Second

// Dispatcher delivers messages outside the request path. Notify never
// blocks; when the queue is full the message is dropped and logged.
// Delivery failures are logged and counted, never retried.
type Dispatcher struct {
	sink  Sink
	queue chan Message

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(sink Sink, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Message, size),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for msg := range d.queue {
		d.deliver(msg)
	}
}

func (d *Dispatcher) deliver(msg Message) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[notify] sink panic booking=%d: %v", msg.Booking.ID, r)
			metrics.ObserveNotification(metrics.OutcomeError)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := d.sink.Send(ctx, msg); err != nil {
		log.Printf("[notify] delivery failed booking=%d to=%s: %v", msg.Booking.ID, msg.To, err)
		metrics.ObserveNotification(metrics.OutcomeError)
		return
	}
	metrics.ObserveNotification(metrics.OutcomeOK)
}

func (d *Dispatcher) Notify(msg Message) {
	if d == nil {
		return
	}
	select {
	case d.queue <- msg:
	default:
		log.Printf("[notify] queue full, dropping booking=%d", msg.Booking.ID)
		metrics.ObserveNotification(metrics.OutcomeDropped)
	}
}

// Close drains queued messages and stops the worker. It gives up when ctx
// is done; whatever is still queued is lost.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.closeOnce.Do(func() { close(d.queue) })
	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		log.Printf("[notify] close abandoned with %d queued: %v", len(d.queue), ctx.Err())
		return ctx.Err()
	}
}
