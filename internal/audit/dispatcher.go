package audit

import (
	"log"
	"sync"
)

const (
	ActionSlotsGenerated   = "slots_generated"
	ActionSlotHeld         = "slot_held"
	ActionSlotReleased     = "slot_released"
	ActionHoldsExpired     = "holds_expired"
	ActionBookingCreated   = "booking_created"
	ActionPaymentConfirmed = "payment_confirmed"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

type Writer interface {
	Log(ev Event) error
}

type Dispatcher struct {
	writer Writer
	queue  chan Event

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(writer Writer, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	d := &Dispatcher{
		writer: writer,
		queue:  make(chan Event, size),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.writer.Log(ev); err != nil {
			log.Println("[audit] write error:", err)
		}
	}
}

// Dispatch never blocks the caller; events are dropped when the queue is full.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		log.Println("[audit] queue full, dropping event", ev.Action)
	}
}

// Close drains queued events and stops the worker. Dispatch must not be
// called after Close.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() { close(d.queue) })
	<-d.done
}
