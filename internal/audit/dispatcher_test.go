package audit

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingWriter struct {
	mu     sync.Mutex
	events []Event
	fail   bool
	block  chan struct{}
}

func (w *recordingWriter) Log(ev Event) error {
	if w.block != nil {
		<-w.block
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, ev)
	if w.fail {
		return errors.New("db down")
	}
	return nil
}

func TestDispatcherDeliversAndDrainsOnClose(t *testing.T) {
	w := &recordingWriter{}
	d := NewDispatcher(w, 10)

	id := uint(3)
	d.Dispatch(Event{Action: ActionSlotHeld, Entity: "slot", EntityID: &id})
	d.Dispatch(Event{Action: ActionBookingCreated, Entity: "booking"})
	d.Close()

	assert.Len(t, w.events, 2)
	assert.Equal(t, ActionSlotHeld, w.events[0].Action)
}

func TestDispatcherSurvivesWriterErrors(t *testing.T) {
	w := &recordingWriter{fail: true}
	d := NewDispatcher(w, 10)

	d.Dispatch(Event{Action: ActionSlotHeld})
	d.Close()

	assert.Len(t, w.events, 1)
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	w := &recordingWriter{block: make(chan struct{})}
	d := NewDispatcher(w, 1)

	// the worker takes the first event and blocks; one more fits the buffer
	for i := 0; i < 10; i++ {
		d.Dispatch(Event{Action: ActionSlotHeld})
	}
	close(w.block)
	d.Close()

	assert.LessOrEqual(t, len(w.events), 2)
	assert.GreaterOrEqual(t, len(w.events), 1)
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() { d.Dispatch(Event{Action: ActionSlotHeld}) })
}
