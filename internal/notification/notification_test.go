package notification

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/court-reservations/internal/config"
	"github.com/BruksfildServices01/court-reservations/internal/models"
)

func sampleBooking() models.Booking {
	return models.Booking{
		ID:            12,
		UserID:        3,
		CourtID:       1,
		SlotID:        40,
		Date:          time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:     "09:00",
		EndTime:       "10:00",
		Status:        "pending",
		PaymentMethod: "presencial",
		Amount:        decimal.NewFromInt(50),
	}
}

func TestRender(t *testing.T) {
	msg := Render(sampleBooking(), "Cancha 1", "ana@example.com")

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "ana@example.com", msg.To)
	assert.Contains(t, msg.Subject, "#12")
	assert.Contains(t, msg.Body, "Cancha 1")
	assert.Contains(t, msg.Body, "2025-03-10")
	assert.Contains(t, msg.Body, "09:00 - 10:00")
	assert.Contains(t, msg.Body, "S/. 50.00")
	assert.Contains(t, msg.Body, "Pendiente")
}

type recordingSink struct {
	mu   sync.Mutex
	name string
	err  error
	got  []Message
}

func (r *recordingSink) Name() string { return r.name }

func (r *recordingSink) Send(_ context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, msg)
	return r.err
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.got)
}

func TestMultiSinkJoinsErrors(t *testing.T) {
	ok := &recordingSink{name: "ok"}
	bad := &recordingSink{name: "bad", err: errors.New("boom")}

	err := NewMultiSink(bad, ok).Send(context.Background(), Render(sampleBooking(), "c", "a@b.com"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad: boom")
	assert.Equal(t, 1, ok.count())
}

func TestDispatcherDeliversAndDrains(t *testing.T) {
	sink := &recordingSink{name: "rec"}
	d := NewDispatcher(sink, 10)

	for i := 0; i < 5; i++ {
		d.Notify(Render(sampleBooking(), "c", "a@b.com"))
	}
	require.NoError(t, d.Close(context.Background()))

	assert.Equal(t, 5, sink.count())
}

func TestDispatcherSurvivesSinkFailure(t *testing.T) {
	sink := &recordingSink{name: "rec", err: errors.New("smtp down")}
	d := NewDispatcher(sink, 10)

	d.Notify(Render(sampleBooking(), "c", "a@b.com"))
	d.Notify(Render(sampleBooking(), "c", "a@b.com"))
	require.NoError(t, d.Close(context.Background()))

	assert.Equal(t, 2, sink.count())
}

type blockingSink struct {
	release chan struct{}
	recordingSink
}

func (b *blockingSink) Send(ctx context.Context, msg Message) error {
	<-b.release
	return b.recordingSink.Send(ctx, msg)
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	sink := &blockingSink{release: make(chan struct{})}
	d := NewDispatcher(sink, 1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			d.Notify(Render(sampleBooking(), "c", "a@b.com"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a full queue")
	}

	close(sink.release)
	require.NoError(t, d.Close(context.Background()))
	assert.Less(t, sink.count(), 10)
}

func TestDispatcherCloseGivesUpOnStalledSink(t *testing.T) {
	sink := &blockingSink{release: make(chan struct{})}
	defer close(sink.release)
	d := NewDispatcher(sink, 4)
	d.Notify(Render(sampleBooking(), "c", "a@b.com"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := d.Close(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() { d.Notify(Message{}) })
}

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return nil
}

func TestAMQPSinkPublishesEvent(t *testing.T) {
	ch := &fakeChannel{}
	s := &AMQPSink{ch: ch, exchange: "booking.exchange"}
	msg := Render(sampleBooking(), "Cancha 1", "ana@example.com")

	require.NoError(t, s.Send(context.Background(), msg))

	assert.Equal(t, "booking.exchange", ch.exchange)
	assert.Equal(t, RoutingKeyBookingConfirmed, ch.key)
	assert.Equal(t, msg.ID, ch.msg.MessageId)
	assert.Equal(t, "application/json", ch.msg.ContentType)

	var ev BookingEvent
	require.NoError(t, json.Unmarshal(ch.msg.Body, &ev))
	assert.Equal(t, uint(12), ev.BookingID)
	assert.Equal(t, "50.00", ev.Amount)
	assert.Equal(t, "ana@example.com", ev.Email)
}

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestReceiptSinkWritesObject(t *testing.T) {
	put := &fakePutter{}
	s := &ReceiptSink{client: put, bucket: "receipts"}
	msg := Render(sampleBooking(), "Cancha 1", "ana@example.com")

	require.NoError(t, s.Send(context.Background(), msg))

	assert.Equal(t, "receipts", *put.in.Bucket)
	assert.Equal(t, "receipts/2025-03-10/booking-12.json", *put.in.Key)
	assert.Contains(t, string(put.body), `"booking_id":12`)
}

func TestReceiptSinkWrapsError(t *testing.T) {
	s := &ReceiptSink{client: &fakePutter{err: errors.New("denied")}, bucket: "b"}

	err := s.Send(context.Background(), Render(sampleBooking(), "c", "a@b.com"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "put receipt")
}

func TestNewSinkValidation(t *testing.T) {
	_, err := NewMailSink("", 587, "", "", "x@y.com")
	assert.Error(t, err)

	_, err = NewReceiptSink(S3Options{Region: "us-east-1"})
	assert.Error(t, err)

	s, err := NewReceiptSink(S3Options{Region: "us-east-1", Bucket: "b", Endpoint: "http://localhost:9000"})
	require.NoError(t, err)
	assert.Equal(t, "s3", s.Name())
}

func TestMailSinkRequiresRecipient(t *testing.T) {
	s, err := NewMailSink("localhost", 2525, "", "", "x@y.com")
	require.NoError(t, err)

	assert.Error(t, s.Send(context.Background(), Message{}))
}

func TestMailSinkReturnsWhenServerStalls(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	// Accept and never send the SMTP greeting.
	var conns []net.Conn
	var mu sync.Mutex
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, c)
			mu.Unlock()
		}
	}()
	defer func() {
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			_ = c.Close()
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	s, err := NewMailSink("127.0.0.1", addr.Port, "", "", "x@y.com")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = s.Send(ctx, Render(sampleBooking(), "Cancha 1", "ana@example.com"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestFromConfig(t *testing.T) {
	sink, closeFn, err := FromConfig(&config.Config{NotifySinks: "log"})
	require.NoError(t, err)
	defer closeFn()
	assert.Equal(t, "log", sink.Name())

	sink, closeFn, err = FromConfig(&config.Config{NotifySinks: "log,s3", S3Bucket: "b", S3Region: "us-east-1"})
	require.NoError(t, err)
	defer closeFn()
	assert.Equal(t, "multi", sink.Name())

	_, _, err = FromConfig(&config.Config{NotifySinks: "fax"})
	assert.Error(t, err)
}
