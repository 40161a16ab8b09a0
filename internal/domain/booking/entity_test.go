package booking

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/court-reservations/internal/httperr"
	"github.com/BruksfildServices01/court-reservations/internal/models"
)

func TestCanHoldOnlyAvailable(t *testing.T) {
	assert.NoError(t, CanHold(SlotAvailable))
	for _, s := range []SlotStatus{SlotHeld, SlotBooked, SlotMaintenance} {
		err := CanHold(s)
		be, ok := httperr.AsBusiness(err)
		require.True(t, ok)
		assert.Equal(t, CodeSlotUnavailable, be.Code)
		assert.Equal(t, string(s), be.Detail)
	}
}

func TestCanBookAvailableOrHeld(t *testing.T) {
	assert.NoError(t, CanBook(SlotAvailable))
	assert.NoError(t, CanBook(SlotHeld))
	assert.True(t, httperr.IsBusiness(CanBook(SlotBooked), CodeSlotNotPayable))
	assert.True(t, httperr.IsBusiness(CanBook(SlotMaintenance), CodeSlotNotPayable))
}

func TestInitialStatus(t *testing.T) {
	st, err := InitialStatus(PaymentOnSite)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, st)

	st, err = InitialStatus(PaymentOnline)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, st)

	_, err = InitialStatus("crypto")
	assert.True(t, httperr.IsBusiness(err, CodeInvalidPaymentMethod))
}

func TestHoldRecordsHolderAndExpiry(t *testing.T) {
	now := time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC)
	s := &models.Slot{Status: string(SlotAvailable)}

	require.NoError(t, Hold(s, 42, now, 10*time.Minute))
	assert.Equal(t, string(SlotHeld), s.Status)
	require.NotNil(t, s.HeldBy)
	assert.Equal(t, uint(42), *s.HeldBy)
	require.NotNil(t, s.HeldUntil)
	assert.Equal(t, now.Add(10*time.Minute), *s.HeldUntil)

	assert.True(t, httperr.IsBusiness(Hold(s, 43, now, time.Minute), CodeSlotUnavailable))
}

func TestHoldWithoutTTL(t *testing.T) {
	s := &models.Slot{Status: string(SlotAvailable)}
	require.NoError(t, Hold(s, 1, time.Now(), 0))
	assert.Nil(t, s.HeldUntil)
	assert.False(t, Expire(s, time.Now().Add(24*time.Hour)))
}

func TestRelease(t *testing.T) {
	holder := uint(5)

	s := &models.Slot{Status: string(SlotHeld), HeldBy: &holder}
	err := Release(s, Credential{UserID: 6, Role: models.RoleClient})
	assert.True(t, httperr.IsBusiness(err, CodeNotSlotHolder))
	assert.Equal(t, string(SlotHeld), s.Status)

	require.NoError(t, Release(s, Credential{UserID: 5, Role: models.RoleClient}))
	assert.Equal(t, string(SlotAvailable), s.Status)
	assert.Nil(t, s.HeldBy)

	s = &models.Slot{Status: string(SlotHeld)}
	require.NoError(t, Release(s, Credential{UserID: 1, Role: models.RoleAdmin}))

	s = &models.Slot{Status: string(SlotBooked)}
	assert.True(t, httperr.IsBusiness(Release(s, Credential{Role: models.RoleAdmin}), CodeSlotNotHeld))
}

func TestExpire(t *testing.T) {
	now := time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC)
	past := now.Add(-time.Second)
	future := now.Add(time.Minute)

	s := &models.Slot{Status: string(SlotHeld), HeldUntil: &future}
	assert.False(t, Expire(s, now))

	s.HeldUntil = &past
	assert.True(t, Expire(s, now))
	assert.Equal(t, string(SlotAvailable), s.Status)

	booked := &models.Slot{Status: string(SlotBooked), HeldUntil: &past}
	assert.False(t, Expire(booked, now))
}

func TestNewBookingSnapshotsSlotAndPrice(t *testing.T) {
	date := time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)
	s := &models.Slot{ID: 9, CourtID: 3, Date: date, StartTime: "19:00", EndTime: "20:00", Status: string(SlotHeld)}
	court := &models.Court{ID: 3, PricePerHour: decimal.RequireFromString("120.50")}

	b := NewBooking(s, court, 11, PaymentOnline, StatusConfirmed)
	court.PricePerHour = decimal.NewFromInt(200)

	assert.Equal(t, uint(11), b.UserID)
	assert.Equal(t, uint(3), b.CourtID)
	assert.Equal(t, uint(9), b.SlotID)
	assert.Equal(t, date, b.Date)
	assert.Equal(t, "19:00", b.StartTime)
	assert.Equal(t, "20:00", b.EndTime)
	assert.True(t, decimal.RequireFromString("120.50").Equal(b.Amount))
	assert.Equal(t, string(StatusConfirmed), b.Status)
	assert.Equal(t, string(PaymentOnline), b.PaymentMethod)
}

func TestMarkBooked(t *testing.T) {
	holder := uint(1)
	s := &models.Slot{Status: string(SlotHeld), HeldBy: &holder}
	require.NoError(t, MarkBooked(s, 77))
	assert.Equal(t, string(SlotBooked), s.Status)
	require.NotNil(t, s.BookingID)
	assert.Equal(t, uint(77), *s.BookingID)
	assert.Nil(t, s.HeldBy)

	assert.True(t, httperr.IsBusiness(MarkBooked(s, 78), CodeSlotNotPayable))
}

func TestConfirmPayment(t *testing.T) {
	now := time.Now()
	b := &models.Booking{Status: string(StatusPending)}
	require.NoError(t, ConfirmPayment(b, now))
	assert.Equal(t, string(StatusConfirmed), b.Status)
	require.NotNil(t, b.PaidAt)

	assert.True(t, httperr.IsBusiness(ConfirmPayment(b, now), CodeBookingNotPending))
}
