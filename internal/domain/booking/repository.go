package booking

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/court-reservations/internal/models"
)

// ErrNotFound is returned by repositories when a row does not resolve.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	// -------- Transaction --------
	// WithinTx runs fn in one store transaction. fn returning an error rolls
	// everything back; row locks taken through tx end with the transaction.
	WithinTx(
		ctx context.Context,
		fn func(tx Tx) error,
	) error

	// -------- Court --------
	GetCourt(
		ctx context.Context,
		courtID uint,
	) (*models.Court, error)

	// -------- Slot catalog --------
	CreateSlots(
		ctx context.Context,
		slots []models.Slot,
	) (int, error)

	ListSlotsForDay(
		ctx context.Context,
		courtID uint,
		date time.Time,
	) ([]models.Slot, error)

	// -------- Booking (read-only) --------
	ListBookingsForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Booking, error)

	ListBookingsByStatus(
		ctx context.Context,
		status Status,
	) ([]models.Booking, error)
}

// Tx is the transactional view of the store. Lock* methods read rows under a
// pessimistic write lock; a second caller locking the same row waits until
// this transaction commits or rolls back.
type Tx interface {
	// -------- Slot lock manager --------
	LockSlot(
		ctx context.Context,
		slotID uint,
	) (*models.Slot, error)

	// LockExpiredHolds skips rows already locked by in-flight requests.
	LockExpiredHolds(
		ctx context.Context,
		now time.Time,
		limit int,
	) ([]models.Slot, error)

	SaveSlot(
		ctx context.Context,
		s *models.Slot,
	) error

	// -------- Court --------
	GetCourt(
		ctx context.Context,
		courtID uint,
	) (*models.Court, error)

	// -------- Booking --------
	// CreateBooking flushes the row so b.ID is set on return.
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	LockBooking(
		ctx context.Context,
		bookingID uint,
	) (*models.Booking, error)

	SaveBooking(
		ctx context.Context,
		b *models.Booking,
	) error
}
