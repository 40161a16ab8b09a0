package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/court-reservations/internal/domain/booking"
	"github.com/BruksfildServices01/court-reservations/internal/models"
)

const slotInsertBatch = 500

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *BookingGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx domain.Tx) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{db: tx})
	})
}

// --------------------------------------------------
// Court
// --------------------------------------------------

func (r *BookingGormRepository) GetCourt(
	ctx context.Context,
	courtID uint,
) (*models.Court, error) {
	return getCourt(r.db.WithContext(ctx), courtID)
}

// --------------------------------------------------
// Slot catalog
// --------------------------------------------------

func (r *BookingGormRepository) CreateSlots(
	ctx context.Context,
	slots []models.Slot,
) (int, error) {

	if len(slots) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).CreateInBatches(&slots, slotInsertBatch)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

func (r *BookingGormRepository) ListSlotsForDay(
	ctx context.Context,
	courtID uint,
	date time.Time,
) ([]models.Slot, error) {

	var slots []models.Slot
	if err := r.db.WithContext(ctx).
		Where("court_id = ? AND date = ?", courtID, date).
		Order("start_time ASC").
		Order("id ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	return slots, nil
}

// --------------------------------------------------
// Booking (read-only)
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForUser(
	ctx context.Context,
	userID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsByStatus(
	ctx context.Context,
	status domain.Status,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// --------------------------------------------------
// Transactional view
// --------------------------------------------------

type gormTx struct {
	db *gorm.DB
}

// LockSlot issues SELECT ... FOR UPDATE on one slot row.
func (t *gormTx) LockSlot(
	ctx context.Context,
	slotID uint,
) (*models.Slot, error) {

	var s models.Slot
	if err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", slotID).
		Take(&s).Error; err != nil {
		return nil, notFound(err)
	}

	return &s, nil
}

func (t *gormTx) LockExpiredHolds(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]models.Slot, error) {

	var slots []models.Slot
	if err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where(
			"status = ? AND held_until IS NOT NULL AND held_until < ?",
			string(domain.SlotHeld),
			now,
		).
		Order("held_until ASC").
		Limit(limit).
		Find(&slots).Error; err != nil {
		return nil, err
	}

	return slots, nil
}

func (t *gormTx) SaveSlot(
	ctx context.Context,
	s *models.Slot,
) error {
	return t.db.WithContext(ctx).Save(s).Error
}

func (t *gormTx) GetCourt(
	ctx context.Context,
	courtID uint,
) (*models.Court, error) {
	return getCourt(t.db.WithContext(ctx), courtID)
}

func (t *gormTx) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return t.db.WithContext(ctx).Create(b).Error
}

func (t *gormTx) LockBooking(
	ctx context.Context,
	bookingID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", bookingID).
		Take(&b).Error; err != nil {
		return nil, notFound(err)
	}

	return &b, nil
}

func (t *gormTx) SaveBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return t.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func getCourt(db *gorm.DB, courtID uint) (*models.Court, error) {
	var court models.Court
	if err := db.Where("id = ?", courtID).Take(&court).Error; err != nil {
		return nil, notFound(err)
	}
	return &court, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// Compile-time checks
var (
	_ domain.Repository = (*BookingGormRepository)(nil)
	_ domain.Tx         = (*gormTx)(nil)
)
