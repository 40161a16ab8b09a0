package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/court-reservations/internal/domain/booking"
	"github.com/BruksfildServices01/court-reservations/internal/dto"
	"github.com/BruksfildServices01/court-reservations/internal/models"
)

// memRepo is an in-memory store with per-row locks held until the
// transaction ends and writes applied only on commit.
type memRepo struct {
	mu       sync.Mutex
	courts   map[uint]models.Court
	slots    map[uint]models.Slot
	bookings map[uint]models.Booking

	slotLocks    map[uint]*sync.Mutex
	bookingLocks map[uint]*sync.Mutex

	nextSlotID    uint
	nextBookingID uint

	// failSaveSlot makes every SaveSlot inside a transaction fail.
	failSaveSlot error
}

func newMemRepo() *memRepo {
	return &memRepo{
		courts:       map[uint]models.Court{},
		slots:        map[uint]models.Slot{},
		bookings:     map[uint]models.Booking{},
		slotLocks:    map[uint]*sync.Mutex{},
		bookingLocks: map[uint]*sync.Mutex{},
	}
}

// -------- seeding helpers --------

func (r *memRepo) addCourt(c models.Court) models.Court {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.courts[c.ID] = c
	return c
}

func (r *memRepo) setPrice(courtID uint, price decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.courts[courtID]
	c.PricePerHour = price
	r.courts[courtID] = c
}

func (r *memRepo) addSlot(s models.Slot) models.Slot {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextSlotID++
	s.ID = r.nextSlotID
	r.slots[s.ID] = s
	return s
}

func (r *memRepo) slot(id uint) models.Slot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slots[id]
}

func (r *memRepo) booking(id uint) models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bookings[id]
}

func (r *memRepo) bookingsForSlot(slotID uint) []models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.SlotID == slotID {
			out = append(out, b)
		}
	}
	return out
}

func (r *memRepo) bookingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

func (r *memRepo) rowLock(locks map[uint]*sync.Mutex, id uint) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := locks[id]
	if !ok {
		m = &sync.Mutex{}
		locks[id] = m
	}
	return m
}

// ======================================================
// domain.Repository
// ======================================================

func (r *memRepo) WithinTx(ctx context.Context, fn func(tx domain.Tx) error) error {
	tx := &memTx{
		repo:     r,
		slots:    map[uint]models.Slot{},
		bookings: map[uint]models.Booking{},
	}
	defer tx.unlockAll()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.commit()
}

func (r *memRepo) GetCourt(_ context.Context, courtID uint) (*models.Court, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courts[courtID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *memRepo) CreateSlots(_ context.Context, slots []models.Slot) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range slots {
		r.nextSlotID++
		s.ID = r.nextSlotID
		r.slots[s.ID] = s
	}
	return len(slots), nil
}

func (r *memRepo) ListSlotsForDay(_ context.Context, courtID uint, date time.Time) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Slot
	for _, s := range r.slots {
		if s.CourtID == courtID && s.Date.Equal(date) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memRepo) ListBookingsForUser(_ context.Context, userID uint) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *memRepo) ListBookingsByStatus(_ context.Context, status domain.Status) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Status == string(status) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ======================================================
// domain.Tx
// ======================================================

type memTx struct {
	repo *memRepo

	held []*sync.Mutex

	slots    map[uint]models.Slot
	bookings map[uint]models.Booking
}

func (t *memTx) unlockAll() {
	for _, m := range t.held {
		m.Unlock()
	}
	t.held = nil
}

func (t *memTx) commit() error {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	for id, b := range t.bookings {
		for _, existing := range t.repo.bookings {
			if existing.SlotID == b.SlotID && existing.ID != id {
				return fmt.Errorf("duplicate key value violates unique constraint on slot_id %d", b.SlotID)
			}
		}
	}
	for id, s := range t.slots {
		t.repo.slots[id] = s
	}
	for id, b := range t.bookings {
		t.repo.bookings[id] = b
	}
	return nil
}

func (t *memTx) LockSlot(_ context.Context, slotID uint) (*models.Slot, error) {
	m := t.repo.rowLock(t.repo.slotLocks, slotID)
	m.Lock()
	t.held = append(t.held, m)

	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	s, ok := t.repo.slots[slotID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (t *memTx) LockExpiredHolds(_ context.Context, now time.Time, limit int) ([]models.Slot, error) {
	t.repo.mu.Lock()
	var ids []uint
	for id, s := range t.repo.slots {
		if s.Status == string(domain.SlotHeld) && s.HeldUntil != nil && !s.HeldUntil.After(now) {
			ids = append(ids, id)
		}
	}
	t.repo.mu.Unlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []models.Slot
	for _, id := range ids {
		if len(out) >= limit {
			break
		}
		m := t.repo.rowLock(t.repo.slotLocks, id)
		if !m.TryLock() {
			continue
		}
		t.held = append(t.held, m)
		out = append(out, t.repo.slot(id))
	}
	return out, nil
}

func (t *memTx) SaveSlot(_ context.Context, s *models.Slot) error {
	if t.repo.failSaveSlot != nil {
		return t.repo.failSaveSlot
	}
	t.slots[s.ID] = *s
	return nil
}

func (t *memTx) GetCourt(ctx context.Context, courtID uint) (*models.Court, error) {
	return t.repo.GetCourt(ctx, courtID)
}

func (t *memTx) CreateBooking(_ context.Context, b *models.Booking) error {
	t.repo.mu.Lock()
	t.repo.nextBookingID++
	b.ID = t.repo.nextBookingID
	t.repo.mu.Unlock()

	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	t.bookings[b.ID] = *b
	return nil
}

func (t *memTx) LockBooking(_ context.Context, bookingID uint) (*models.Booking, error) {
	m := t.repo.rowLock(t.repo.bookingLocks, bookingID)
	m.Lock()
	t.held = append(t.held, m)

	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	b, ok := t.repo.bookings[bookingID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (t *memTx) SaveBooking(_ context.Context, b *models.Booking) error {
	t.bookings[b.ID] = *b
	return nil
}

var (
	_ domain.Repository = (*memRepo)(nil)
	_ domain.Tx         = (*memTx)(nil)
)

// ======================================================
// cache.Availability
// ======================================================

type memCache struct {
	mu          sync.Mutex
	entries     map[string][]dto.SlotDTO
	versions    map[string]int64
	invalidated []string
}

func newMemCache() *memCache {
	return &memCache{
		entries:  map[string][]dto.SlotDTO{},
		versions: map[string]int64{},
	}
}

func (c *memCache) key(courtID uint, date string) string {
	return fmt.Sprintf("%d:%s", courtID, date)
}

func (c *memCache) Get(_ context.Context, courtID uint, date string) ([]dto.SlotDTO, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[c.key(courtID, date)]
	return v, ok
}

func (c *memCache) Version(_ context.Context, courtID uint, date string) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[c.key(courtID, date)], true
}

func (c *memCache) Set(_ context.Context, courtID uint, date string, version int64, slots []dto.SlotDTO) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := c.key(courtID, date)
	if c.versions[k] != version {
		return
	}
	c.entries[k] = slots
}

// Invalidate drops nothing once ctx is done, like a redis call would.
func (c *memCache) Invalidate(ctx context.Context, courtID uint, dates ...string) {
	if ctx.Err() != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range dates {
		k := c.key(courtID, d)
		c.versions[k]++
		delete(c.entries, k)
		c.invalidated = append(c.invalidated, k)
	}
}

func (c *memCache) wasInvalidated(courtID uint, date string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := c.key(courtID, date)
	for _, v := range c.invalidated {
		if v == k {
			return true
		}
	}
	return false
}

// listHookRepo runs afterList once, right after a day's rows were read.
type listHookRepo struct {
	*memRepo
	afterList func()
}

func (r *listHookRepo) ListSlotsForDay(ctx context.Context, courtID uint, date time.Time) ([]models.Slot, error) {
	rows, err := r.memRepo.ListSlotsForDay(ctx, courtID, date)
	if hook := r.afterList; hook != nil {
		r.afterList = nil
		hook()
	}
	return rows, err
}

// cancelOnCommitRepo cancels the caller's context once a transaction ends.
type cancelOnCommitRepo struct {
	*memRepo
	cancel context.CancelFunc
}

func (r *cancelOnCommitRepo) WithinTx(ctx context.Context, fn func(tx domain.Tx) error) error {
	err := r.memRepo.WithinTx(ctx, fn)
	r.cancel()
	return err
}

var errStoreDown = errors.New("connection reset by peer")
