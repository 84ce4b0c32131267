package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/mentor_booking/internal/model"
	"github.com/Freeeeeet/mentor_booking/internal/notification"
)

// In-memory фейки хранилищ для тестов движка.
// fakeTx даёт настоящую атомарность: снимок обоих хранилищ перед fn,
// откат при ошибке, сериализация конкурентных транзакций мьютексом.

type fakeSlotStore struct {
	mu     sync.Mutex
	slots  map[int64]*model.AvailableSlot
	nextID int64

	// Эмуляция ON DELETE SET NULL на bookings.slot_id
	onDelete func(slotID int64)
}

func newFakeSlotStore() *fakeSlotStore {
	return &fakeSlotStore{slots: make(map[int64]*model.AvailableSlot)}
}

func (f *fakeSlotStore) Create(_ context.Context, slot *model.AvailableSlot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	slot.ID = f.nextID
	slot.CreatedAt = time.Now()
	slot.UpdatedAt = slot.CreatedAt

	stored := *slot
	f.slots[slot.ID] = &stored
	return nil
}

func (f *fakeSlotStore) GetByID(_ context.Context, id int64) (*model.AvailableSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	slot, ok := f.slots[id]
	if !ok {
		return nil, nil
	}
	cp := *slot
	return &cp, nil
}

func (f *fakeSlotStore) ListByInstructor(_ context.Context, instructorID int64) ([]*model.AvailableSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.AvailableSlot
	for _, slot := range f.slots {
		if slot.InstructorID == instructorID {
			cp := *slot
			out = append(out, &cp)
		}
	}
	sortSlots(out)
	return out, nil
}

func (f *fakeSlotStore) ListOpen(_ context.Context) ([]*model.AvailableSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.AvailableSlot
	for _, slot := range f.slots {
		if !slot.IsBooked {
			cp := *slot
			out = append(out, &cp)
		}
	}
	sortSlots(out)
	return out, nil
}

func sortSlots(slots []*model.AvailableSlot) {
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.Before(slots[j].StartTime)
	})
}

func (f *fakeSlotStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()

	slot, ok := f.slots[id]
	if !ok || slot.IsBooked {
		f.mu.Unlock()
		return fmt.Errorf("slot not found or booked")
	}
	delete(f.slots, id)
	f.mu.Unlock()

	if f.onDelete != nil {
		f.onDelete(id)
	}
	return nil
}

func (f *fakeSlotStore) MarkBooked(_ context.Context, slotID, bookingID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	slot, ok := f.slots[slotID]
	if !ok || slot.IsBooked {
		return false, nil
	}
	slot.IsBooked = true
	slot.BookingID = &bookingID
	slot.UpdatedAt = time.Now()
	return true, nil
}

func (f *fakeSlotStore) MarkUnbooked(_ context.Context, slotID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	slot, ok := f.slots[slotID]
	if !ok {
		return fmt.Errorf("slot not found")
	}
	slot.IsBooked = false
	slot.BookingID = nil
	slot.UpdatedAt = time.Now()
	return nil
}

func (f *fakeSlotStore) snapshot() map[int64]*model.AvailableSlot {
	f.mu.Lock()
	defer f.mu.Unlock()

	cp := make(map[int64]*model.AvailableSlot, len(f.slots))
	for id, slot := range f.slots {
		s := *slot
		cp[id] = &s
	}
	return cp
}

func (f *fakeSlotStore) restore(snap map[int64]*model.AvailableSlot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slots = snap
}

type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[int64]*model.Booking
	nextID   int64
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: make(map[int64]*model.Booking)}
}

func (f *fakeBookingStore) Create(_ context.Context, booking *model.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	booking.ID = f.nextID
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt

	stored := *booking
	f.bookings[booking.ID] = &stored
	return nil
}

func (f *fakeBookingStore) GetByID(_ context.Context, id int64) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	booking, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *booking
	return &cp, nil
}

func (f *fakeBookingStore) ListByStudent(_ context.Context, studentID int64) ([]*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.Booking
	for _, b := range f.bookings {
		if b.StudentID == studentID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) ListByInstructor(_ context.Context, instructorID int64) ([]*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.Booking
	for _, b := range f.bookings {
		if b.InstructorID == instructorID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) SetCancelled(_ context.Context, id int64, cancelledAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	booking, ok := f.bookings[id]
	if !ok {
		return fmt.Errorf("booking not found")
	}
	booking.Status = model.BookingStatusCancelled
	booking.CancelledAt = &cancelledAt
	booking.UpdatedAt = time.Now()
	return nil
}

func (f *fakeBookingStore) clearSlotRef(slotID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.bookings {
		if b.SlotID != nil && *b.SlotID == slotID {
			b.SlotID = nil
		}
	}
}

func (f *fakeBookingStore) snapshot() map[int64]*model.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()

	cp := make(map[int64]*model.Booking, len(f.bookings))
	for id, b := range f.bookings {
		bb := *b
		cp[id] = &bb
	}
	return cp
}

func (f *fakeBookingStore) restore(snap map[int64]*model.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings = snap
}

type fakeSettingsStore struct {
	mu       sync.Mutex
	settings map[int64]*model.InstructorSettings
}

func newFakeSettingsStore() *fakeSettingsStore {
	return &fakeSettingsStore{settings: make(map[int64]*model.InstructorSettings)}
}

func (f *fakeSettingsStore) Get(_ context.Context, instructorID int64) (*model.InstructorSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	settings, ok := f.settings[instructorID]
	if !ok {
		return nil, nil
	}
	cp := *settings
	return &cp, nil
}

func (f *fakeSettingsStore) Save(_ context.Context, settings *model.InstructorSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	settings.UpdatedAt = time.Now()
	stored := *settings
	f.settings[settings.InstructorID] = &stored
	return nil
}

type fakeTx struct {
	mu       sync.Mutex
	slots    *fakeSlotStore
	bookings *fakeBookingStore
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	slotSnap := f.slots.snapshot()
	bookingSnap := f.bookings.snapshot()

	if err := fn(ctx); err != nil {
		f.slots.restore(slotSnap)
		f.bookings.restore(bookingSnap)
		return err
	}
	return nil
}

type fakeDispatcher struct {
	mu     sync.Mutex
	events []notification.Event
}

func (f *fakeDispatcher) Dispatch(ev notification.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
}

func (f *fakeDispatcher) all() []notification.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notification.Event(nil), f.events...)
}
