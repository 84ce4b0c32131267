package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/mentor_booking/internal/model"
)

// Интерфейсы хранилищ. Реализуются пакетом repository поверх Postgres,
// в тестах подменяются in-memory фейками.

type SlotStore interface {
	Create(ctx context.Context, slot *model.AvailableSlot) error
	GetByID(ctx context.Context, id int64) (*model.AvailableSlot, error)
	ListByInstructor(ctx context.Context, instructorID int64) ([]*model.AvailableSlot, error)
	ListOpen(ctx context.Context) ([]*model.AvailableSlot, error)
	Delete(ctx context.Context, id int64) error

	// MarkBooked возвращает false, если слот уже занят.
	// Условная запись - именно она решает гонку одновременных бронирований.
	MarkBooked(ctx context.Context, slotID, bookingID int64) (bool, error)
	MarkUnbooked(ctx context.Context, slotID int64) error
}

type BookingStore interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*model.Booking, error)
	ListByInstructor(ctx context.Context, instructorID int64) ([]*model.Booking, error)
	SetCancelled(ctx context.Context, id int64, cancelledAt time.Time) error
}

type SettingsStore interface {
	Get(ctx context.Context, instructorID int64) (*model.InstructorSettings, error)
	Save(ctx context.Context, settings *model.InstructorSettings) error
}

// TxRunner выполняет fn внутри транзакции хранилища.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
