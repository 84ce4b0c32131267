package service

import (
	"time"

	"github.com/Freeeeeet/mentor_booking/internal/model"
)

// Статусы для отображения. "completed" не хранится в базе и не является
// переходом - это чистая проекция от текущего времени при чтении.
const (
	DisplayStatusUpcoming  = "upcoming"
	DisplayStatusCompleted = "completed"
	DisplayStatusCancelled = "cancelled"
)

// DisplayStatus классифицирует бронирование для показа пользователю
func DisplayStatus(b *model.Booking, now time.Time) string {
	if b.Status == model.BookingStatusCancelled {
		return DisplayStatusCancelled
	}

	if b.StartTime.After(now) {
		return DisplayStatusUpcoming
	}

	return DisplayStatusCompleted
}
