package notification

import "time"

// Event исходящее событие для уведомлений.
// Контракт: не больше одного события на переход состояния,
// доставка best-effort, без подтверждений и повторов со стороны ядра.
type Event interface {
	Kind() string
}

type BookingCreated struct {
	BookingID    int64
	InstructorID int64
	StudentID    int64
	StartTime    time.Time
	MeetingURL   string
}

func (BookingCreated) Kind() string { return "booking_created" }

type BookingCancelled struct {
	BookingID        int64
	InstructorID     int64
	StudentID        int64
	StartTime        time.Time
	CancelledByAdmin bool
}

func (BookingCancelled) Kind() string { return "booking_cancelled" }

type SessionReminder struct {
	BookingID    int64
	InstructorID int64
	StudentID    int64
	StartTime    time.Time
	MeetingURL   string
}

func (SessionReminder) Kind() string { return "session_reminder" }
