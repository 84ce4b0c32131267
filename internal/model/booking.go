package model

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed" // Подтверждено
	BookingStatusCancelled BookingStatus = "cancelled" // Отменено
)

type SessionType string

const (
	SessionTypeOneTime   SessionType = "one-time"
	SessionTypeRecurring SessionType = "recurring"
)

type Booking struct {
	ID                     int64         `json:"id"`
	InstructorID           int64         `json:"instructor_id"`
	StudentID              int64         `json:"student_id"`
	SlotID                 *int64        `json:"slot_id"` // nil, если слот удалён после отмены
	StartTime              time.Time     `json:"start_time"`
	EndTime                time.Time     `json:"end_time"`
	Status                 BookingStatus `json:"status"`
	SessionType            SessionType   `json:"session_type"`
	Purpose                string        `json:"purpose"`
	Notes                  *string       `json:"notes"`
	ConsultationText       *string       `json:"consultation_text"`
	QuestionsBeforeSession *string       `json:"questions_before_session"`
	MeetingURL             string        `json:"meeting_url"`
	CreatedAt              time.Time     `json:"created_at"`
	UpdatedAt              time.Time     `json:"updated_at"`
	CancelledAt            *time.Time    `json:"cancelled_at"`
	ReminderSentAt         *time.Time    `json:"reminder_sent_at,omitempty"`

	// Вычисляемое поле для отображения (не из БД)
	DisplayStatus string `json:"display_status,omitempty"`
}
