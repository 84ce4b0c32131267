package model

import "time"

type AvailableSlot struct {
	ID           int64     `json:"id"`
	InstructorID int64     `json:"instructor_id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	IsBooked     bool      `json:"is_booked"`
	BookingID    *int64    `json:"booking_id"` // указатель - может быть nil
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
