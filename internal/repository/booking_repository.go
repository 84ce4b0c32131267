package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/mentor_booking/internal/model"
	"github.com/Freeeeeet/mentor_booking/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

const bookingColumns = `id, instructor_id, student_id, slot_id, start_time, end_time, status,
		session_type, purpose, notes, consultation_text, questions_before_session,
		meeting_url, created_at, updated_at, cancelled_at, reminder_sent_at`

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(
		&b.ID,
		&b.InstructorID,
		&b.StudentID,
		&b.SlotID,
		&b.StartTime,
		&b.EndTime,
		&b.Status,
		&b.SessionType,
		&b.Purpose,
		&b.Notes,
		&b.ConsultationText,
		&b.QuestionsBeforeSession,
		&b.MeetingURL,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.CancelledAt,
		&b.ReminderSentAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create создаёт новое бронирование
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (instructor_id, student_id, slot_id, start_time, end_time, status,
			session_type, purpose, notes, consultation_text, questions_before_session, meeting_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	err := base.QuerierFrom(ctx, r.pool).QueryRow(
		ctx, query,
		booking.InstructorID,
		booking.StudentID,
		booking.SlotID,
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		booking.SessionType,
		booking.Purpose,
		booking.Notes,
		booking.ConsultationText,
		booking.QuestionsBeforeSession,
		booking.MeetingURL,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1
	`

	booking, err := scanBooking(base.QuerierFrom(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return booking, nil
}

// ListByStudent получает все бронирования студента
func (r *BookingRepository) ListByStudent(ctx context.Context, studentID int64) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE student_id = $1
		ORDER BY created_at DESC
	`

	rows, err := base.QuerierFrom(ctx, r.pool).Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("list bookings by student: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// ListByInstructor получает все бронирования преподавателя
func (r *BookingRepository) ListByInstructor(ctx context.Context, instructorID int64) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE instructor_id = $1
		ORDER BY created_at DESC
	`

	rows, err := base.QuerierFrom(ctx, r.pool).Query(ctx, query, instructorID)
	if err != nil {
		return nil, fmt.Errorf("list bookings by instructor: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func collectBookings(rows pgx.Rows) ([]*model.Booking, error) {
	var bookings []*model.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

// SetCancelled переводит бронирование в терминальный статус cancelled
func (r *BookingRepository) SetCancelled(ctx context.Context, id int64, cancelledAt time.Time) error {
	query := `
		UPDATE bookings
		SET status = $1, cancelled_at = $2, updated_at = NOW()
		WHERE id = $3
	`

	result, err := base.QuerierFrom(ctx, r.pool).Exec(ctx, query, model.BookingStatusCancelled, cancelledAt, id)
	if err != nil {
		return fmt.Errorf("set booking cancelled: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking not found")
	}

	return nil
}

// ListDueReminders получает подтверждённые бронирования, начинающиеся
// в ближайшие within, по которым напоминание ещё не отправлено
func (r *BookingRepository) ListDueReminders(ctx context.Context, now time.Time, within time.Duration) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'confirmed'
		  AND reminder_sent_at IS NULL
		  AND start_time > $1
		  AND start_time <= $2
		ORDER BY start_time
	`

	rows, err := base.QuerierFrom(ctx, r.pool).Query(ctx, query, now, now.Add(within))
	if err != nil {
		return nil, fmt.Errorf("list due reminders: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// MarkReminderSent отмечает что напоминание по бронированию отправлено
func (r *BookingRepository) MarkReminderSent(ctx context.Context, id int64, at time.Time) error {
	query := `
		UPDATE bookings
		SET reminder_sent_at = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := base.QuerierFrom(ctx, r.pool).Exec(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking not found")
	}

	return nil
}
