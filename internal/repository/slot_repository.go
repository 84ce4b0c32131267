package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/mentor_booking/internal/model"
	"github.com/Freeeeeet/mentor_booking/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SlotRepository struct {
	pool *pgxpool.Pool
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

const slotColumns = `id, instructor_id, start_time, end_time, is_booked, booking_id, created_at, updated_at`

func scanSlot(row pgx.Row) (*model.AvailableSlot, error) {
	var slot model.AvailableSlot
	err := row.Scan(
		&slot.ID,
		&slot.InstructorID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsBooked,
		&slot.BookingID,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// Create создаёт новый слот доступности
func (r *SlotRepository) Create(ctx context.Context, slot *model.AvailableSlot) error {
	query := `
		INSERT INTO available_slots (instructor_id, start_time, end_time)
		VALUES ($1, $2, $3)
		RETURNING id, is_booked, created_at, updated_at
	`

	err := base.QuerierFrom(ctx, r.pool).QueryRow(
		ctx, query,
		slot.InstructorID,
		slot.StartTime,
		slot.EndTime,
	).Scan(&slot.ID, &slot.IsBooked, &slot.CreatedAt, &slot.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}

	return nil
}

// GetByID получает слот по ID
func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*model.AvailableSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM available_slots
		WHERE id = $1
	`

	slot, err := scanSlot(base.QuerierFrom(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}

	return slot, nil
}

// ListByInstructor получает все слоты преподавателя, отсортированные по началу
func (r *SlotRepository) ListByInstructor(ctx context.Context, instructorID int64) ([]*model.AvailableSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM available_slots
		WHERE instructor_id = $1
		ORDER BY start_time
	`

	rows, err := base.QuerierFrom(ctx, r.pool).Query(ctx, query, instructorID)
	if err != nil {
		return nil, fmt.Errorf("list slots by instructor: %w", err)
	}
	defer rows.Close()

	return collectSlots(rows)
}

// ListOpen получает все свободные слоты всех преподавателей
func (r *SlotRepository) ListOpen(ctx context.Context) ([]*model.AvailableSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM available_slots
		WHERE is_booked = FALSE
		ORDER BY start_time
	`

	rows, err := base.QuerierFrom(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list open slots: %w", err)
	}
	defer rows.Close()

	return collectSlots(rows)
}

func collectSlots(rows pgx.Rows) ([]*model.AvailableSlot, error) {
	var slots []*model.AvailableSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

// Delete удаляет слот. Забронированный слот удалить нельзя.
func (r *SlotRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM available_slots
		WHERE id = $1 AND is_booked = FALSE
	`

	result, err := base.QuerierFrom(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot not found or booked")
	}

	return nil
}

// MarkBooked помечает слот занятым со ссылкой на бронирование.
// Условный UPDATE: если слот уже занят, вернёт false - так решается
// гонка двух одновременных бронирований.
func (r *SlotRepository) MarkBooked(ctx context.Context, slotID, bookingID int64) (bool, error) {
	query := `
		UPDATE available_slots
		SET is_booked = TRUE, booking_id = $1, updated_at = NOW()
		WHERE id = $2 AND is_booked = FALSE
	`

	result, err := base.QuerierFrom(ctx, r.pool).Exec(ctx, query, bookingID, slotID)
	if err != nil {
		return false, fmt.Errorf("mark slot booked: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// MarkUnbooked освобождает слот после отмены бронирования
func (r *SlotRepository) MarkUnbooked(ctx context.Context, slotID int64) error {
	query := `
		UPDATE available_slots
		SET is_booked = FALSE, booking_id = NULL, updated_at = NOW()
		WHERE id = $1
	`

	result, err := base.QuerierFrom(ctx, r.pool).Exec(ctx, query, slotID)
	if err != nil {
		return fmt.Errorf("mark slot unbooked: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot not found")
	}

	return nil
}
