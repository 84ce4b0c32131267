package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/mentor_booking/internal/model"
	"github.com/Freeeeeet/mentor_booking/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SettingsRepository struct {
	pool *pgxpool.Pool
}

func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// Get получает настройки преподавателя. Если записи нет, возвращает nil.
func (r *SettingsRepository) Get(ctx context.Context, instructorID int64) (*model.InstructorSettings, error) {
	query := `
		SELECT instructor_id, availability_template, updated_at
		FROM instructor_settings
		WHERE instructor_id = $1
	`

	var settings model.InstructorSettings
	err := base.QuerierFrom(ctx, r.pool).QueryRow(ctx, query, instructorID).Scan(
		&settings.InstructorID,
		&settings.AvailabilityTemplate,
		&settings.UpdatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get instructor settings: %w", err)
	}

	return &settings, nil
}

// Save сохраняет настройки преподавателя (insert или update)
func (r *SettingsRepository) Save(ctx context.Context, settings *model.InstructorSettings) error {
	query := `
		INSERT INTO instructor_settings (instructor_id, availability_template, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (instructor_id)
		DO UPDATE SET availability_template = EXCLUDED.availability_template, updated_at = NOW()
		RETURNING updated_at
	`

	err := base.QuerierFrom(ctx, r.pool).QueryRow(
		ctx, query,
		settings.InstructorID,
		settings.AvailabilityTemplate,
	).Scan(&settings.UpdatedAt)

	if err != nil {
		return fmt.Errorf("save instructor settings: %w", err)
	}

	return nil
}
