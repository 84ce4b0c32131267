package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/mentor_booking/internal/model"
	"go.uber.org/zap"
)

type SlotService struct {
	slots    SlotStore
	settings SettingsStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewSlotService(slots SlotStore, settings SettingsStore, logger *zap.Logger) *SlotService {
	return &SlotService{
		slots:    slots,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateSlot создаёт окно доступности преподавателя.
// Слот в прошлом создать нельзя. Пересечения со своими же слотами
// не проверяются - преподаватель сам управляет своим календарём.
func (s *SlotService) CreateSlot(ctx context.Context, instructorID int64, startTime, endTime time.Time) (*model.AvailableSlot, error) {
	if !endTime.After(startTime) {
		return nil, fmt.Errorf("end time must be after start time: %w", ErrValidation)
	}

	if startTime.Before(s.now()) {
		return nil, fmt.Errorf("start time is in the past: %w", ErrValidation)
	}

	slot := &model.AvailableSlot{
		InstructorID: instructorID,
		StartTime:    startTime,
		EndTime:      endTime,
	}

	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}

	s.logger.Info("Slot created",
		zap.Int64("slot_id", slot.ID),
		zap.Int64("instructor_id", instructorID),
		zap.Time("start_time", startTime),
	)

	return slot, nil
}

// DeleteSlot удаляет незабронированный слот преподавателя
func (s *SlotService) DeleteSlot(ctx context.Context, instructorID, slotID int64) error {
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return fmt.Errorf("get slot: %w", err)
	}

	if slot == nil {
		return fmt.Errorf("slot not found: %w", ErrNotFound)
	}

	if slot.InstructorID != instructorID {
		return fmt.Errorf("slot belongs to another instructor: %w", ErrValidation)
	}

	if slot.IsBooked {
		return fmt.Errorf("slot is booked: %w", ErrConflict)
	}

	if err := s.slots.Delete(ctx, slotID); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}

	s.logger.Info("Slot deleted",
		zap.Int64("slot_id", slotID),
		zap.Int64("instructor_id", instructorID),
	)

	return nil
}

// ListSlotsByInstructor получает все слоты преподавателя
func (s *SlotService) ListSlotsByInstructor(ctx context.Context, instructorID int64) ([]*model.AvailableSlot, error) {
	return s.slots.ListByInstructor(ctx, instructorID)
}

// ListAllOpenSlots получает свободные слоты всех преподавателей
func (s *SlotService) ListAllOpenSlots(ctx context.Context) ([]*model.AvailableSlot, error) {
	return s.slots.ListOpen(ctx)
}

// GetSettings получает настройки преподавателя.
// Если настроек ещё нет, возвращает пустой шаблон.
func (s *SlotService) GetSettings(ctx context.Context, instructorID int64) (*model.InstructorSettings, error) {
	settings, err := s.settings.Get(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	if settings == nil {
		return &model.InstructorSettings{InstructorID: instructorID}, nil
	}

	return settings, nil
}

// SaveSettings сохраняет настройки преподавателя
func (s *SlotService) SaveSettings(ctx context.Context, instructorID int64, availabilityTemplate string) (*model.InstructorSettings, error) {
	settings := &model.InstructorSettings{
		InstructorID:         instructorID,
		AvailabilityTemplate: availabilityTemplate,
	}

	if err := s.settings.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}

	s.logger.Info("Instructor settings saved",
		zap.Int64("instructor_id", instructorID),
	)

	return settings, nil
}
