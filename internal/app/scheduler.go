package app

import (
	"context"
	"time"

	"github.com/Freeeeeet/mentor_booking/internal/model"
	"github.com/Freeeeeet/mentor_booking/internal/notification"
	"go.uber.org/zap"
)

const (
	reminderInterval = 10 * time.Minute
	reminderHorizon  = 24 * time.Hour
)

// ReminderStore часть хранилища бронирований, нужная планировщику
type ReminderStore interface {
	ListDueReminders(ctx context.Context, now time.Time, within time.Duration) ([]*model.Booking, error)
	MarkReminderSent(ctx context.Context, id int64, at time.Time) error
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	store      ReminderStore
	dispatcher notification.Dispatcher
	logger     *zap.Logger
	stopChan   chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(store ReminderStore, dispatcher notification.Dispatcher, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		store:      store,
		dispatcher: dispatcher,
		logger:     logger,
		stopChan:   make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runReminderTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runReminderTask периодически рассылает напоминания о занятиях
func (s *Scheduler) runReminderTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.sendReminders(ctx)

	ticker := time.NewTicker(reminderInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sendReminders(ctx)
		case <-s.stopChan:
			s.logger.Info("Reminder task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Reminder task cancelled")
			return
		}
	}
}

// sendReminders находит подтверждённые бронирования, начинающиеся
// в ближайшие сутки, и отправляет по ним напоминания.
// Неотправленные строки подхватит следующий тик.
func (s *Scheduler) sendReminders(ctx context.Context) {
	now := time.Now()

	due, err := s.store.ListDueReminders(ctx, now, reminderHorizon)
	if err != nil {
		s.logger.Error("Failed to list due reminders", zap.Error(err))
		return
	}

	for _, booking := range due {
		s.dispatcher.Dispatch(notification.SessionReminder{
			BookingID:    booking.ID,
			InstructorID: booking.InstructorID,
			StudentID:    booking.StudentID,
			StartTime:    booking.StartTime,
			MeetingURL:   booking.MeetingURL,
		})

		if err := s.store.MarkReminderSent(ctx, booking.ID, now); err != nil {
			s.logger.Error("Failed to mark reminder sent",
				zap.Int64("booking_id", booking.ID),
				zap.Error(err),
			)
		}
	}

	if len(due) > 0 {
		s.logger.Info("Session reminders dispatched", zap.Int("count", len(due)))
	}
}
