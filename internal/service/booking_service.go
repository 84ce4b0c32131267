package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/mentor_booking/internal/model"
	"github.com/Freeeeeet/mentor_booking/internal/notification"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingLeadTime минимальный запас до начала занятия при бронировании.
// CancellationWindow минимальный запас до начала, пока студент или
// преподаватель ещё может отменить бронирование сам. Админская отмена
// через ForceCancelBooking это окно игнорирует.
const (
	BookingLeadTime    = 24 * time.Hour
	CancellationWindow = 24 * time.Hour
)

type BookingService struct {
	slots          SlotStore
	bookings       BookingStore
	tx             TxRunner
	dispatcher     notification.Dispatcher
	logger         *zap.Logger
	meetingBaseURL string
	now            func() time.Time
}

func NewBookingService(
	slots SlotStore,
	bookings BookingStore,
	tx TxRunner,
	dispatcher notification.Dispatcher,
	logger *zap.Logger,
	meetingBaseURL string,
) *BookingService {
	return &BookingService{
		slots:          slots,
		bookings:       bookings,
		tx:             tx,
		dispatcher:     dispatcher,
		logger:         logger,
		meetingBaseURL: meetingBaseURL,
		now:            time.Now,
	}
}

type CreateBookingRequest struct {
	InstructorID           int64
	StudentID              int64
	SlotID                 int64
	StartTime              time.Time
	EndTime                time.Time
	Purpose                string
	Notes                  *string
	SessionType            model.SessionType
	ConsultationText       *string
	QuestionsBeforeSession *string
}

// CreateBooking бронирует слот для студента.
// Проверки по порядку: запас 24 часа до начала, слот существует,
// слот свободен. Создание бронирования и пометка слота выполняются
// в одной транзакции - либо применяется всё, либо ничего.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*model.Booking, error) {
	if req.StartTime.Sub(s.now()) < BookingLeadTime {
		return nil, ErrLeadTime
	}

	slot, err := s.slots.GetByID(ctx, req.SlotID)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}

	if slot == nil {
		return nil, fmt.Errorf("slot not found: %w", ErrNotFound)
	}

	// Повторяем проверку запаса по времени самого слота: переданному
	// в запросе StartTime доверять нельзя
	if slot.StartTime.Sub(s.now()) < BookingLeadTime {
		return nil, ErrLeadTime
	}

	if req.InstructorID != slot.InstructorID {
		return nil, fmt.Errorf("slot does not belong to the requested instructor: %w", ErrValidation)
	}

	// Быстрая проверка до транзакции. Авторитетна условная запись
	// MarkBooked ниже: проигравший гонку получит ту же ошибку.
	if slot.IsBooked {
		return nil, ErrAlreadyBooked
	}

	sessionType := req.SessionType
	if sessionType == "" {
		sessionType = model.SessionTypeOneTime
	}

	slotID := slot.ID

	// Время занятия берём из слота - он источник истины
	booking := &model.Booking{
		InstructorID:           slot.InstructorID,
		StudentID:              req.StudentID,
		SlotID:                 &slotID,
		StartTime:              slot.StartTime,
		EndTime:                slot.EndTime,
		Status:                 model.BookingStatusConfirmed,
		SessionType:            sessionType,
		Purpose:                req.Purpose,
		Notes:                  req.Notes,
		ConsultationText:       req.ConsultationText,
		QuestionsBeforeSession: req.QuestionsBeforeSession,
		MeetingURL:             s.newMeetingURL(),
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.bookings.Create(ctx, booking); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}

		marked, err := s.slots.MarkBooked(ctx, slot.ID, booking.ID)
		if err != nil {
			return fmt.Errorf("mark slot booked: %w", err)
		}

		if !marked {
			return ErrAlreadyBooked
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("student_id", booking.StudentID),
		zap.Int64("instructor_id", booking.InstructorID),
		zap.Int64("slot_id", slot.ID),
		zap.Time("start_time", booking.StartTime),
	)

	// Уведомление best-effort: очередь никогда не блокирует
	// и не влияет на результат бронирования
	s.dispatcher.Dispatch(notification.BookingCreated{
		BookingID:    booking.ID,
		InstructorID: booking.InstructorID,
		StudentID:    booking.StudentID,
		StartTime:    booking.StartTime,
		MeetingURL:   booking.MeetingURL,
	})

	booking.DisplayStatus = DisplayStatus(booking, s.now())

	return booking, nil
}

// CancelBooking отменяет бронирование (студент или преподаватель).
// Менее чем за 24 часа до начала самостоятельная отмена запрещена.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID int64) error {
	booking, err := s.getActiveBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.StartTime.Sub(s.now()) < CancellationWindow {
		return ErrCancellationWindow
	}

	return s.cancel(ctx, booking, false)
}

// ForceCancelBooking отменяет бронирование по решению администратора.
// Окно отмены не проверяется.
func (s *BookingService) ForceCancelBooking(ctx context.Context, bookingID int64) error {
	booking, err := s.getActiveBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	return s.cancel(ctx, booking, true)
}

func (s *BookingService) getActiveBooking(ctx context.Context, bookingID int64) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	if booking == nil {
		return nil, fmt.Errorf("booking not found: %w", ErrNotFound)
	}

	// Статус cancelled терминальный: повторная отмена не должна
	// ещё раз освободить слот
	if booking.Status != model.BookingStatusConfirmed {
		return nil, fmt.Errorf("booking is not active: %w", ErrConflict)
	}

	return booking, nil
}

func (s *BookingService) cancel(ctx context.Context, booking *model.Booking, byAdmin bool) error {
	cancelledAt := s.now()

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.bookings.SetCancelled(ctx, booking.ID, cancelledAt); err != nil {
			return fmt.Errorf("set booking cancelled: %w", err)
		}

		// У подтверждённого бронирования слот есть всегда,
		// nil возможен только для повреждённых данных
		if booking.SlotID != nil {
			if err := s.slots.MarkUnbooked(ctx, *booking.SlotID); err != nil {
				return fmt.Errorf("mark slot unbooked: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Booking cancelled",
		zap.Int64("booking_id", booking.ID),
		zap.Int64p("slot_id", booking.SlotID),
		zap.Bool("by_admin", byAdmin),
	)

	s.dispatcher.Dispatch(notification.BookingCancelled{
		BookingID:        booking.ID,
		InstructorID:     booking.InstructorID,
		StudentID:        booking.StudentID,
		StartTime:        booking.StartTime,
		CancelledByAdmin: byAdmin,
	})

	return nil
}

// GetBooking получает бронирование по ID
func (s *BookingService) GetBooking(ctx context.Context, bookingID int64) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	if booking == nil {
		return nil, fmt.Errorf("booking not found: %w", ErrNotFound)
	}

	booking.DisplayStatus = DisplayStatus(booking, s.now())

	return booking, nil
}

// ListStudentBookings получает все бронирования студента
func (s *BookingService) ListStudentBookings(ctx context.Context, studentID int64) ([]*model.Booking, error) {
	bookings, err := s.bookings.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	s.annotate(bookings)
	return bookings, nil
}

// ListInstructorBookings получает все бронирования преподавателя
func (s *BookingService) ListInstructorBookings(ctx context.Context, instructorID int64) ([]*model.Booking, error) {
	bookings, err := s.bookings.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, err
	}

	s.annotate(bookings)
	return bookings, nil
}

func (s *BookingService) annotate(bookings []*model.Booking) {
	now := s.now()
	for _, b := range bookings {
		b.DisplayStatus = DisplayStatus(b, now)
	}
}

// newMeetingURL генерирует ссылку на встречу. Один общий сервис встреч
// на всю платформу, ссылка не привязана к преподавателю.
func (s *BookingService) newMeetingURL() string {
	return strings.TrimRight(s.meetingBaseURL, "/") + "/" + uuid.NewString()
}
