package httpapi

import (
	"net/http"
	"time"

	"github.com/Freeeeeet/mentor_booking/internal/model"
	"github.com/Freeeeeet/mentor_booking/internal/service"
	"github.com/gin-gonic/gin"
)

type createBookingRequest struct {
	InstructorID           int64     `json:"instructor_id" binding:"required"`
	SlotID                 int64     `json:"slot_id" binding:"required"`
	StartTime              time.Time `json:"start_time" binding:"required"`
	EndTime                time.Time `json:"end_time" binding:"required"`
	Purpose                string    `json:"purpose" binding:"required"`
	Notes                  *string   `json:"notes"`
	SessionType            string    `json:"session_type"`
	ConsultationText       *string   `json:"consultation_text"`
	QuestionsBeforeSession *string   `json:"questions_before_session"`
}

// CreateBooking бронирует слот для текущего студента
func (h *Handlers) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	booking, err := h.bookings.CreateBooking(c.Request.Context(), service.CreateBookingRequest{
		InstructorID:           req.InstructorID,
		StudentID:              actorFrom(c).ID,
		SlotID:                 req.SlotID,
		StartTime:              req.StartTime,
		EndTime:                req.EndTime,
		Purpose:                req.Purpose,
		Notes:                  req.Notes,
		SessionType:            model.SessionType(req.SessionType),
		ConsultationText:       req.ConsultationText,
		QuestionsBeforeSession: req.QuestionsBeforeSession,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// CancelBooking самостоятельная отмена бронирования.
// Отменить может только участник бронирования; окно в 24 часа
// проверяет сам движок бронирований.
func (h *Handlers) CancelBooking(c *gin.Context) {
	bookingID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	booking, err := h.bookings.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	actor := actorFrom(c)
	if actor.ID != booking.StudentID && actor.ID != booking.InstructorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "no permission to cancel this booking"})
		return
	}

	if err := h.bookings.CancelBooking(c.Request.Context(), bookingID); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ForceCancelBooking административная отмена без проверки окна
func (h *Handlers) ForceCancelBooking(c *gin.Context) {
	bookingID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	if err := h.bookings.ForceCancelBooking(c.Request.Context(), bookingID); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetBooking получает бронирование по ID
func (h *Handlers) GetBooking(c *gin.Context) {
	bookingID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	booking, err := h.bookings.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// ListMyBookings получает бронирования текущего пользователя.
// Для преподавателя - занятия с ним, для остальных - его записи.
func (h *Handlers) ListMyBookings(c *gin.Context) {
	actor := actorFrom(c)

	var (
		bookings []*model.Booking
		err      error
	)
	if actor.Role == model.RoleInstructor {
		bookings, err = h.bookings.ListInstructorBookings(c.Request.Context(), actor.ID)
	} else {
		bookings, err = h.bookings.ListStudentBookings(c.Request.Context(), actor.ID)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
