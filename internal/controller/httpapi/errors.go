package httpapi

import (
	"errors"
	"net/http"

	"github.com/Freeeeeet/mentor_booking/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError переводит ошибку бизнес-правила в HTTP-ответ.
// Каждый вид ошибки даёт свой статус и понятное пользователю сообщение.
func (h *Handlers) respondError(c *gin.Context, err error) {
	var status int

	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyBooked):
		status = http.StatusConflict
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, service.ErrLeadTime):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrCancellationWindow):
		status = http.StatusUnprocessableEntity
	default:
		h.logger.Error("Unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
