package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type createSlotRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

// CreateSlot создаёт окно доступности текущего преподавателя
func (h *Handlers) CreateSlot(c *gin.Context) {
	var req createSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	slot, err := h.slots.CreateSlot(c.Request.Context(), actorFrom(c).ID, req.StartTime, req.EndTime)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, slot)
}

// DeleteSlot удаляет незабронированный слот текущего преподавателя
func (h *Handlers) DeleteSlot(c *gin.Context) {
	slotID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slot id"})
		return
	}

	if err := h.slots.DeleteSlot(c.Request.Context(), actorFrom(c).ID, slotID); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListInstructorSlots получает все слоты преподавателя
func (h *Handlers) ListInstructorSlots(c *gin.Context) {
	instructorID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid instructor id"})
		return
	}

	slots, err := h.slots.ListSlotsByInstructor(c.Request.Context(), instructorID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// ListOpenSlots получает свободные слоты всех преподавателей
func (h *Handlers) ListOpenSlots(c *gin.Context) {
	slots, err := h.slots.ListAllOpenSlots(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

type saveSettingsRequest struct {
	AvailabilityTemplate string `json:"availability_template"`
}

// GetSettings получает настройки текущего преподавателя
func (h *Handlers) GetSettings(c *gin.Context) {
	settings, err := h.slots.GetSettings(c.Request.Context(), actorFrom(c).ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// SaveSettings сохраняет настройки текущего преподавателя
func (h *Handlers) SaveSettings(c *gin.Context) {
	var req saveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	settings, err := h.slots.SaveSettings(c.Request.Context(), actorFrom(c).ID, req.AvailabilityTemplate)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

func parseIDParam(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
