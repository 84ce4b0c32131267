package httpapi

import (
	"github.com/Freeeeeet/mentor_booking/internal/model"
	"github.com/Freeeeeet/mentor_booking/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers тонкий HTTP-слой над движком бронирований
type Handlers struct {
	slots    *service.SlotService
	bookings *service.BookingService
	logger   *zap.Logger
}

func NewHandlers(slots *service.SlotService, bookings *service.BookingService, logger *zap.Logger) *Handlers {
	return &Handlers{
		slots:    slots,
		bookings: bookings,
		logger:   logger,
	}
}

// NewRouter регистрирует все маршруты API
func NewRouter(h *Handlers, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api", ActorMiddleware())
	{
		slots := api.Group("/slots")
		{
			slots.POST("", h.CreateSlot)
			slots.GET("/open", h.ListOpenSlots)
			slots.DELETE("/:id", h.DeleteSlot)
		}

		api.GET("/instructors/:id/slots", h.ListInstructorSlots)

		bookings := api.Group("/bookings")
		{
			bookings.POST("", h.CreateBooking)
			bookings.GET("/:id", h.GetBooking)
			bookings.POST("/:id/cancel", h.CancelBooking)
			bookings.POST("/:id/force-cancel", RequireRole(model.RoleAdmin), h.ForceCancelBooking)
		}

		me := api.Group("/me")
		{
			me.GET("/bookings", h.ListMyBookings)
			me.GET("/settings", h.GetSettings)
			me.PUT("/settings", h.SaveSettings)
		}
	}

	return r
}
