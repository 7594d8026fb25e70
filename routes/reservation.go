package routes

import (
	"github.com/gin-gonic/gin"

	"bookwise/handlers"
	"bookwise/middleware"
)

// RegisterReservationRoutes registers all endpoints for the reading-room
// reservation engine.
func RegisterReservationRoutes(r *gin.Engine, h *handlers.ReservationHandler) {
	api := r.Group("/api/reservations")
	api.Use(middleware.IdentityMiddleware())
	{
		api.GET("", h.GetDayView)
		api.POST("", h.Reserve)
		api.GET("/calendar", h.GetCalendar)
		api.DELETE("/:book/:date/:slot", h.Cancel)
	}

	// Selection sessions live under their own prefix; a wildcard
	// sibling of /session would not route.
	session := r.Group("/api/sessions")
	session.Use(middleware.IdentityMiddleware())
	{
		session.POST("", h.InitiateSession)
		session.PUT("/:sessionID/date", h.SetSessionDate)
		session.POST("/:sessionID/pick", h.PickSlot)
		session.POST("/:sessionID/confirm", h.ConfirmSession)
		session.DELETE("/:sessionID", h.CancelSession)
	}
}
