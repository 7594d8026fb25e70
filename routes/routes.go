package routes

import (
	"github.com/gin-gonic/gin"

	"bookwise/handlers"
)

// RegisterRoutes wires every route group onto the router.
func RegisterRoutes(r *gin.Engine, reservationHandler *handlers.ReservationHandler) {
	r.GET("/health", handlers.HealthHandler)
	RegisterReservationRoutes(r, reservationHandler)
}
