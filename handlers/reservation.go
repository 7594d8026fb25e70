package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookwise/middleware"
	"bookwise/models"
	"bookwise/services/reservation"
	"bookwise/utils"
)

// ReservationHandler exposes the reading-room reservation engine and
// the selection-session flow over HTTP.
type ReservationHandler struct {
	Engine   reservation.SchedulingEngine
	Sessions reservation.ReservationSessionService
	Logger   *zap.Logger
}

func NewReservationHandler(engine reservation.SchedulingEngine, sessions reservation.ReservationSessionService, logger *zap.Logger) *ReservationHandler {
	return &ReservationHandler{Engine: engine, Sessions: sessions, Logger: logger}
}

// GetDayView handles GET /api/reservations?book=&date=
func (h *ReservationHandler) GetDayView(c *gin.Context) {
	bookID := c.Query("book")
	date := c.Query("date")
	if bookID == "" || date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", "book and date query parameters are required")
		return
	}

	day, err := h.Engine.DayView(c.Request.Context(), bookID, date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

// Reserve handles POST /api/reservations
func (h *ReservationHandler) Reserve(c *gin.Context) {
	var input struct {
		Book           string `json:"book" binding:"required"`
		Date           string `json:"date" binding:"required"`
		StartSlot      *int   `json:"startSlot" binding:"required"`
		EndSlot        *int   `json:"endSlot" binding:"required"`
		IdempotencyKey string `json:"idempotencyKey"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	confirmation, err := h.Engine.Reserve(c.Request.Context(), reservation.ReserveInput{
		BookID:         input.Book,
		Date:           input.Date,
		StartSlot:      *input.StartSlot,
		EndSlot:        *input.EndSlot,
		UserID:         middleware.UserID(c),
		IdempotencyKey: input.IdempotencyKey,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, confirmation)
}

// Cancel handles DELETE /api/reservations/:book/:date/:slot
func (h *ReservationHandler) Cancel(c *gin.Context) {
	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid slot", "slot must be an integer index")
		return
	}
	bookID := c.Param("book")
	date := c.Param("date")
	userID := middleware.UserID(c)

	if err := h.Engine.Cancel(c.Request.Context(), bookID, date, slot, userID); err != nil {
		h.respondError(c, err)
		return
	}

	// A cancellation that frees a slot inside the caller's in-progress
	// selection invalidates that selection.
	if sessionID := c.Query("sessionId"); sessionID != "" {
		if err := h.Sessions.NoteCancellation(c.Request.Context(), sessionID, userID, slot); err != nil {
			h.Logger.Warn("failed to reset selection after cancellation",
				zap.String("sessionId", sessionID), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// GetCalendar handles GET /api/reservations/calendar?month=YYYY-MM&shift=N
func (h *ReservationHandler) GetCalendar(c *gin.Context) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if raw := c.Query("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid month", "month must be in YYYY-MM format")
			return
		}
		year, month = parsed.Year(), parsed.Month()
	}
	if raw := c.Query("shift"); raw != "" {
		delta, err := strconv.Atoi(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid shift", "shift must be an integer month delta")
			return
		}
		year, month = reservation.ShiftMonth(year, month, delta)
	}

	c.JSON(http.StatusOK, reservation.BuildMonthGrid(year, month, now))
}

// InitiateSession handles POST /api/sessions
func (h *ReservationHandler) InitiateSession(c *gin.Context) {
	var input struct {
		Book string `json:"book" binding:"required"`
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	view, err := h.Sessions.InitiateSession(c.Request.Context(), middleware.UserID(c), input.Book, input.Date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// SetSessionDate handles PUT /api/sessions/:sessionID/date
func (h *ReservationHandler) SetSessionDate(c *gin.Context) {
	var input struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	view, err := h.Sessions.SetSessionDate(c.Request.Context(), c.Param("sessionID"), middleware.UserID(c), input.Date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PickSlot handles POST /api/sessions/:sessionID/pick
func (h *ReservationHandler) PickSlot(c *gin.Context) {
	var input struct {
		Slot     *int            `json:"slot" binding:"required"`
		Boundary models.Boundary `json:"boundary"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	view, err := h.Sessions.PickSlot(c.Request.Context(), c.Param("sessionID"), middleware.UserID(c), *input.Slot, input.Boundary)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ConfirmSession handles POST /api/sessions/:sessionID/confirm
func (h *ReservationHandler) ConfirmSession(c *gin.Context) {
	confirmation, err := h.Sessions.ConfirmReservation(c.Request.Context(), c.Param("sessionID"), middleware.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, confirmation)
}

// CancelSession handles DELETE /api/sessions/:sessionID
func (h *ReservationHandler) CancelSession(c *gin.Context) {
	if err := h.Sessions.CancelSession(c.Request.Context(), c.Param("sessionID"), middleware.UserID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

func (h *ReservationHandler) respondError(c *gin.Context, err error) {
	re, ok := reservation.AsReservationError(err)
	if !ok {
		h.Logger.Error("unexpected reservation error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
		return
	}

	status := http.StatusInternalServerError
	switch re.Code {
	case reservation.CodeInvalidRange, reservation.CodeRangeTooShort:
		status = http.StatusBadRequest
	case reservation.CodeSlotOccupied:
		status = http.StatusConflict
	case reservation.CodeNotFound, reservation.CodeSessionNotFound:
		status = http.StatusNotFound
	case reservation.CodeForbidden:
		status = http.StatusForbidden
	case reservation.CodePersistence:
		status = http.StatusBadGateway
	}

	if re.Code == reservation.CodeSlotOccupied {
		c.JSON(status, gin.H{
			"message":          re.Message,
			"code":             re.Code,
			"conflictingSlots": re.Slots,
		})
		return
	}
	c.JSON(status, gin.H{"message": re.Message, "code": re.Code})
}
