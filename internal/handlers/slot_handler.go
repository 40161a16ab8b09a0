package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/court-reservations/internal/domain/booking"
	"github.com/BruksfildServices01/court-reservations/internal/dto"
	"github.com/BruksfildServices01/court-reservations/internal/httperr"
	"github.com/BruksfildServices01/court-reservations/internal/httpresp"
	"github.com/BruksfildServices01/court-reservations/internal/timezone"
	ucBooking "github.com/BruksfildServices01/court-reservations/internal/usecase/booking"
)

type availabilityLister interface {
	Execute(ctx context.Context, courtID uint, date string) ([]dto.SlotDTO, error)
}

type slotGenerator interface {
	Execute(ctx context.Context, cred domain.Credential, in ucBooking.GenerateSlotsInput) (int, error)
}

// SlotHandler serves the slot catalog: public availability and admin generation.
type SlotHandler struct {
	availability availabilityLister
	generate     slotGenerator
}

func NewSlotHandler(availability availabilityLister, generate slotGenerator) *SlotHandler {
	return &SlotHandler{
		availability: availability,
		generate:     generate,
	}
}

type GenerateSlotsRequest struct {
	CourtID         uint   `json:"court_id" binding:"required"`
	DateStart       string `json:"date_start" binding:"required"` // YYYY-MM-DD
	DateEnd         string `json:"date_end" binding:"required"`
	TimeStart       string `json:"time_start" binding:"required"` // HH:MM
	TimeEnd         string `json:"time_end" binding:"required"`
	IntervalMinutes int    `json:"interval_minutes" binding:"required"`
}

// GET /api/availability?court_id=1&date=2025-03-10 (date defaults to today)
func (h *SlotHandler) Availability(c *gin.Context) {
	courtID, err := strconv.ParseUint(c.Query("court_id"), 10, 64)
	if err != nil || courtID == 0 {
		httperr.BadRequest(c, "invalid_court_id", "court_id inválido.")
		return
	}
	date := c.Query("date")
	if date == "" {
		date = timezone.FormatDate(timezone.Today())
	}

	slots, err := h.availability.Execute(c.Request.Context(), uint(courtID), date)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, slots)
}

func (h *SlotHandler) Generate(c *gin.Context) {
	cred, ok := credentialOrAbort(c)
	if !ok {
		return
	}

	var req GenerateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	created, err := h.generate.Execute(c.Request.Context(), cred, ucBooking.GenerateSlotsInput{
		CourtID:         req.CourtID,
		DateStart:       req.DateStart,
		DateEnd:         req.DateEnd,
		TimeStart:       req.TimeStart,
		TimeEnd:         req.TimeEnd,
		IntervalMinutes: req.IntervalMinutes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, gin.H{"created": created})
}
