package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/court-reservations/internal/domain/booking"
	"github.com/BruksfildServices01/court-reservations/internal/dto"
	"github.com/BruksfildServices01/court-reservations/internal/httperr"
	"github.com/BruksfildServices01/court-reservations/internal/httpresp"
	"github.com/BruksfildServices01/court-reservations/internal/models"
	ucBooking "github.com/BruksfildServices01/court-reservations/internal/usecase/booking"
)

// ======================================================
// USE CASE PORTS
// ======================================================

type slotTransition interface {
	Execute(ctx context.Context, cred domain.Credential, slotID uint) (*models.Slot, error)
}

type bookingConfirmer interface {
	Execute(ctx context.Context, cred domain.Credential, in ucBooking.ConfirmBookingInput) (*models.Booking, error)
}

type bookingLister interface {
	Execute(ctx context.Context, cred domain.Credential) ([]models.Booking, error)
}

type paymentConfirmer interface {
	Execute(ctx context.Context, cred domain.Credential, bookingID uint) (*models.Booking, error)
}

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	hold           slotTransition
	release        slotTransition
	confirm        bookingConfirmer
	history        bookingLister
	pending        bookingLister
	confirmPayment paymentConfirmer
}

func NewBookingHandler(
	hold slotTransition,
	release slotTransition,
	confirm bookingConfirmer,
	history bookingLister,
	pending bookingLister,
	confirmPayment paymentConfirmer,
) *BookingHandler {
	return &BookingHandler{
		hold:           hold,
		release:        release,
		confirm:        confirm,
		history:        history,
		pending:        pending,
		confirmPayment: confirmPayment,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ConfirmBookingRequest struct {
	SlotID        uint   `json:"slot_id" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// ======================================================
// SLOT HOLD / RELEASE
// ======================================================

func (h *BookingHandler) Hold(c *gin.Context) {
	cred, ok := credentialOrAbort(c)
	if !ok {
		return
	}
	slotID, ok := paramID(c, "id")
	if !ok {
		return
	}

	slot, err := h.hold.Execute(c.Request.Context(), cred, slotID)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, dto.FromSlot(*slot))
}

func (h *BookingHandler) Release(c *gin.Context) {
	cred, ok := credentialOrAbort(c)
	if !ok {
		return
	}
	slotID, ok := paramID(c, "id")
	if !ok {
		return
	}

	slot, err := h.release.Execute(c.Request.Context(), cred, slotID)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, dto.FromSlot(*slot))
}

// ======================================================
// CONFIRM
// ======================================================

func (h *BookingHandler) Confirm(c *gin.Context) {
	cred, ok := credentialOrAbort(c)
	if !ok {
		return
	}

	var req ConfirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	b, err := h.confirm.Execute(c.Request.Context(), cred, ucBooking.ConfirmBookingInput{
		SlotID:        req.SlotID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromBooking(*b))
}

// ======================================================
// HISTORY
// ======================================================

func (h *BookingHandler) History(c *gin.Context) {
	cred, ok := credentialOrAbort(c)
	if !ok {
		return
	}

	bookings, err := h.history.Execute(c.Request.Context(), cred)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, dto.FromBookings(bookings))
}

// ======================================================
// ADMIN: PAY-ON-ARRIVAL
// ======================================================

func (h *BookingHandler) Pending(c *gin.Context) {
	cred, ok := credentialOrAbort(c)
	if !ok {
		return
	}

	bookings, err := h.pending.Execute(c.Request.Context(), cred)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, dto.FromBookings(bookings))
}

func (h *BookingHandler) ConfirmPayment(c *gin.Context) {
	cred, ok := credentialOrAbort(c)
	if !ok {
		return
	}
	bookingID, ok := paramID(c, "id")
	if !ok {
		return
	}

	b, err := h.confirmPayment.Execute(c.Request.Context(), cred, bookingID)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, dto.FromBooking(*b))
}
