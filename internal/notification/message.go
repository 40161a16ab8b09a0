package notification

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/court-reservations/internal/domain/booking"
	"github.com/BruksfildServices01/court-reservations/internal/dto"
	"github.com/BruksfildServices01/court-reservations/internal/models"
)

// Message is one rendered booking confirmation.
type Message struct {
	ID        string
	To        string
	Subject   string
	Body      string
	CourtName string
	Booking   dto.BookingDTO
}

func StatusLabel(status string) string {
	switch domain.Status(status) {
	case domain.StatusConfirmed:
		return "Confirmada"
	case domain.StatusPending:
		return "Pendiente (pago en sede)"
	case domain.StatusCancelled:
		return "Cancelada"
	default:
		return status
	}
}

// Render builds the confirmation for a committed booking.
func Render(b models.Booking, courtName, to string) Message {
	view := dto.FromBooking(b)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Hola,\n\n")
	fmt.Fprintf(&sb, "Tu reserva #%d fue registrada.\n\n", view.ID)
	fmt.Fprintf(&sb, "Cancha:  %s\n", courtName)
	fmt.Fprintf(&sb, "Fecha:   %s\n", view.Date)
	fmt.Fprintf(&sb, "Horario: %s - %s\n", view.StartTime, view.EndTime)
	fmt.Fprintf(&sb, "Monto:   S/. %s\n", view.Amount.StringFixed(2))
	fmt.Fprintf(&sb, "Estado:  %s\n", StatusLabel(view.Status))

	return Message{
		ID:        uuid.NewString(),
		To:        to,
		Subject:   fmt.Sprintf("Reserva #%d - %s", view.ID, StatusLabel(view.Status)),
		Body:      sb.String(),
		CourtName: courtName,
		Booking:   view,
	}
}
