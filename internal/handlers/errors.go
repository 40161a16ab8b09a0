package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/court-reservations/internal/domain/booking"
	"github.com/BruksfildServices01/court-reservations/internal/httperr"
	"github.com/BruksfildServices01/court-reservations/internal/middleware"
)

type errorInfo struct {
	status  int
	message string
}

var businessErrors = map[string]errorInfo{
	domain.CodeSlotNotFound:         {http.StatusNotFound, "Horario no encontrado."},
	domain.CodeCourtNotFound:        {http.StatusNotFound, "Cancha asociada no encontrada."},
	domain.CodeBookingNotFound:      {http.StatusNotFound, "Reserva no encontrada."},
	domain.CodeSlotUnavailable:      {http.StatusConflict, "El horario no está disponible."},
	domain.CodeSlotNotPayable:       {http.StatusConflict, "El horario ya no está disponible para pago."},
	domain.CodeSlotNotHeld:          {http.StatusConflict, "El horario no está retenido."},
	domain.CodeBookingNotPending:    {http.StatusConflict, "La reserva no está pendiente de pago."},
	domain.CodeNotSlotHolder:        {http.StatusForbidden, "Solo quien retuvo el horario puede liberarlo."},
	domain.CodeForbidden:            {http.StatusForbidden, "No tienes permiso para esta acción."},
	domain.CodeInvalidPaymentMethod: {http.StatusBadRequest, "Método de pago inválido."},
	domain.CodeInvalidDateRange:     {http.StatusBadRequest, "Rango de fechas inválido."},
	domain.CodeInvalidTimeRange:     {http.StatusBadRequest, "Rango de horas inválido."},
	domain.CodeInvalidInterval:      {http.StatusBadRequest, "Intervalo inválido."},
}

// writeError renders use case errors. Anything that is not a business error
// is logged and surfaced as a generic internal error.
func writeError(c *gin.Context, err error) {
	be, ok := httperr.AsBusiness(err)
	if !ok {
		log.Printf("[http] %s %s request_id=%s: %v",
			c.Request.Method, c.FullPath(), c.GetString(middleware.ContextRequestID), err)
		httperr.Internal(c, "internal_error", "Error interno. Intenta nuevamente.")
		return
	}

	info, known := businessErrors[be.Code]
	if !known {
		info = errorInfo{http.StatusUnprocessableEntity, "Operación no permitida."}
	}
	httperr.WriteDetail(c, info.status, be.Code, info.message, be.Detail)
}

func credentialOrAbort(c *gin.Context) (domain.Credential, bool) {
	cred, ok := middleware.Credential(c)
	if !ok {
		httperr.Unauthorized(c, "user_not_in_context", "Sesión inválida.")
	}
	return cred, ok
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}
