package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/court-reservations/internal/httperr"
	"github.com/BruksfildServices01/court-reservations/internal/httpresp"
	"github.com/BruksfildServices01/court-reservations/internal/models"
)

type CourtHandler struct {
	db *gorm.DB
}

func NewCourtHandler(db *gorm.DB) *CourtHandler {
	return &CourtHandler{db: db}
}

// --------- Requests ---------

type CreateCourtRequest struct {
	VenueID      *uint           `json:"venue_id"`
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	Surface      string          `json:"surface"`
	PricePerHour decimal.Decimal `json:"price_per_hour"`
	PhotoURL     string          `json:"photo_url"`
}

// UpdateCourtRequest changes the catalog only. Bookings already made keep
// the amount they were created with.
type UpdateCourtRequest struct {
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Surface      *string          `json:"surface,omitempty"`
	PricePerHour *decimal.Decimal `json:"price_per_hour,omitempty"`
	PhotoURL     *string          `json:"photo_url,omitempty"`
	Active       *bool            `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *CourtHandler) List(c *gin.Context) {
	q := h.db.Preload("Venue")

	if venueID := strings.TrimSpace(c.Query("venue_id")); venueID != "" {
		q = q.Where("venue_id = ?", venueID)
	}

	switch strings.TrimSpace(c.Query("active")) {
	case "false":
		q = q.Where("active = ?", false)
	case "all":
	default:
		q = q.Where("active = ?", true)
	}

	var courts []models.Court
	if err := q.Order("id ASC").Find(&courts).Error; err != nil {
		httperr.Internal(c, "failed_to_list_courts", "Error al listar las canchas.")
		return
	}

	httpresp.List(c, courts)
}

func (h *CourtHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	court, ok := h.find(c, id)
	if !ok {
		return
	}

	httpresp.OK(c, court)
}

func (h *CourtHandler) Create(c *gin.Context) {
	var req CreateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}
	if req.PricePerHour.IsNegative() {
		httperr.BadRequest(c, "invalid_price", "El precio no puede ser negativo.")
		return
	}

	court := models.Court{
		VenueID:      req.VenueID,
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		Surface:      req.Surface,
		PricePerHour: req.PricePerHour,
		PhotoURL:     req.PhotoURL,
		Active:       true,
	}

	if err := h.db.Create(&court).Error; err != nil {
		httperr.Internal(c, "failed_to_create_court", "Error al crear la cancha.")
		return
	}

	c.JSON(http.StatusCreated, court)
}

func (h *CourtHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	court, ok := h.find(c, id)
	if !ok {
		return
	}

	var req UpdateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Name != nil {
		court.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		court.Description = *req.Description
	}
	if req.Surface != nil {
		court.Surface = *req.Surface
	}
	if req.PricePerHour != nil {
		if req.PricePerHour.IsNegative() {
			httperr.BadRequest(c, "invalid_price", "El precio no puede ser negativo.")
			return
		}
		court.PricePerHour = *req.PricePerHour
	}
	if req.PhotoURL != nil {
		court.PhotoURL = *req.PhotoURL
	}
	if req.Active != nil {
		court.Active = *req.Active
	}

	if err := h.db.Save(court).Error; err != nil {
		httperr.Internal(c, "failed_to_update_court", "Error al actualizar la cancha.")
		return
	}

	httpresp.OK(c, court)
}

func (h *CourtHandler) find(c *gin.Context, id uint) (*models.Court, bool) {
	var court models.Court
	if err := h.db.Preload("Venue").First(&court, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "court_not_found", "Cancha no encontrada.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_court", "Error al obtener la cancha.")
		return nil, false
	}
	return &court, true
}
