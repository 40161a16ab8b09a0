package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/court-reservations/internal/httperr"
	"github.com/BruksfildServices01/court-reservations/internal/httpresp"
	"github.com/BruksfildServices01/court-reservations/internal/models"
)

type VenueHandler struct {
	db *gorm.DB
}

func NewVenueHandler(db *gorm.DB) *VenueHandler {
	return &VenueHandler{db: db}
}

type CreateVenueRequest struct {
	Name     string `json:"name" binding:"required"`
	Address  string `json:"address"`
	District string `json:"district"`
	PhotoURL string `json:"photo_url"`
}

func (h *VenueHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Venue{})

	if district := strings.TrimSpace(c.Query("district")); district != "" {
		q = q.Where("LOWER(district) = ?", strings.ToLower(district))
	}

	var venues []models.Venue
	if err := q.Order("name ASC").Find(&venues).Error; err != nil {
		httperr.Internal(c, "failed_to_list_venues", "Error al listar los locales.")
		return
	}

	httpresp.List(c, venues)
}

func (h *VenueHandler) Create(c *gin.Context) {
	var req CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	venue := models.Venue{
		Name:     strings.TrimSpace(req.Name),
		Address:  req.Address,
		District: req.District,
		PhotoURL: req.PhotoURL,
	}

	if err := h.db.Create(&venue).Error; err != nil {
		httperr.Internal(c, "failed_to_create_venue", "Error al crear el local.")
		return
	}

	c.JSON(http.StatusCreated, venue)
}
