package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/court-reservations/internal/httperr"
	"github.com/BruksfildServices01/court-reservations/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	cred, ok := credentialOrAbort(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.db.First(&user, cred.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "Usuario no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_user", "Error al obtener el usuario.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userView(&user)})
}
