package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/court-reservations/internal/auth"
	"github.com/BruksfildServices01/court-reservations/internal/httperr"
	"github.com/BruksfildServices01/court-reservations/internal/models"
	"github.com/BruksfildServices01/court-reservations/internal/validators"
)

type AuthHandler struct {
	db               *gorm.DB
	tokens           *auth.Tokens
	checkEmailDomain bool
}

func NewAuthHandler(db *gorm.DB, tokens *auth.Tokens, checkEmailDomain bool) *AuthHandler {
	return &AuthHandler{db: db, tokens: tokens, checkEmailDomain: checkEmailDomain}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if !validators.IsEmailSyntaxValid(email) {
		httperr.BadRequest(c, "invalid_email", "El correo no es válido.")
		return
	}
	if h.checkEmailDomain && !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "El dominio del correo no parece válido.")
		return
	}

	var count int64
	if err := h.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_check_email", "Error al validar el correo.")
		return
	}
	if count > 0 {
		httperr.Write(c, http.StatusConflict, "email_already_exists", "El correo ya está registrado.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Error al procesar la contraseña.")
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         models.RoleClient,
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Error al crear el usuario.")
		return
	}

	token, err := h.tokens.Issue(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Error al generar el token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  userView(&user),
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	email := validators.NormalizeEmail(req.Email)

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Correo o contraseña incorrectos.")
			return
		}
		httperr.Internal(c, "internal_error", "Error interno.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Correo o contraseña incorrectos.")
		return
	}

	token, err := h.tokens.Issue(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Error al generar el token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  userView(&user),
		"token": token,
	})
}

func userView(u *models.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"phone": u.Phone,
		"role":  u.Role,
	}
}
