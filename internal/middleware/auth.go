package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/court-reservations/internal/auth"
	domain "github.com/BruksfildServices01/court-reservations/internal/domain/booking"
	"github.com/BruksfildServices01/court-reservations/internal/httperr"
)

const (
	ContextUserID    = "userID"
	ContextUserRole  = "userRole"
	ContextUserEmail = "userEmail"
)

func AuthMiddleware(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Falta el encabezado Authorization.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Formato de Authorization inválido.")
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Token inválido o expirado.")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextUserEmail, claims.Email)

		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserRole) != role {
			httperr.Abort(c, http.StatusForbidden, "forbidden", "No tienes permiso para esta acción.")
			return
		}
		c.Next()
	}
}

// Credential reads the caller set by AuthMiddleware.
func Credential(c *gin.Context) (domain.Credential, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return domain.Credential{}, false
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		return domain.Credential{}, false
	}
	return domain.Credential{
		UserID: id,
		Role:   c.GetString(ContextUserRole),
		Email:  c.GetString(ContextUserEmail),
	}, true
}
