package booking

import "github.com/BruksfildServices01/court-reservations/internal/models"

// Credential is the decoded bearer token of the caller.
type Credential struct {
	UserID uint
	Role   string
	Email  string
}

func (c Credential) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}
