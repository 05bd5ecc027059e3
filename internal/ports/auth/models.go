package auth

import "time"

// Roles conocidos. Cualquier otro valor se trata como usuario estándar.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Claims representa la identidad de una sesión verificada.
type Claims struct {
	UserID    string
	Role      string
	Username  string // identificador visible (mobile_number del login)
	SessionID string
	ExpiresAt time.Time
}

func (c Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
