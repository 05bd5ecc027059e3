package sessions

import "time"

// Credential es el registro de login (tabla users). El hash nunca sale del servidor.
type Credential struct {
	ID           string
	MobileNumber string
	PasswordHash string // bcrypt
	Role         string
}

// Session es la fila del ledger de sesiones; el token firmado referencia su ID.
type Session struct {
	ID       string
	UserID   string
	Role     string
	Username string

	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Active: no revocada y no vencida.
func (s Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// HomeView es la vista que elige el dispatcher según el rol.
type HomeView string

const (
	HomeAdmin          HomeView = "admin"
	HomeProfileManager HomeView = "profile_manager"
)
