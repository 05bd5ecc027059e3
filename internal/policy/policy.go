package policy

import (
	"strings"

	"pet-profiles/internal/ports/auth"
)

// Action es una capacidad que el servidor autoriza. La vista que elige el cliente
// según el rol es solo conveniencia de UI; esto es lo que de verdad se aplica.
type Action string

const (
	ActionManageProfiles Action = "profiles:manage"
	ActionAdminView      Action = "admin:view"
)

// Allows responde si la sesión puede ejecutar la acción.
// Admin no tiene CRUD de perfiles; cualquier rol no-admin es usuario estándar.
func Allows(c auth.Claims, a Action) bool {
	if strings.TrimSpace(c.UserID) == "" {
		return false
	}
	switch a {
	case ActionAdminView:
		return c.IsAdmin()
	case ActionManageProfiles:
		return !c.IsAdmin()
	default:
		return false
	}
}

// Resolve devuelve el mapa completo de acciones permitidas (lo expone /api/me).
func Resolve(c auth.Claims) map[Action]bool {
	return map[Action]bool{
		ActionManageProfiles: Allows(c, ActionManageProfiles),
		ActionAdminView:      Allows(c, ActionAdminView),
	}
}
