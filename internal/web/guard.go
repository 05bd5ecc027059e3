package web

import (
	"net/http"
	"strings"
	"time"

	"pet-profiles/internal/middleware"
	"pet-profiles/internal/ports/auth"
)

const (
	pathLogin = "/login"
	pathHome  = "/"
)

func sessionFrom(r *http.Request) (auth.Claims, bool) {
	return middleware.GetClaims(r.Context())
}

// RequireSession: sin sesión verificada => 302 a /login.
// Una cookie que ya no verifica (vencida o revocada) se borra.
func (h *Handler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := sessionFrom(r); !ok {
			if _, err := r.Cookie(middleware.SessionCookie); err == nil {
				h.clearCookie(w)
			}
			http.Redirect(w, r, pathLogin, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RedirectIfSession: con sesión => 302 a /.
func (h *Handler) RedirectIfSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := sessionFrom(r); ok {
			http.Redirect(w, r, pathHome, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CatchAll atiende rutas desconocidas: / con sesión, /login sin sesión.
// Bajo /api responde 404 como cualquier API.
func (h *Handler) CatchAll(w http.ResponseWriter, r *http.Request) {
	if isAPIPath(r.URL.Path) {
		http.NotFound(w, r)
		return
	}
	if _, ok := sessionFrom(r); ok {
		http.Redirect(w, r, pathHome, http.StatusFound)
		return
	}
	http.Redirect(w, r, pathLogin, http.StatusFound)
}

// MethodNotAllowed: mismo criterio que CatchAll fuera de /api.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	if isAPIPath(r.URL.Path) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.CatchAll(w, r)
}

func isAPIPath(p string) bool {
	return p == "/api" || strings.HasPrefix(p, "/api/")
}

func (h *Handler) setCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
