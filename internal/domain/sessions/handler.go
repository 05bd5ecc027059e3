package sessions

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pet-profiles/internal/middleware"
	"pet-profiles/internal/platform/logger"
	"pet-profiles/internal/policy"

	"github.com/go-chi/chi/v5"
)

const (
	MsgInvalidCredentials = "Invalid mobile number or password"
	MsgNotAuthenticated   = "User not authenticated"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}

	r.Post("/api/auth/login", loginHandler(svc, log))

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireSession)
		pr.Post("/api/auth/logout", logoutHandler(svc, log))
		pr.Get("/api/me", meHandler())
	})
}

type loginRequest struct {
	MobileNumber string `json:"mobile_number"`
	Password     string `json:"password"`
}

// sessionResponse es lo que el cliente guarda de la sesión.
type sessionResponse struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Username string `json:"username"`
}

type loginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Session   sessionResponse `json:"session"`
}

type meResponse struct {
	sessionResponse
	ExpiresAt    time.Time              `json:"expires_at"`
	HomeView     HomeView               `json:"home_view"`
	Capabilities map[policy.Action]bool `json:"capabilities"`
}

// loginHandler godoc
// @Summary Login con celular + password
// @Description Verifica la credencial en el servidor y devuelve un token firmado con vencimiento.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} loginResponse
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "Invalid mobile number or password"
// @Router /api/auth/login [post]
func loginHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.Login(r.Context(), req.MobileNumber, req.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				http.Error(w, MsgInvalidCredentials, http.StatusUnauthorized)
				return
			}
			log.Error("sessions: login failed", map[string]any{"err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, loginResponse{
			Token:     res.Token,
			ExpiresAt: res.Session.ExpiresAt,
			Session: sessionResponse{
				ID:       res.Session.UserID,
				Role:     res.Session.Role,
				Username: res.Session.Username,
			},
		})
	}
}

// logoutHandler godoc
// @Summary Logout
// @Description Revoca la sesión actual en el servidor.
// @Tags auth
// @Param Authorization header string false "Bearer token (o cookie pet_session)"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Router /api/auth/logout [post]
func logoutHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		if err := svc.Logout(r.Context(), claims); err != nil {
			log.Error("sessions: logout failed", map[string]any{"err": err, "session_id": claims.SessionID})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// meHandler godoc
// @Summary Sesión actual
// @Description Identidad de la sesión, vista de inicio según rol y capacidades aplicadas por el servidor.
// @Tags auth
// @Produce json
// @Param Authorization header string false "Bearer token (o cookie pet_session)"
// @Success 200 {object} meResponse
// @Failure 401 {string} string "unauthorized"
// @Router /api/me [get]
func meHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		writeJSON(w, http.StatusOK, meResponse{
			sessionResponse: sessionResponse{
				ID:       claims.UserID,
				Role:     claims.Role,
				Username: claims.Username,
			},
			ExpiresAt:    claims.ExpiresAt,
			HomeView:     HomeViewFor(claims.Role),
			Capabilities: policy.Resolve(claims),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
