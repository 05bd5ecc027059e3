package web

import (
	"errors"
	"net/http"

	"pet-profiles/internal/domain/sessions"
)

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageLogin, pageData{Title: "Login"})
}

func (h *Handler) loginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	mobile := r.PostFormValue("mobile_number")

	res, err := h.sessions.Login(r.Context(), mobile, r.PostFormValue("password"))
	if err != nil {
		status := http.StatusUnauthorized
		msg := sessions.MsgInvalidCredentials
		if !errors.Is(err, sessions.ErrInvalidCredentials) {
			h.log.Error("web: login failed", map[string]any{"err": err})
			status = http.StatusInternalServerError
			msg = "Login failed. Please try again."
		}
		h.render(w, r, status, pageLogin, pageData{Title: "Login", Error: msg, MobileNumber: mobile})
		return
	}

	h.setCookie(w, res.Token, res.Session.ExpiresAt)
	http.Redirect(w, r, pathHome, http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	claims, _ := sessionFrom(r)
	if err := h.sessions.Logout(r.Context(), claims); err != nil {
		h.log.Warn("web: logout failed", map[string]any{"session_id": claims.SessionID, "err": err})
	}
	h.clearCookie(w)
	http.Redirect(w, r, pathLogin, http.StatusSeeOther)
}

// home es el dispatcher por rol.
func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	claims, _ := sessionFrom(r)
	if sessions.HomeViewFor(claims.Role) == sessions.HomeAdmin {
		h.render(w, r, http.StatusOK, pageAdmin, pageData{Title: "Admin"})
		return
	}
	h.renderList(w, r, "")
}
