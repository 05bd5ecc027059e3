package web

import (
	"errors"
	"net/http"

	"pet-profiles/internal/domain/pets"

	"github.com/go-chi/chi/v5"
)

// profilePage: una sola lectura por username. Cualquier fallo es terminal.
func (h *Handler) profilePage(w http.ResponseWriter, r *http.Request) {
	p, err := h.pets.GetByUsername(r.Context(), chi.URLParam(r, "petusername"))
	if err != nil {
		h.renderNotFound(w, r, err)
		return
	}
	pp := pets.NewPublicProfile(p)
	h.render(w, r, http.StatusOK, pageProfile, pageData{Title: pp.Name, Profile: pp})
}

// shareLocation redirige al deep link de WhatsApp con las coordenadas del visitante.
func (h *Handler) shareLocation(w http.ResponseWriter, r *http.Request) {
	if _, err := h.pets.GetByUsername(r.Context(), chi.URLParam(r, "petusername")); err != nil {
		h.renderNotFound(w, r, err)
		return
	}
	link, ok := pets.ShareLocationFromQuery(r)
	if !ok {
		http.Error(w, pets.MsgLocationFailed, http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, link, http.StatusFound)
}

func (h *Handler) renderNotFound(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil && !errors.Is(err, pets.ErrNotFound) {
		h.log.Warn("web: pet lookup failed", map[string]any{"path": r.URL.Path, "err": err})
	}
	h.render(w, r, http.StatusNotFound, pageNotFound, pageData{Title: pets.MsgPetNotFound})
}
