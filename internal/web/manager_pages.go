package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"pet-profiles/internal/domain/pets"
	"pet-profiles/internal/domain/uploads"
	"pet-profiles/internal/policy"

	"github.com/go-chi/chi/v5"
)

// requireManager: las páginas del gestor son solo para usuarios estándar.
func (h *Handler) requireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := sessionFrom(r)
		if !policy.Allows(claims, policy.ActionManageProfiles) {
			http.Redirect(w, r, pathHome, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// renderList trae la lista en cada render; un fallo se muestra inline.
func (h *Handler) renderList(w http.ResponseWriter, r *http.Request, errMsg string) {
	claims, _ := sessionFrom(r)

	list, err := h.pets.ListByOwner(r.Context(), claims.UserID)
	status := http.StatusOK
	if err != nil {
		h.log.Error("web: list pets failed", map[string]any{"user_id": claims.UserID, "err": err})
		list = nil
		errMsg = pets.MsgFetchFailed
		status = http.StatusInternalServerError
	} else if errMsg != "" {
		status = http.StatusInternalServerError
	}

	h.render(w, r, status, pageList, pageData{Title: "My pets", Pets: list, Error: errMsg})
}

func (h *Handler) newPetPage(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, pets.NewCreateForm(), "")
}

func (h *Handler) editPetPage(w http.ResponseWriter, r *http.Request) {
	claims, _ := sessionFrom(r)

	p, err := h.pets.GetOwned(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		h.renderNotFound(w, r, err)
		return
	}
	h.renderForm(w, r, http.StatusOK, pets.NewEditForm(p), "")
}

// submitPet atiende alta (POST /pets) y edición (POST /pets/{id}).
// El botón "toggle" solo invierte un flag y vuelve a mostrar el formulario.
func (h *Handler) submitPet(w http.ResponseWriter, r *http.Request) {
	claims, _ := sessionFrom(r)

	form := pets.NewCreateForm()
	if id := chi.URLParam(r, "id"); id != "" {
		form = pets.Form{Mode: pets.FormEdit, ID: id}
	}

	staged, uploadErr := h.readForm(r, claims.UserID, &form)
	if uploadErr != nil {
		h.log.Warn("web: upload rejected", map[string]any{"user_id": claims.UserID, "err": uploadErr})
		// Un request cortado por tamaño puede perder los campos; en edición se
		// vuelve al perfil guardado en vez de mostrar el formulario vacío.
		if form.Editing() && strings.TrimSpace(form.Details.Username) == "" {
			if p, err := h.pets.GetOwned(r.Context(), form.ID, claims.UserID); err == nil {
				form = pets.NewEditForm(p)
			}
		}
		h.renderForm(w, r, uploads.StatusFor(uploadErr), form, uploads.MsgUploadFailed)
		return
	}
	if staged != "" {
		form.SetImageURL(staged)
	}

	if t := pets.Field(r.PostFormValue("toggle")); t != "" {
		if t.Valid() {
			form.Toggle(t)
		}
		h.renderForm(w, r, http.StatusOK, form, "")
		return
	}

	if _, err := h.pets.Submit(r.Context(), claims.UserID, form); err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			h.renderNotFound(w, r, err)
			return
		}
		status, msg := submitError(err)
		if status == http.StatusInternalServerError {
			h.log.Error("web: submit failed", map[string]any{"user_id": claims.UserID, "err": err})
		}
		// Si falló la escritura la imagen nueva ya se descartó; se vuelve a la persistida.
		if !errors.Is(err, pets.ErrInvalidInput) {
			form.SetImageURL(h.persistedImage(r, form, claims.UserID))
		}
		h.renderForm(w, r, status, form, msg)
		return
	}

	// Post/Redirect/Get: la lista se vuelve a pedir una sola vez.
	http.Redirect(w, r, pathHome, http.StatusSeeOther)
}

func (h *Handler) persistedImage(r *http.Request, f pets.Form, ownerUserID string) string {
	if !f.Editing() {
		return ""
	}
	p, err := h.pets.GetOwned(r.Context(), f.ID, ownerUserID)
	if err != nil {
		return ""
	}
	return p.ImageURL
}

func (h *Handler) deletePet(w http.ResponseWriter, r *http.Request) {
	claims, _ := sessionFrom(r)

	if err := h.pets.Delete(r.Context(), chi.URLParam(r, "id"), claims.UserID); err != nil {
		h.log.Warn("web: delete failed", map[string]any{"user_id": claims.UserID, "err": err})
		h.renderList(w, r, pets.MsgDeleteFailed)
		return
	}
	http.Redirect(w, r, pathHome, http.StatusSeeOther)
}

// readForm vuelca campos y flags del request al formulario. Si el request
// trae un archivo lo deja staged y devuelve su URL pública.
func (h *Handler) readForm(r *http.Request, ownerUserID string, f *pets.Form) (string, error) {
	var (
		staged    string
		uploadErr error
	)

	switch {
	case isMultipart(r) && h.uploads != nil:
		u, err := uploads.StageFromRequest(r, h.uploads, ownerUserID)
		switch {
		case err == nil:
			staged = u.PublicURL
		case errors.Is(err, uploads.ErrNoFile):
		default:
			uploadErr = err
		}
	case isMultipart(r):
		_ = r.ParseMultipartForm(1 << 20)
	default:
		_ = r.ParseForm()
	}

	f.Details = pets.Details{
		Username:     r.PostFormValue("pet_unique_username"),
		Name:         r.PostFormValue("pet_name"),
		MobileNumber: r.PostFormValue("mobile_number"),
		ImageURL:     r.PostFormValue("pet_image_url"),
	}
	for _, fld := range pets.OptionalFields {
		f.Details = f.Details.With(fld, r.PostFormValue(string(fld)))
		f.Visibility = f.Visibility.Set(fld, formBool(r.PostFormValue(fld.VisibilityColumn())))
	}
	return staged, uploadErr
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, f pets.Form, errMsg string) {
	if h.uploads != nil && f.Details.ImageURL != "" {
		claims, _ := sessionFrom(r)
		if err := h.uploads.Touch(r.Context(), claims.UserID, f.Details.ImageURL); err != nil {
			h.log.Warn("web: touch upload failed", map[string]any{"user_id": claims.UserID, "err": err})
		}
	}

	action := "/pets"
	title := "New pet"
	if f.Editing() {
		action = "/pets/" + f.ID
		title = "Edit pet"
	}
	h.render(w, r, status, pageForm, pageData{
		Title:  title,
		Error:  errMsg,
		Form:   f,
		Action: action,
		Fields: formRows(f),
	})
}

func submitError(err error) (int, string) {
	switch {
	case errors.Is(err, pets.ErrInvalidInput):
		return http.StatusBadRequest, strings.TrimPrefix(err.Error(), pets.ErrInvalidInput.Error()+": ")
	case errors.Is(err, pets.ErrUsernameTaken):
		return http.StatusConflict, pets.MsgUsernameTaken
	case errors.Is(err, pets.ErrNotFound):
		return http.StatusNotFound, pets.MsgPetNotFound
	default:
		return http.StatusInternalServerError, pets.MsgSubmitFailed
	}
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// formBool acepta lo que mandan checkbox ("on") y hidden ("true").
func formBool(v string) bool {
	if v == "on" {
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}
