package uploads

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"pet-profiles/internal/middleware"
	"pet-profiles/internal/platform/logger"
	"pet-profiles/internal/policy"

	"github.com/go-chi/chi/v5"
)

const (
	MsgUploadFailed = "Error uploading file"
	FormField       = "file"

	// margen para headers, boundaries y campos de texto del multipart
	multipartOverhead = 1 << 20
	maxFieldBytes     = 64 << 10
	// un archivo más grande que MaxBytes se descarta leyendo; más allá de esto se corta el request
	bodyLimitFactor = 4
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}

	r.With(middleware.RequireAction(policy.ActionManageProfiles)).
		Post("/api/uploads", uploadHandler(svc, log))
}

type uploadResponse struct {
	URL         string `json:"url"`
	Path        string `json:"path"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// uploadHandler godoc
// @Summary Subir imagen
// @Description Guarda la imagen con nombre aleatorio (conserva la extensión) y devuelve su URL pública. La subida queda staged hasta que un perfil la guarde.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param Authorization header string false "Bearer token (o cookie pet_session)"
// @Param file formData file true "Imagen"
// @Success 201 {object} uploadResponse
// @Failure 400 {string} string "Error uploading file"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 413 {string} string "Error uploading file"
// @Failure 415 {string} string "Error uploading file"
// @Router /api/uploads [post]
func uploadHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		u, err := StageFromRequest(r, svc, claims.UserID)
		if err != nil {
			log.Warn("uploads: upload rejected", map[string]any{"user_id": claims.UserID, "err": err})
			http.Error(w, MsgUploadFailed, StatusFor(err))
			return
		}

		writeJSON(w, http.StatusCreated, uploadResponse{
			URL:         u.PublicURL,
			Path:        u.Path,
			ContentType: u.ContentType,
			Size:        u.Size,
		})
	}
}

// StageFromRequest recorre el multipart en streaming y deja staged la parte "file".
// Los campos de texto quedan en r.PostForm aunque la imagen se rechace: solo la
// parte del archivo se limita a MaxBytes. También lo usan las páginas web.
func StageFromRequest(r *http.Request, svc *Service, ownerUserID string) (Upload, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, svc.MaxBytes()*bodyLimitFactor+multipartOverhead)
	mr, err := r.MultipartReader()
	if err != nil {
		return Upload{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	r.PostForm = url.Values{}
	r.Form = url.Values{}
	for k, vs := range r.URL.Query() {
		r.Form[k] = append(r.Form[k], vs...)
	}

	var (
		staged   Upload
		stageErr = ErrNoFile
		seen     bool
	)
	fail := func(err error) (Upload, error) {
		if staged.PublicURL != "" {
			_ = svc.Discard(r.Context(), ownerUserID, staged.PublicURL)
		}
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return Upload{}, ErrTooLarge
		}
		return Upload{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fail(err)
		}

		name := p.FormName()
		switch {
		case name == "":
		case p.FileName() == "":
			v, err := io.ReadAll(io.LimitReader(p, maxFieldBytes+1))
			if err != nil {
				return fail(err)
			}
			if len(v) > maxFieldBytes {
				return fail(fmt.Errorf("field %q too long", name))
			}
			r.PostForm.Add(name, string(v))
			r.Form.Add(name, string(v))
		case name == FormField && !seen:
			// Lo que Stage no lee de la parte lo descarta NextPart.
			seen = true
			staged, stageErr = svc.Stage(r.Context(), ownerUserID, p.FileName(), p)
			var mbe *http.MaxBytesError
			if errors.As(stageErr, &mbe) {
				return Upload{}, ErrTooLarge
			}
		}
		_ = p.Close()
	}

	if stageErr != nil {
		return Upload{}, stageErr
	}
	return staged, nil
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrNotAnImage):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrEmptyFile), errors.Is(err, ErrNoFile),
		errors.Is(err, ErrMalformed), errors.Is(err, ErrInvalidUser):
		return http.StatusBadRequest
	default:
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return http.StatusRequestEntityTooLarge
		}
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
