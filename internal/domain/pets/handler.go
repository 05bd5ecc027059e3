package pets

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"time"

	"pet-profiles/internal/middleware"
	"pet-profiles/internal/platform/logger"
	"pet-profiles/internal/policy"

	"github.com/go-chi/chi/v5"
)

// Mensajes que ve el usuario (mismos textos que la UI).
const (
	MsgFetchFailed    = "Error fetching pets"
	MsgSubmitFailed   = "Error submitting pet profile"
	MsgDeleteFailed   = "Error deleting pet profile"
	MsgUsernameTaken  = "That username is already taken"
	MsgPetNotFound    = "Pet not found"
	MsgLocationFailed = "Unable to get your location. Please try again."
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}

	// Gestor de perfiles (usuario estándar autenticado)
	r.Route("/api/pets", func(pr chi.Router) {
		pr.Use(middleware.RequireAction(policy.ActionManageProfiles))

		pr.Get("/", listPetsHandler(svc, log))
		pr.Post("/", createPetHandler(svc, log))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Put("/{petID}", updatePetHandler(svc, log))
		pr.Delete("/{petID}", deletePetHandler(svc, log))
	})

	// Visor público (sin sesión)
	r.Route("/api/public/pets/{username}", func(pr chi.Router) {
		pr.Get("/", publicProfileHandler(svc))
		pr.Get("/contact.vcf", ContactCardHandler(svc, "username"))
		pr.Get("/share-location", shareLocationHandler(svc))
	})
}

// petRequest es el registro completo que manda el formulario (campos + flags).
type petRequest struct {
	Username     string `json:"pet_unique_username"`
	Name         string `json:"pet_name"`
	MobileNumber string `json:"mobile_number"`
	ImageURL     string `json:"pet_image_url"`

	Description string `json:"description"`
	WhatsApp    string `json:"whatsapp"`
	Location    string `json:"location"`
	Instagram   string `json:"instagram"`
	Gallery     string `json:"gallery"`
	Address     string `json:"address"`

	DescriptionVisibility bool `json:"description_visibility"`
	WhatsAppVisibility    bool `json:"whatsapp_visibility"`
	LocationVisibility    bool `json:"location_visibility"`
	InstagramVisibility   bool `json:"instagram_visibility"`
	GalleryVisibility     bool `json:"gallery_visibility"`
	AddressVisibility     bool `json:"address_visibility"`
}

// petResponse representa un perfil de mascota devuelto al dueño.
type petResponse struct {
	ID          string `json:"id"`
	OwnerUserID string `json:"owner_user_id"`
	petRequest
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (req petRequest) form(mode FormMode, id string) Form {
	return Form{
		Mode: mode,
		ID:   id,
		Details: Details{
			Username:     req.Username,
			Name:         req.Name,
			MobileNumber: req.MobileNumber,
			ImageURL:     req.ImageURL,
			Description:  req.Description,
			WhatsApp:     req.WhatsApp,
			Location:     req.Location,
			Instagram:    req.Instagram,
			Gallery:      req.Gallery,
			Address:      req.Address,
		},
		Visibility: Visibility{
			Description: req.DescriptionVisibility,
			WhatsApp:    req.WhatsAppVisibility,
			Location:    req.LocationVisibility,
			Instagram:   req.InstagramVisibility,
			Gallery:     req.GalleryVisibility,
			Address:     req.AddressVisibility,
		},
	}
}

// listPetsHandler godoc
// @Summary Listar mis mascotas
// @Description Perfiles del usuario de la sesión, más nuevos primero.
// @Tags pets
// @Produce json
// @Param Authorization header string false "Bearer token (o cookie pet_session)"
// @Success 200 {array} petResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 500 {string} string "Error fetching pets"
// @Router /api/pets [get]
func listPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			log.Error("pets: list failed", map[string]any{"user_id": claims.UserID, "err": err})
			http.Error(w, MsgFetchFailed, http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createPetHandler godoc
// @Summary Crear perfil de mascota
// @Description Inserta el registro completo (campos + flags de visibilidad). El owner sale de la sesión.
// @Tags pets
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token (o cookie pet_session)"
// @Param payload body petRequest true "Perfil completo"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 409 {string} string "username tomado"
// @Router /api/pets [post]
func createPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Submit(r.Context(), claims.UserID, req.form(FormCreate, ""))
		if err != nil {
			writeSubmitError(w, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		p, err := svc.GetOwned(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar perfil de mascota
// @Description Reemplaza el registro completo por id. Solo el dueño. Gana la última escritura.
// @Tags pets
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token (o cookie pet_session)"
// @Param petID path string true "ID del perfil"
// @Param payload body petRequest true "Perfil completo"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 404 {string} string "pet not found"
// @Failure 409 {string} string "username tomado"
// @Router /api/pets/{petID} [put]
func updatePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Submit(r.Context(), claims.UserID, req.form(FormEdit, chi.URLParam(r, "petID")))
		if err != nil {
			writeSubmitError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// deletePetHandler godoc
// @Summary Borrar perfil de mascota
// @Tags pets
// @Param Authorization header string false "Bearer token (o cookie pet_session)"
// @Param petID path string true "ID del perfil"
// @Success 204
// @Failure 404 {string} string "pet not found"
// @Router /api/pets/{petID} [delete]
func deletePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		err := svc.Delete(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		switch {
		case err == nil:
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, ErrNotFound):
			http.Error(w, "pet not found", http.StatusNotFound)
		default:
			log.Error("pets: delete failed", map[string]any{"user_id": claims.UserID, "err": err})
			http.Error(w, MsgDeleteFailed, http.StatusInternalServerError)
		}
	}
}

// publicProfileHandler godoc
// @Summary Perfil público por username
// @Description Devuelve solo los campos con flag de visibilidad activo y valor no vacío.
// @Tags public
// @Produce json
// @Param username path string true "pet_unique_username"
// @Success 200 {object} PublicProfile
// @Failure 404 {string} string "Pet not found"
// @Router /api/public/pets/{username} [get]
func publicProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByUsername(r.Context(), chi.URLParam(r, "username"))
		if err != nil {
			http.Error(w, MsgPetNotFound, http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, NewPublicProfile(p))
	}
}

// ContactCardHandler sirve el vCard de "guardar contacto". param es el nombre del
// parámetro de ruta con el username (la web y la API usan nombres distintos).
func ContactCardHandler(svc *Service, param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByUsername(r.Context(), chi.URLParam(r, param))
		if err != nil {
			http.Error(w, MsgPetNotFound, http.StatusNotFound)
			return
		}

		filename, body := ContactCard(p)
		w.Header().Set("Content-Type", "text/vcard; charset=utf-8")
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}

func shareLocationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := svc.GetByUsername(r.Context(), chi.URLParam(r, "username")); err != nil {
			http.Error(w, MsgPetNotFound, http.StatusNotFound)
			return
		}

		link, ok := ShareLocationFromQuery(r)
		if !ok {
			http.Error(w, MsgLocationFailed, http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"url": link})
	}
}

// ShareLocationFromQuery lee ?lat=&lng= y arma el deep link; ok=false si faltan o no son válidas.
func ShareLocationFromQuery(r *http.Request) (string, bool) {
	lat, err1 := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, err2 := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err1 != nil || err2 != nil || !ValidCoordinates(lat, lng) {
		return "", false
	}
	return ShareLocationURL(lat, lng), true
}

func writeSubmitError(w http.ResponseWriter, log logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrUsernameTaken):
		http.Error(w, MsgUsernameTaken, http.StatusConflict)
	default:
		log.Error("pets: submit failed", map[string]any{"err": err})
		http.Error(w, MsgSubmitFailed, http.StatusInternalServerError)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		petRequest: petRequest{
			Username:              p.Username,
			Name:                  p.Name,
			MobileNumber:          p.MobileNumber,
			ImageURL:              p.ImageURL,
			Description:           p.Description,
			WhatsApp:              p.WhatsApp,
			Location:              p.Location,
			Instagram:             p.Instagram,
			Gallery:               p.Gallery,
			Address:               p.Address,
			DescriptionVisibility: p.Visibility.Description,
			WhatsAppVisibility:    p.Visibility.WhatsApp,
			LocationVisibility:    p.Visibility.Location,
			InstagramVisibility:   p.Visibility.Instagram,
			GalleryVisibility:     p.Visibility.Gallery,
			AddressVisibility:     p.Visibility.Address,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
