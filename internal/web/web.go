package web

import (
	"html/template"

	"pet-profiles/internal/domain/pets"
	"pet-profiles/internal/domain/sessions"
	"pet-profiles/internal/domain/uploads"
	"pet-profiles/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

type Options struct {
	Sessions *sessions.Service
	Pets     *pets.Service
	Uploads  *uploads.Service // nil => el formulario no acepta archivos

	Log          logger.Logger
	AppName      string
	CookieSecure bool
}

// Handler sirve las páginas HTML (login, gestor de perfiles, visor público).
type Handler struct {
	sessions *sessions.Service
	pets     *pets.Service
	uploads  *uploads.Service

	log          logger.Logger
	appName      string
	cookieSecure bool
	pages        map[string]*template.Template
}

func New(opts Options) (*Handler, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	appName := opts.AppName
	if appName == "" {
		appName = "pet-profiles"
	}
	return &Handler{
		sessions:     opts.Sessions,
		pets:         opts.Pets,
		uploads:      opts.Uploads,
		log:          log,
		appName:      appName,
		cookieSecure: opts.CookieSecure,
		pages:        pages,
	}, nil
}

// Register monta las rutas web. Las claims ya tienen que estar en el contexto
// (middleware.AuthContext corre antes).
func (h *Handler) Register(r chi.Router) {
	// Públicas
	r.With(h.RedirectIfSession).Get("/login", h.loginPage)
	r.With(h.RedirectIfSession).Post("/login", h.loginSubmit)

	r.Route("/petprofile/{petusername}", func(pr chi.Router) {
		pr.Get("/", h.profilePage)
		pr.Get("/contact.vcf", pets.ContactCardHandler(h.pets, "petusername"))
		pr.Get("/share-location", h.shareLocation)
	})

	// Protegidas
	r.Group(func(pr chi.Router) {
		pr.Use(h.RequireSession)

		pr.Get("/", h.home)
		pr.Post("/logout", h.logout)

		pr.Group(func(mr chi.Router) {
			mr.Use(h.requireManager)
			mr.Get("/pets/new", h.newPetPage)
			mr.Post("/pets", h.submitPet)
			mr.Get("/pets/{id}/edit", h.editPetPage)
			mr.Post("/pets/{id}", h.submitPet)
			mr.Post("/pets/{id}/delete", h.deletePet)
		})
	})

	r.NotFound(h.CatchAll)
	r.MethodNotAllowed(h.MethodNotAllowed)
}
