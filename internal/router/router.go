package router

import (
	"fmt"
	"net/http"
	"time"

	_ "pet-profiles/docs"

	"pet-profiles/internal/adapters/auth/hmacjwt"
	"pet-profiles/internal/domain/pets"
	"pet-profiles/internal/domain/sessions"
	"pet-profiles/internal/domain/uploads"
	"pet-profiles/internal/middleware"
	"pet-profiles/internal/platform/logger"
	"pet-profiles/internal/web"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// ServiceConfig son los parámetros de los servicios de dominio.
type ServiceConfig struct {
	AppName        string
	JWTSecret      string
	SessionTTL     time.Duration
	MaxUploadBytes int64
	OrphanTTL      time.Duration
}

type Services struct {
	Sessions   *sessions.Service
	Pets       *pets.Service
	Uploads    *uploads.Service
	Reconciler *uploads.Reconciler
}

func NewServices(b *Backends, cfg ServiceConfig, log logger.Logger) (*Services, error) {
	if log == nil {
		log = logger.Nop()
	}
	codec, err := hmacjwt.NewCodec(cfg.JWTSecret, cfg.AppName)
	if err != nil {
		return nil, err
	}

	uploadsSvc := uploads.NewService(b.Uploads, b.Objects, cfg.MaxUploadBytes, log.With(map[string]any{"module": "uploads"}))
	petsSvc := pets.NewService(b.Pets, uploadsSvc, log.With(map[string]any{"module": "pets"}))

	return &Services{
		Sessions:   sessions.NewService(b.Credentials, b.Sessions, codec, cfg.SessionTTL, log.With(map[string]any{"module": "sessions"})),
		Pets:       petsSvc,
		Uploads:    uploadsSvc,
		Reconciler: uploads.NewReconciler(uploadsSvc, petsSvc, cfg.OrphanTTL, log.With(map[string]any{"module": "reconciler"})),
	}, nil
}

type Options struct {
	Services *Services
	Log      logger.Logger

	AppName      string
	CookieSecure bool

	// ObjectsHandler sirve UploadsPath si los objetos son locales.
	ObjectsHandler http.Handler
}

func NewRouter(opts Options) (http.Handler, error) {
	if opts.Services == nil {
		return nil, fmt.Errorf("router: services required")
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	svc := opts.Services

	pages, err := web.New(web.Options{
		Sessions:     svc.Sessions,
		Pets:         svc.Pets,
		Uploads:      svc.Uploads,
		Log:          log.With(map[string]any{"module": "web"}),
		AppName:      opts.AppName,
		CookieSecure: opts.CookieSecure,
	})
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(svc.Sessions))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	if opts.ObjectsHandler != nil {
		r.Handle(UploadsPath+"/*", http.StripPrefix(UploadsPath, opts.ObjectsHandler))
	}

	// API JSON
	sessions.RegisterRoutes(r, svc.Sessions, log)
	pets.RegisterRoutes(r, svc.Pets, log)
	uploads.RegisterRoutes(r, svc.Uploads, log)

	// Páginas (incluye el catch-all)
	pages.Register(r)

	return r, nil
}
