package router

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"vet-clinic/internal/adapters/storage/sqlstore"
	"vet-clinic/internal/domain/clients"
	"vet-clinic/internal/domain/journal"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/visits"
	"vet-clinic/internal/middleware"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/web"
)

type Options struct {
	Store  *sqlstore.Store
	Logger logger.Logger // puede ser nil
}

type homeView struct {
	Title string
}

func NewRouter(opts Options) (http.Handler, error) {
	if opts.Store == nil {
		return nil, errors.New("router: store is required")
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	view, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID(log))
	r.Use(middleware.AccessLog)
	r.Use(middleware.Recover)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		view.HTML(w, req, http.StatusOK, "home", homeView{Title: "Vet clinic"})
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := opts.Store.Ping(req.Context()); err != nil {
			logger.FromContext(req.Context()).Error("health check failed", map[string]any{"err": err})
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Services; el orden sigue las dependencias clients -> pets -> visits.
	clientsSvc := clients.NewService(sqlstore.NewClientsRepo(opts.Store))
	petsSvc := pets.NewService(sqlstore.NewPetsRepo(opts.Store), clientsSvc)
	visitsSvc := visits.NewService(sqlstore.NewVisitsRepo(opts.Store), petsSvc)
	journalSvc := journal.NewService(sqlstore.NewJournalRepo(opts.Store))

	clients.RegisterRoutes(r, view, clientsSvc, petsSvc, visitsSvc)
	pets.RegisterRoutes(r, view, petsSvc, visitsSvc)
	visits.RegisterRoutes(r, view, visitsSvc)
	journal.RegisterRoutes(r, view, journalSvc)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		web.NotFound(w, "Not found")
	})

	return r, nil
}
