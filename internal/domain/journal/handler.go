package journal

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"vet-clinic/internal/web"
)

func RegisterRoutes(r chi.Router, view *web.Renderer, svc *Service) {
	r.Get(Path, journalHandler(view, svc))
}

type journalView struct {
	Title string
	Page
}

func journalHandler(view *web.Renderer, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := svc.Build(r.Context(), svc.ParseQuery(r.URL.Query()))
		if err != nil {
			web.ServerError(w, r, err)
			return
		}
		view.HTML(w, r, http.StatusOK, "journal/index", journalView{Title: "Visit journal", Page: page})
	}
}
