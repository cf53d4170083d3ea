package pets

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"vet-clinic/internal/domain/validation"
	"vet-clinic/internal/domain/visits"
	"vet-clinic/internal/platform/paging"
	"vet-clinic/internal/web"
)

func RegisterRoutes(r chi.Router, view *web.Renderer, svc *Service, visitsSvc *visits.Service) {
	// Rutas planas: visits cuelga también de /pets/{id}/..., un subrouter
	// montado en /pets se las tragaría.
	r.Get("/pets", listPetsHandler(view, svc))
	r.Get("/pets/{id}", showPetHandler(view, svc, visitsSvc))
	r.Get("/pets/{id}/edit", editPetHandler(view, svc))
	r.Post("/pets/{id}/edit", updatePetHandler(view, svc))
	r.Post("/pets/{id}/delete", deletePetHandler(svc))

	// Alta siempre bajo un cliente.
	r.Get("/clients/{id}/pets/create", newPetHandler(view, svc))
	r.Post("/clients/{id}/pets/create", createPetHandler(view, svc))
}

type listView struct {
	Title string
	Q     string
	Pets  []Pet
	Page  paging.Meta
}

type showView struct {
	Title  string
	Pet    Pet
	Visits []visits.Visit
}

type formView struct {
	Title          string
	Action         string
	BackURL        string
	ClientID       int64
	ClientFullName string
	Pet            *Pet
	Form           Input
	Errors         []string
}

func readInput(r *http.Request) Input {
	return Input{
		Name:        web.FormValue(r, "name"),
		Species:     web.FormValue(r, "species"),
		Breed:       web.FormValue(r, "breed"),
		BirthDate:   web.FormValue(r, "birth_date"),
		Medications: web.FormValue(r, "medications"),
		Notes:       web.FormValue(r, "notes"),
	}
}

func listPetsHandler(view *web.Renderer, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := web.QueryValue(r, "q")
		res, err := svc.List(r.Context(), ListQuery{
			Text: q,
			Page: paging.ParsePage(web.QueryValue(r, "page")),
		})
		if err != nil {
			web.ServerError(w, r, err)
			return
		}

		view.HTML(w, r, http.StatusOK, "pets/index", listView{
			Title: "Pets",
			Q:     q,
			Pets:  res.Items,
			Page:  res.Meta,
		})
	}
}

func showPetHandler(view *web.Renderer, svc *Service, visitsSvc *visits.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := loadPet(w, r, svc)
		if !ok {
			return
		}

		vs, err := visitsSvc.ListByPet(r.Context(), p.ID)
		if err != nil {
			web.ServerError(w, r, err)
			return
		}

		view.HTML(w, r, http.StatusOK, "pets/view", showView{
			Title:  p.Name,
			Pet:    p,
			Visits: vs,
		})
	}
}

func newPetHandler(view *web.Renderer, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, name, ok := loadClient(w, r, svc)
		if !ok {
			return
		}
		view.HTML(w, r, http.StatusOK, "pets/form", createView(clientID, name, Input{}, nil))
	}
}

func createPetHandler(view *web.Renderer, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, name, ok := loadClient(w, r, svc)
		if !ok {
			return
		}

		in := readInput(r)
		if _, err := svc.Create(r.Context(), clientID, in); err != nil {
			if ve, ok := validation.As(err); ok {
				view.HTML(w, r, http.StatusOK, "pets/form", createView(clientID, name, in, ve.Messages()))
				return
			}
			if errors.Is(err, ErrClientNotFound) {
				web.NotFound(w, "Client not found")
				return
			}
			web.ServerError(w, r, err)
			return
		}

		web.Redirect(w, fmt.Sprintf("/clients/%d", clientID))
	}
}

func editPetHandler(view *web.Renderer, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := loadPet(w, r, svc)
		if !ok {
			return
		}
		back := web.BackURL(r, fmt.Sprintf("/pets/%d", p.ID))
		view.HTML(w, r, http.StatusOK, "pets/form", editView(p, back, FormInput(p), nil))
	}
}

func updatePetHandler(view *web.Renderer, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := loadPet(w, r, svc)
		if !ok {
			return
		}
		back := web.BackURL(r, fmt.Sprintf("/pets/%d", p.ID))

		in := readInput(r)
		if _, err := svc.Update(r.Context(), p.ID, in); err != nil {
			if ve, ok := validation.As(err); ok {
				view.HTML(w, r, http.StatusOK, "pets/form", editView(p, back, in, ve.Messages()))
				return
			}
			if errors.Is(err, ErrNotFound) {
				web.NotFound(w, "Pet not found")
				return
			}
			web.ServerError(w, r, err)
			return
		}

		web.Redirect(w, back)
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := web.IDParam(r, "id")
		if !ok {
			web.Redirect(w, ListPath)
			return
		}

		clientID, err := svc.Delete(r.Context(), id)
		switch {
		case errors.Is(err, ErrNotFound):
			web.Redirect(w, ListPath)
		case err != nil:
			web.ServerError(w, r, err)
		case clientID > 0:
			web.Redirect(w, fmt.Sprintf("/clients/%d", clientID))
		default:
			web.Redirect(w, ListPath)
		}
	}
}

func loadPet(w http.ResponseWriter, r *http.Request, svc *Service) (Pet, bool) {
	id, ok := web.IDParam(r, "id")
	if !ok {
		web.NotFound(w, "Pet not found")
		return Pet{}, false
	}
	p, err := svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.NotFound(w, "Pet not found")
		} else {
			web.ServerError(w, r, err)
		}
		return Pet{}, false
	}
	return p, true
}

func loadClient(w http.ResponseWriter, r *http.Request, svc *Service) (int64, string, bool) {
	clientID, ok := web.IDParam(r, "id")
	if !ok {
		web.NotFound(w, "Client not found")
		return 0, "", false
	}
	name, err := svc.Client(r.Context(), clientID)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			web.NotFound(w, "Client not found")
		} else {
			web.ServerError(w, r, err)
		}
		return 0, "", false
	}
	return clientID, name, true
}

func createView(clientID int64, clientName string, in Input, errs []string) formView {
	return formView{
		Title:          "New pet",
		Action:         fmt.Sprintf("/clients/%d/pets/create", clientID),
		BackURL:        fmt.Sprintf("/clients/%d", clientID),
		ClientID:       clientID,
		ClientFullName: clientName,
		Form:           in,
		Errors:         errs,
	}
}

func editView(p Pet, back string, in Input, errs []string) formView {
	return formView{
		Title:          "Edit pet",
		Action:         fmt.Sprintf("/pets/%d/edit?back=%s", p.ID, url.QueryEscape(back)),
		BackURL:        back,
		ClientID:       p.ClientID,
		ClientFullName: p.ClientFullName,
		Pet:            &p,
		Form:           in,
		Errors:         errs,
	}
}
