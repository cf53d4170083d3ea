package clients

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/validation"
	"vet-clinic/internal/domain/visits"
	"vet-clinic/internal/web"
)

func RegisterRoutes(r chi.Router, view *web.Renderer, svc *Service, petsSvc *pets.Service, visitsSvc *visits.Service) {
	r.Get("/clients", listClientsHandler(view, svc))
	r.Get("/clients/create", newClientHandler(view))
	r.Post("/clients/create", createClientHandler(view, svc))

	// Ficha: mascotas + formulario de visita rápida.
	r.Get("/clients/{id}", showClientHandler(view, svc, petsSvc))
	r.Post("/clients/{id}/visits/quick", quickVisitHandler(view, svc, petsSvc, visitsSvc))

	r.Get("/clients/{id}/edit", editClientHandler(view, svc))
	r.Post("/clients/{id}/edit", updateClientHandler(view, svc))
	r.Post("/clients/{id}/delete", deleteClientHandler(svc))
}

type listView struct {
	Title   string
	Q       string
	Clients []Client
}

type formView struct {
	Title   string
	Action  string
	BackURL string
	Client  *Client
	Form    Input
	Errors  []string
}

type quickForm struct {
	PetID string
	Visit visits.Input
}

type showView struct {
	Title  string
	Client Client
	Pets   []pets.Pet

	QuickOpen   bool
	QuickSaved  bool
	QuickErrors []string
	Quick       quickForm
}

func readInput(r *http.Request) Input {
	return Input{
		FullName: web.FormValue(r, "full_name"),
		Address:  web.FormValue(r, "address"),
		Phone:    web.FormValue(r, "phone"),
		Notes:    web.FormValue(r, "notes"),
	}
}

func listClientsHandler(view *web.Renderer, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := web.QueryValue(r, "q")
		items, err := svc.List(r.Context(), q)
		if err != nil {
			web.ServerError(w, r, err)
			return
		}

		view.HTML(w, r, http.StatusOK, "clients/index", listView{
			Title:   "Clients",
			Q:       q,
			Clients: items,
		})
	}
}

func newClientHandler(view *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view.HTML(w, r, http.StatusOK, "clients/form", createView(Input{}, nil))
	}
}

func createClientHandler(view *web.Renderer, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := readInput(r)
		if _, err := svc.Create(r.Context(), in); err != nil {
			if ve, ok := validation.As(err); ok {
				view.HTML(w, r, http.StatusOK, "clients/form", createView(in, ve.Messages()))
				return
			}
			web.ServerError(w, r, err)
			return
		}
		web.Redirect(w, "/clients")
	}
}

func showClientHandler(view *web.Renderer, svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := loadClient(w, r, svc)
		if !ok {
			return
		}
		ps, err := petsSvc.ListByClient(r.Context(), c.ID)
		if err != nil {
			web.ServerError(w, r, err)
			return
		}

		view.HTML(w, r, http.StatusOK, "clients/view", showView{
			Title:      c.FullName,
			Client:     c,
			Pets:       ps,
			QuickOpen:  web.QueryValue(r, "quick") == "1",
			QuickSaved: web.QueryValue(r, "saved") == "1",
		})
	}
}

// quickVisitHandler registra una visita para una de las mascotas del
// cliente sin salir de su ficha. Fecha y hora son obligatorias.
func quickVisitHandler(view *web.Renderer, svc *Service, petsSvc *pets.Service, visitsSvc *visits.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := loadClient(w, r, svc)
		if !ok {
			return
		}
		ps, err := petsSvc.ListByClient(r.Context(), c.ID)
		if err != nil {
			web.ServerError(w, r, err)
			return
		}

		form := quickForm{
			PetID: web.FormValue(r, "pet_id"),
			Visit: visits.Input{
				VisitDate:       web.FormValue(r, "visit_date"),
				VisitTime:       web.FormValue(r, "visit_time"),
				Complaint:       web.FormValue(r, "complaint"),
				Diagnosis:       web.FormValue(r, "diagnosis"),
				Procedures:      web.FormValue(r, "procedures"),
				Recommendations: web.FormValue(r, "recommendations"),
				RequireTime:     true,
			},
		}

		var errs validation.Errors
		petID, _ := strconv.ParseInt(form.PetID, 10, 64)
		switch {
		case petID <= 0:
			errs.Add("pet_id", "Choose a pet.")
		case !hasPet(ps, petID):
			errs.Add("pet_id", "The selected pet does not belong to this client.")
		}

		if len(errs) == 0 {
			_, err = visitsSvc.Create(r.Context(), petID, form.Visit)
		} else {
			_, err = form.Visit.Normalize()
		}
		if err != nil {
			ve, ok := validation.As(err)
			if !ok {
				web.ServerError(w, r, err)
				return
			}
			errs = append(errs, ve...)
		}

		if len(errs) > 0 {
			view.HTML(w, r, http.StatusOK, "clients/view", showView{
				Title:       c.FullName,
				Client:      c,
				Pets:        ps,
				QuickOpen:   true,
				QuickErrors: errs.Messages(),
				Quick:       form,
			})
			return
		}

		web.Redirect(w, fmt.Sprintf("/clients/%d?quick=1&saved=1#quick-visit", c.ID))
	}
}

func editClientHandler(view *web.Renderer, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := loadClient(w, r, svc)
		if !ok {
			return
		}
		back := web.BackURL(r, fmt.Sprintf("/clients/%d", c.ID))
		view.HTML(w, r, http.StatusOK, "clients/form", editView(c, back, FormInput(c), nil))
	}
}

func updateClientHandler(view *web.Renderer, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := loadClient(w, r, svc)
		if !ok {
			return
		}
		back := web.BackURL(r, fmt.Sprintf("/clients/%d", c.ID))

		in := readInput(r)
		if _, err := svc.Update(r.Context(), c.ID, in); err != nil {
			if ve, ok := validation.As(err); ok {
				view.HTML(w, r, http.StatusOK, "clients/form", editView(c, back, in, ve.Messages()))
				return
			}
			if errors.Is(err, ErrNotFound) {
				web.NotFound(w, "Client not found")
				return
			}
			web.ServerError(w, r, err)
			return
		}

		web.Redirect(w, back)
	}
}

func deleteClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id, ok := web.IDParam(r, "id"); ok {
			if err := svc.Delete(r.Context(), id); err != nil {
				web.ServerError(w, r, err)
				return
			}
		}
		web.Redirect(w, "/clients")
	}
}

func loadClient(w http.ResponseWriter, r *http.Request, svc *Service) (Client, bool) {
	id, ok := web.IDParam(r, "id")
	if !ok {
		web.NotFound(w, "Client not found")
		return Client{}, false
	}
	c, err := svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.NotFound(w, "Client not found")
		} else {
			web.ServerError(w, r, err)
		}
		return Client{}, false
	}
	return c, true
}

func hasPet(ps []pets.Pet, id int64) bool {
	for _, p := range ps {
		if p.ID == id {
			return true
		}
	}
	return false
}

func createView(in Input, errs []string) formView {
	return formView{
		Title:   "New client",
		Action:  "/clients/create",
		BackURL: "/clients",
		Form:    in,
		Errors:  errs,
	}
}

func editView(c Client, back string, in Input, errs []string) formView {
	return formView{
		Title:   "Edit client",
		Action:  fmt.Sprintf("/clients/%d/edit?back=%s", c.ID, url.QueryEscape(back)),
		BackURL: back,
		Client:  &c,
		Form:    in,
		Errors:  errs,
	}
}
