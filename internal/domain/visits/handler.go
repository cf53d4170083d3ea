package visits

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"vet-clinic/internal/domain/validation"
	"vet-clinic/internal/web"
)

func RegisterRoutes(r chi.Router, view *web.Renderer, svc *Service) {
	r.Get("/pets/{id}/visits/create", newVisitHandler(view, svc))
	r.Post("/pets/{id}/visits/create", createVisitHandler(view, svc))

	// Edición desde el journal o desde la ficha de la mascota.
	r.Get("/visits/{id}/edit", editVisitHandler(view, svc))
	r.Post("/visits/{id}/edit", updateVisitHandler(view, svc))

	r.Post("/pets/{id}/visits/{visitID}/delete", deleteVisitHandler(svc))
}

type formView struct {
	Title   string
	Action  string
	BackURL string
	Pet     PetRef
	Visit   *Visit
	Form    Input
	Errors  []string
}

func readInput(r *http.Request) Input {
	return Input{
		VisitDate:       web.FormValue(r, "visit_date"),
		VisitTime:       web.FormValue(r, "visit_time"),
		Complaint:       web.FormValue(r, "complaint"),
		Diagnosis:       web.FormValue(r, "diagnosis"),
		Procedures:      web.FormValue(r, "procedures"),
		Recommendations: web.FormValue(r, "recommendations"),
	}
}

func newVisitHandler(view *web.Renderer, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := web.IDParam(r, "id")
		if !ok {
			web.NotFound(w, "Pet not found")
			return
		}
		pet, err := svc.Pet(r.Context(), petID)
		if err != nil {
			petLookupFailed(w, r, err)
			return
		}

		view.HTML(w, r, http.StatusOK, "visits/form", createView(pet, Input{}, nil))
	}
}

func createVisitHandler(view *web.Renderer, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := web.IDParam(r, "id")
		if !ok {
			web.NotFound(w, "Pet not found")
			return
		}
		pet, err := svc.Pet(r.Context(), petID)
		if err != nil {
			petLookupFailed(w, r, err)
			return
		}

		in := readInput(r)
		if _, err := svc.Create(r.Context(), petID, in); err != nil {
			if ve, ok := validation.As(err); ok {
				view.HTML(w, r, http.StatusOK, "visits/form", createView(pet, in, ve.Messages()))
				return
			}
			petLookupFailed(w, r, err)
			return
		}

		web.Redirect(w, fmt.Sprintf("/pets/%d", petID))
	}
}

func editVisitHandler(view *web.Renderer, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := loadVisit(w, r, svc)
		if !ok {
			return
		}
		back := web.JournalBackURL(r, defaultBack(v))
		view.HTML(w, r, http.StatusOK, "visits/form", editView(v, back, FormInput(v), nil))
	}
}

func updateVisitHandler(view *web.Renderer, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := loadVisit(w, r, svc)
		if !ok {
			return
		}
		back := web.JournalBackURL(r, defaultBack(v))

		in := readInput(r)
		in.RequireTime = true

		if _, err := svc.Update(r.Context(), v.ID, in); err != nil {
			if ve, ok := validation.As(err); ok {
				view.HTML(w, r, http.StatusOK, "visits/form", editView(v, back, in, ve.Messages()))
				return
			}
			if errors.Is(err, ErrNotFound) {
				web.NotFound(w, "Visit not found")
				return
			}
			web.ServerError(w, r, err)
			return
		}

		web.Redirect(w, back)
	}
}

func deleteVisitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := web.IDParam(r, "id")
		if !ok {
			web.Redirect(w, "/pets")
			return
		}
		visitID, _ := web.IDParam(r, "visitID")

		if visitID > 0 {
			if err := svc.Delete(r.Context(), petID, visitID); err != nil {
				web.ServerError(w, r, err)
				return
			}
		}

		web.Redirect(w, fmt.Sprintf("/pets/%d", petID))
	}
}

func loadVisit(w http.ResponseWriter, r *http.Request, svc *Service) (Visit, bool) {
	id, ok := web.IDParam(r, "id")
	if !ok {
		web.NotFound(w, "Visit not found")
		return Visit{}, false
	}
	v, err := svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.NotFound(w, "Visit not found")
		} else {
			web.ServerError(w, r, err)
		}
		return Visit{}, false
	}
	return v, true
}

func petLookupFailed(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrPetNotFound) {
		web.NotFound(w, "Pet not found")
		return
	}
	web.ServerError(w, r, err)
}

func defaultBack(v Visit) string {
	return fmt.Sprintf("/pets/%d#visits", v.PetID)
}

func createView(pet PetRef, in Input, errs []string) formView {
	return formView{
		Title:   "New visit",
		Action:  fmt.Sprintf("/pets/%d/visits/create", pet.ID),
		BackURL: fmt.Sprintf("/pets/%d", pet.ID),
		Pet:     pet,
		Form:    in,
		Errors:  errs,
	}
}

func editView(v Visit, back string, in Input, errs []string) formView {
	return formView{
		Title:   "Edit visit",
		Action:  fmt.Sprintf("/visits/%d/edit?back=%s", v.ID, url.QueryEscape(back)),
		BackURL: back,
		Pet: PetRef{
			ID:             v.PetID,
			Name:           v.PetName,
			ClientID:       v.ClientID,
			ClientFullName: v.ClientFullName,
		},
		Visit:  &v,
		Form:   in,
		Errors: errs,
	}
}
