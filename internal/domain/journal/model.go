package journal

import (
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/platform/dates"
	"vet-clinic/internal/platform/paging"
)

// Row es una visita con su mascota y cliente.
type Row struct {
	VisitID   int64
	VisitDate string // tal como está guardada
	DateISO   string // normalizada a YYYY-MM-DD por el repo
	VisitTime string

	Complaint       string
	Diagnosis       string
	Procedures      string
	Recommendations string

	PetID      int64
	PetName    string
	PetSpecies string
	PetBreed   string

	ClientID       int64
	ClientFullName string
	ClientPhone    string
}

func (r Row) DateView() string { return dates.ToDisplay(r.DateISO) }
func (r Row) PetExtra() string { return pets.Describe(r.PetSpecies, r.PetBreed) }

// Day agrupa las visitas de una fecha. Solo existen días con visitas.
type Day struct {
	DateISO  string
	DateView string
	Items    []Row
}

type Query struct {
	From string // YYYY-MM-DD
	To   string // YYYY-MM-DD, inclusivo
	Text string
	Page int
}

type Page struct {
	Query Query
	Days  []Day
	Meta  paging.Meta
}
