package visits

import (
	"time"

	"vet-clinic/internal/platform/dates"
)

// Visit es una consulta de una mascota.
//
// VisitDate puede venir en dos formatos: filas viejas guardan DD-MM-YYYY,
// las nuevas YYYY-MM-DD. Usar DateISO/DateView para leerla.
type Visit struct {
	ID    int64
	PetID int64

	VisitDate string
	VisitTime string // HH:MM o ""

	Complaint       string
	Diagnosis       string
	Procedures      string
	Recommendations string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Cabecera; solo la rellena GetByID.
	PetName        string
	ClientID       int64
	ClientFullName string
}

func (v Visit) DateISO() string  { return dates.Sortable(v.VisitDate) }
func (v Visit) DateView() string { return dates.ToDisplay(v.DateISO()) }

// PetRef es lo que visits necesita saber de la mascota dueña.
type PetRef struct {
	ID             int64
	Name           string
	ClientID       int64
	ClientFullName string
}
