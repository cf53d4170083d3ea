package pets

import (
	"strings"
	"time"

	"vet-clinic/internal/platform/dates"
)

// Pet representa una mascota; siempre pertenece a un cliente.
type Pet struct {
	ID       int64
	ClientID int64

	Name    string
	Species string
	Breed   string

	BirthDate string // YYYY-MM-DD o "" si no se conoce

	Medications string
	Notes       string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Join con clients; lo rellenan GetByID y List.
	ClientFullName string
}

func (p Pet) BirthDateView() string { return dates.ToDisplay(p.BirthDate) }

// Extra es "especie, raza" sin separador cuando falta alguno.
func (p Pet) Extra() string { return Describe(p.Species, p.Breed) }

func Describe(species, breed string) string {
	species, breed = strings.TrimSpace(species), strings.TrimSpace(breed)
	switch {
	case species != "" && breed != "":
		return species + ", " + breed
	case species != "":
		return species
	default:
		return breed
	}
}
