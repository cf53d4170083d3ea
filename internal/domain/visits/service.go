package visits

import (
	"context"
	"errors"
	"strings"
	"time"

	"vet-clinic/internal/domain/validation"
	"vet-clinic/internal/platform/dates"
)

var (
	ErrNotFound    = errors.New("visit not found")
	ErrPetNotFound = errors.New("pet not found")
)

type Service struct {
	repo Repository
	pets PetLookup
	now  func() time.Time
}

func NewService(repo Repository, pets PetLookup) *Service {
	return &Service{
		repo: repo,
		pets: pets,
		now:  time.Now,
	}
}

// Input son los campos editables tal como llegan del formulario
// (fecha DD-MM-YYYY, hora HH:MM).
type Input struct {
	VisitDate       string
	VisitTime       string
	Complaint       string
	Diagnosis       string
	Procedures      string
	Recommendations string

	// RequireTime exige hora (journal y visita rápida la piden siempre).
	RequireTime bool
}

// Normalize recorta espacios y valida. La fecha devuelta queda en
// formato de almacenamiento.
func (in Input) Normalize() (Input, error) {
	out := Input{
		VisitDate:       strings.TrimSpace(in.VisitDate),
		VisitTime:       strings.TrimSpace(in.VisitTime),
		Complaint:       strings.TrimSpace(in.Complaint),
		Diagnosis:       strings.TrimSpace(in.Diagnosis),
		Procedures:      strings.TrimSpace(in.Procedures),
		Recommendations: strings.TrimSpace(in.Recommendations),
		RequireTime:     in.RequireTime,
	}

	var errs validation.Errors

	if out.VisitDate == "" {
		errs.Add("visit_date", "Visit date is required.")
	} else {
		d, err := dates.ToStorage(out.VisitDate)
		errs.AddErr("visit_date", err)
		out.VisitDate = d
	}

	if out.VisitTime == "" {
		if in.RequireTime {
			errs.Add("visit_time", "Visit time is required.")
		}
	} else {
		t, err := dates.NormalizeTime(out.VisitTime)
		errs.AddErr("visit_time", err)
		out.VisitTime = t
	}

	return out, errs.Err()
}

// Pet expone el lookup para que los handlers pinten la cabecera.
func (s *Service) Pet(ctx context.Context, petID int64) (PetRef, error) {
	return s.pets.PetRef(ctx, petID)
}

func (s *Service) Create(ctx context.Context, petID int64, in Input) (Visit, error) {
	if _, err := s.pets.PetRef(ctx, petID); err != nil {
		return Visit{}, err
	}

	norm, err := in.Normalize()
	if err != nil {
		return Visit{}, err
	}

	now := s.now().UTC()
	v := Visit{
		PetID:     petID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	apply(&v, norm)

	id, err := s.repo.Create(ctx, v)
	if err != nil {
		return Visit{}, err
	}
	v.ID = id
	return v, nil
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (Visit, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Visit{}, err
	}

	norm, err := in.Normalize()
	if err != nil {
		return Visit{}, err
	}

	apply(&v, norm)
	v.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, v); err != nil {
		return Visit{}, err
	}
	return v, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Visit, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPet(ctx context.Context, petID int64) ([]Visit, error) {
	return s.repo.ListByPet(ctx, petID)
}

// Delete es idempotente: una visita inexistente no es error.
func (s *Service) Delete(ctx context.Context, petID, visitID int64) error {
	err := s.repo.Delete(ctx, petID, visitID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

func apply(v *Visit, in Input) {
	v.VisitDate = in.VisitDate
	v.VisitTime = in.VisitTime
	v.Complaint = in.Complaint
	v.Diagnosis = in.Diagnosis
	v.Procedures = in.Procedures
	v.Recommendations = in.Recommendations
}

// FormInput convierte una visita guardada en valores de formulario.
func FormInput(v Visit) Input {
	return Input{
		VisitDate:       v.DateView(),
		VisitTime:       v.VisitTime,
		Complaint:       v.Complaint,
		Diagnosis:       v.Diagnosis,
		Procedures:      v.Procedures,
		Recommendations: v.Recommendations,
	}
}
