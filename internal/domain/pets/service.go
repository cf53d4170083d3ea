package pets

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"vet-clinic/internal/domain/validation"
	"vet-clinic/internal/platform/dates"
	"vet-clinic/internal/platform/paging"
	"vet-clinic/internal/platform/textmatch"
)

var (
	ErrNotFound       = errors.New("pet not found")
	ErrClientNotFound = errors.New("client not found")
)

const (
	PerPage  = 20
	ListPath = "/pets"
)

type Service struct {
	repo    Repository
	clients ClientLookup
	now     func() time.Time
}

func NewService(repo Repository, clients ClientLookup) *Service {
	return &Service{
		repo:    repo,
		clients: clients,
		now:     time.Now,
	}
}

type Input struct {
	Name        string
	Species     string
	Breed       string
	BirthDate   string // DD-MM-YYYY
	Medications string
	Notes       string
}

func (in Input) Normalize() (Input, error) {
	out := Input{
		Name:        strings.TrimSpace(in.Name),
		Species:     strings.TrimSpace(in.Species),
		Breed:       strings.TrimSpace(in.Breed),
		Medications: strings.TrimSpace(in.Medications),
		Notes:       strings.TrimSpace(in.Notes),
	}

	var errs validation.Errors
	errs.Required("name", out.Name, "Pet name is required.")

	bd, err := dates.ToStorage(in.BirthDate)
	errs.AddErr("birth_date", err)
	out.BirthDate = bd

	return out, errs.Err()
}

// Client devuelve el nombre del dueño (para cabeceras de formularios).
func (s *Service) Client(ctx context.Context, clientID int64) (string, error) {
	return s.clients.ClientName(ctx, clientID)
}

func (s *Service) Create(ctx context.Context, clientID int64, in Input) (Pet, error) {
	name, err := s.clients.ClientName(ctx, clientID)
	if err != nil {
		return Pet{}, err
	}

	norm, err := in.Normalize()
	if err != nil {
		return Pet{}, err
	}

	now := s.now().UTC()
	p := Pet{
		ClientID:       clientID,
		ClientFullName: name,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	apply(&p, norm)

	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return Pet{}, err
	}
	p.ID = id
	return p, nil
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	norm, err := in.Normalize()
	if err != nil {
		return Pet{}, err
	}

	apply(&p, norm)
	p.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByClient(ctx context.Context, clientID int64) ([]Pet, error) {
	return s.repo.ListByClient(ctx, clientID)
}

type ListQuery struct {
	Text string
	Page int
}

type ListPage struct {
	Items []Pet
	Meta  paging.Meta
}

// List filtra en memoria (nombre, especie, raza, medicación, notas y
// dueño) y pagina de a PerPage.
func (s *Service) List(ctx context.Context, q ListQuery) (ListPage, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return ListPage{}, err
	}

	text := strings.TrimSpace(q.Text)
	filtered := all
	if text != "" {
		filtered = make([]Pet, 0, len(all))
		for _, p := range all {
			if textmatch.Any(text, p.Name, p.Species, p.Breed, p.Medications, p.Notes, p.ClientFullName) {
				filtered = append(filtered, p)
			}
		}
	}

	meta := paging.New(len(filtered), q.Page, PerPage).
		WithLinks(ListPath, url.Values{"q": {text}})
	lo, hi := meta.Bounds()

	return ListPage{Items: filtered[lo:hi], Meta: meta}, nil
}

// Delete borra en cascada y devuelve el cliente dueño. Si la mascota no
// existe devuelve ErrNotFound sin tocar nada.
func (s *Service) Delete(ctx context.Context, id int64) (int64, error) {
	return s.repo.Delete(ctx, id)
}

func apply(p *Pet, in Input) {
	p.Name = in.Name
	p.Species = in.Species
	p.Breed = in.Breed
	p.BirthDate = in.BirthDate
	p.Medications = in.Medications
	p.Notes = in.Notes
}

func FormInput(p Pet) Input {
	return Input{
		Name:        p.Name,
		Species:     p.Species,
		Breed:       p.Breed,
		BirthDate:   p.BirthDateView(),
		Medications: p.Medications,
		Notes:       p.Notes,
	}
}
