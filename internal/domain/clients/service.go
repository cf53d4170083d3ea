package clients

import (
	"context"
	"errors"
	"strings"
	"time"

	"vet-clinic/internal/domain/validation"
	"vet-clinic/internal/platform/textmatch"
)

var ErrNotFound = errors.New("client not found")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type Input struct {
	FullName string
	Address  string
	Phone    string
	Notes    string
}

func (in Input) Normalize() (Input, error) {
	out := Input{
		FullName: strings.TrimSpace(in.FullName),
		Address:  strings.TrimSpace(in.Address),
		Phone:    strings.TrimSpace(in.Phone),
		Notes:    strings.TrimSpace(in.Notes),
	}

	var errs validation.Errors
	errs.Required("full_name", out.FullName, "Client full name is required.")
	return out, errs.Err()
}

func (s *Service) Create(ctx context.Context, in Input) (Client, error) {
	norm, err := in.Normalize()
	if err != nil {
		return Client{}, err
	}

	now := s.now().UTC()
	c := Client{CreatedAt: now, UpdatedAt: now}
	apply(&c, norm)

	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return Client{}, err
	}
	c.ID = id
	return c, nil
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Client{}, err
	}

	norm, err := in.Normalize()
	if err != nil {
		return Client{}, err
	}

	apply(&c, norm)
	c.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		return Client{}, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Client, error) {
	return s.repo.GetByID(ctx, id)
}

// List devuelve todos los clientes (más nuevos primero) filtrando en
// memoria por nombre, teléfono, dirección y notas.
func (s *Service) List(ctx context.Context, q string) ([]Client, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	q = strings.TrimSpace(q)
	if q == "" {
		return all, nil
	}

	out := make([]Client, 0, len(all))
	for _, c := range all {
		if textmatch.Any(q, c.FullName, c.Phone, c.Address, c.Notes) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Delete es idempotente para ids desconocidos. Un fallo a mitad de la
// cascada deja todo como estaba y se devuelve.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

func apply(c *Client, in Input) {
	c.FullName = in.FullName
	c.Address = in.Address
	c.Phone = in.Phone
	c.Notes = in.Notes
}

func FormInput(c Client) Input {
	return Input{
		FullName: c.FullName,
		Address:  c.Address,
		Phone:    c.Phone,
		Notes:    c.Notes,
	}
}
