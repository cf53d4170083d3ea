package pets

import (
	"context"
	"errors"

	"vet-clinic/internal/domain/visits"
)

// PetRef implementa visits.PetLookup. Vive acá para que visits no tenga
// que importar pets (pets importa visits para la ficha).
func (s *Service) PetRef(ctx context.Context, petID int64) (visits.PetRef, error) {
	p, err := s.Get(ctx, petID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return visits.PetRef{}, visits.ErrPetNotFound
		}
		return visits.PetRef{}, err
	}
	return visits.PetRef{
		ID:             p.ID,
		Name:           p.Name,
		ClientID:       p.ClientID,
		ClientFullName: p.ClientFullName,
	}, nil
}
