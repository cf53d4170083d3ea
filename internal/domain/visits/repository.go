package visits

import "context"

type Repository interface {
	Create(ctx context.Context, v Visit) (int64, error)
	Update(ctx context.Context, v Visit) error
	GetByID(ctx context.Context, id int64) (Visit, error)
	ListByPet(ctx context.Context, petID int64) ([]Visit, error)
	// Delete borra solo si la visita pertenece a petID.
	Delete(ctx context.Context, petID, visitID int64) error
}

// PetLookup resuelve la mascota de una visita sin importar el paquete pets
// (pets ya importa visits). Devuelve ErrPetNotFound si no existe.
type PetLookup interface {
	PetRef(ctx context.Context, petID int64) (PetRef, error)
}

type PetLookupFunc func(ctx context.Context, petID int64) (PetRef, error)

func (f PetLookupFunc) PetRef(ctx context.Context, petID int64) (PetRef, error) {
	return f(ctx, petID)
}
