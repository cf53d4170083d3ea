package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) (int64, error)
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id int64) (Pet, error)
	List(ctx context.Context) ([]Pet, error)
	ListByClient(ctx context.Context, clientID int64) ([]Pet, error)
	// Delete borra la mascota y sus visitas en una transacción y devuelve
	// el cliente al que pertenecía.
	Delete(ctx context.Context, id int64) (int64, error)
}

// ClientLookup devuelve el nombre del cliente o ErrClientNotFound.
// Lo implementa clients.Service.
type ClientLookup interface {
	ClientName(ctx context.Context, clientID int64) (string, error)
}
