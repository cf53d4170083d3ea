package clients

import (
	"context"
	"errors"

	"vet-clinic/internal/domain/pets"
)

// ClientName implementa pets.ClientLookup.
func (s *Service) ClientName(ctx context.Context, clientID int64) (string, error) {
	c, err := s.Get(ctx, clientID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", pets.ErrClientNotFound
		}
		return "", err
	}
	return c.FullName, nil
}
