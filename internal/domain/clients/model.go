package clients

import "time"

// Client es el dueño de una o más mascotas.
type Client struct {
	ID int64

	FullName string
	Address  string
	Phone    string
	Notes    string

	CreatedAt time.Time
	UpdatedAt time.Time
}
