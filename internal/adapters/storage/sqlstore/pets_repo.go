package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/platform/dbx"
)

type PetsRepo struct {
	s *Store
}

func NewPetsRepo(s *Store) *PetsRepo {
	return &PetsRepo{s: s}
}

const petSelect = `
	SELECT
		p.id, p.client_id,
		p.name, COALESCE(p.species, ''), COALESCE(p.breed, ''),
		COALESCE(p.birth_date, ''), COALESCE(p.medications, ''), COALESCE(p.notes, ''),
		p.created_at, p.updated_at,
		COALESCE(c.full_name, '')
	FROM pets p
	LEFT JOIN clients c ON c.id = p.client_id
`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) (int64, error) {
	var id int64
	err := r.s.db.QueryRowContext(ctx, r.s.rebind(`
		INSERT INTO pets (
			client_id, name, species, breed,
			birth_date, medications, notes,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`),
		p.ClientID,
		p.Name,
		nullable(p.Species),
		nullable(p.Breed),
		nullable(p.BirthDate),
		nullable(p.Medications),
		nullable(p.Notes),
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	).Scan(&id)
	return id, err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.s.db.ExecContext(ctx, r.s.rebind(`
		UPDATE pets
		SET
			name = ?,
			species = ?,
			breed = ?,
			birth_date = ?,
			medications = ?,
			notes = ?,
			updated_at = ?
		WHERE id = ?
	`),
		p.Name,
		nullable(p.Species),
		nullable(p.Breed),
		nullable(p.BirthDate),
		nullable(p.Medications),
		nullable(p.Notes),
		formatTime(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return err
	}
	return rowsAffected(res, pets.ErrNotFound)
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	row := r.s.db.QueryRowContext(ctx, r.s.rebind(petSelect+` WHERE p.id = ?`), id)
	p, err := scanPet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, err
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	return r.list(ctx, petSelect+` ORDER BY p.id DESC`)
}

func (r *PetsRepo) ListByClient(ctx context.Context, clientID int64) ([]pets.Pet, error) {
	return r.list(ctx, petSelect+` WHERE p.client_id = ? ORDER BY p.id DESC`, clientID)
}

func (r *PetsRepo) list(ctx context.Context, query string, args ...any) ([]pets.Pet, error) {
	rows, err := r.s.db.QueryContext(ctx, r.s.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete borra visitas y mascota en una transacción y devuelve el cliente.
func (r *PetsRepo) Delete(ctx context.Context, id int64) (int64, error) {
	var clientID int64
	err := dbx.WithTx(ctx, r.s.db, func(ctx context.Context, tx dbx.DBTX) error {
		err := tx.QueryRowContext(ctx, r.s.rebind(`SELECT client_id FROM pets WHERE id = ?`), id).Scan(&clientID)
		if errors.Is(err, sql.ErrNoRows) {
			return pets.ErrNotFound
		}
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, r.s.rebind(`DELETE FROM visits WHERE pet_id = ?`), id); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, r.s.rebind(`DELETE FROM pets WHERE id = ?`), id)
		return err
	})
	if err != nil {
		return 0, err
	}
	return clientID, nil
}

func scanPet(sc scanner) (pets.Pet, error) {
	var (
		p                    pets.Pet
		createdAt, updatedAt string
	)
	if err := sc.Scan(
		&p.ID,
		&p.ClientID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&p.BirthDate,
		&p.Medications,
		&p.Notes,
		&createdAt,
		&updatedAt,
		&p.ClientFullName,
	); err != nil {
		return pets.Pet{}, err
	}
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return p, nil
}
