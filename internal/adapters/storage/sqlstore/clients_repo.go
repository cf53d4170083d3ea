package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"vet-clinic/internal/domain/clients"
	"vet-clinic/internal/platform/dbx"
)

type ClientsRepo struct {
	s *Store
}

func NewClientsRepo(s *Store) *ClientsRepo {
	return &ClientsRepo{s: s}
}

const clientColumns = `id, full_name, COALESCE(address, ''), COALESCE(phone, ''), COALESCE(notes, ''), created_at, updated_at`

func (r *ClientsRepo) Create(ctx context.Context, c clients.Client) (int64, error) {
	var id int64
	err := r.s.db.QueryRowContext(ctx, r.s.rebind(`
		INSERT INTO clients (full_name, address, phone, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`),
		c.FullName,
		c.Address,
		nullable(c.Phone),
		nullable(c.Notes),
		formatTime(c.CreatedAt),
		formatTime(c.UpdatedAt),
	).Scan(&id)
	return id, err
}

func (r *ClientsRepo) Update(ctx context.Context, c clients.Client) error {
	res, err := r.s.db.ExecContext(ctx, r.s.rebind(`
		UPDATE clients
		SET full_name = ?, address = ?, phone = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`),
		c.FullName,
		c.Address,
		nullable(c.Phone),
		nullable(c.Notes),
		formatTime(c.UpdatedAt),
		c.ID,
	)
	if err != nil {
		return err
	}
	return rowsAffected(res, clients.ErrNotFound)
}

func (r *ClientsRepo) GetByID(ctx context.Context, id int64) (clients.Client, error) {
	row := r.s.db.QueryRowContext(ctx, r.s.rebind(`SELECT `+clientColumns+` FROM clients WHERE id = ?`), id)
	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return clients.Client{}, clients.ErrNotFound
	}
	return c, err
}

func (r *ClientsRepo) List(ctx context.Context) ([]clients.Client, error) {
	rows, err := r.s.db.QueryContext(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]clients.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete borra visitas, mascotas y cliente en una transacción.
func (r *ClientsRepo) Delete(ctx context.Context, id int64) error {
	return dbx.WithTx(ctx, r.s.db, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, r.s.rebind(`
			DELETE FROM visits WHERE pet_id IN (SELECT id FROM pets WHERE client_id = ?)
		`), id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, r.s.rebind(`DELETE FROM pets WHERE client_id = ?`), id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, r.s.rebind(`DELETE FROM clients WHERE id = ?`), id)
		if err != nil {
			return err
		}
		return rowsAffected(res, clients.ErrNotFound)
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanClient(sc scanner) (clients.Client, error) {
	var (
		c                    clients.Client
		createdAt, updatedAt string
	)
	if err := sc.Scan(&c.ID, &c.FullName, &c.Address, &c.Phone, &c.Notes, &createdAt, &updatedAt); err != nil {
		return clients.Client{}, err
	}
	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)
	return c, nil
}
