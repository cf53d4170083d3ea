package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"vet-clinic/internal/domain/visits"
)

type VisitsRepo struct {
	s *Store
}

func NewVisitsRepo(s *Store) *VisitsRepo {
	return &VisitsRepo{s: s}
}

const visitColumns = `
	v.id, v.pet_id,
	COALESCE(v.visit_date, ''), COALESCE(v.visit_time, ''),
	COALESCE(v.complaint, ''), COALESCE(v.diagnosis, ''),
	COALESCE(v.procedures, ''), COALESCE(v.recommendations, ''),
	v.created_at, v.updated_at
`

func (r *VisitsRepo) Create(ctx context.Context, v visits.Visit) (int64, error) {
	var id int64
	err := r.s.db.QueryRowContext(ctx, r.s.rebind(`
		INSERT INTO visits (
			pet_id, visit_date, visit_time,
			complaint, diagnosis, procedures, recommendations,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`),
		v.PetID,
		nullable(v.VisitDate),
		nullable(v.VisitTime),
		nullable(v.Complaint),
		nullable(v.Diagnosis),
		nullable(v.Procedures),
		nullable(v.Recommendations),
		formatTime(v.CreatedAt),
		formatTime(v.UpdatedAt),
	).Scan(&id)
	return id, err
}

func (r *VisitsRepo) Update(ctx context.Context, v visits.Visit) error {
	res, err := r.s.db.ExecContext(ctx, r.s.rebind(`
		UPDATE visits
		SET
			visit_date = ?,
			visit_time = ?,
			complaint = ?,
			diagnosis = ?,
			procedures = ?,
			recommendations = ?,
			updated_at = ?
		WHERE id = ?
	`),
		nullable(v.VisitDate),
		nullable(v.VisitTime),
		nullable(v.Complaint),
		nullable(v.Diagnosis),
		nullable(v.Procedures),
		nullable(v.Recommendations),
		formatTime(v.UpdatedAt),
		v.ID,
	)
	if err != nil {
		return err
	}
	return rowsAffected(res, visits.ErrNotFound)
}

// GetByID incluye nombre de la mascota y del cliente para la cabecera.
func (r *VisitsRepo) GetByID(ctx context.Context, id int64) (visits.Visit, error) {
	row := r.s.db.QueryRowContext(ctx, r.s.rebind(`
		SELECT `+visitColumns+`,
			p.name, p.client_id, COALESCE(c.full_name, '')
		FROM visits v
		JOIN pets p ON p.id = v.pet_id
		LEFT JOIN clients c ON c.id = p.client_id
		WHERE v.id = ?
	`), id)

	var (
		v                    visits.Visit
		createdAt, updatedAt string
	)
	err := row.Scan(
		&v.ID, &v.PetID,
		&v.VisitDate, &v.VisitTime,
		&v.Complaint, &v.Diagnosis,
		&v.Procedures, &v.Recommendations,
		&createdAt, &updatedAt,
		&v.PetName, &v.ClientID, &v.ClientFullName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return visits.Visit{}, visits.ErrNotFound
	}
	if err != nil {
		return visits.Visit{}, err
	}
	v.CreatedAt = parseTime(createdAt)
	v.UpdatedAt = parseTime(updatedAt)
	return v, nil
}

// ListByPet: más recientes primero (id descendente).
func (r *VisitsRepo) ListByPet(ctx context.Context, petID int64) ([]visits.Visit, error) {
	rows, err := r.s.db.QueryContext(ctx, r.s.rebind(`
		SELECT `+visitColumns+`
		FROM visits v
		WHERE v.pet_id = ?
		ORDER BY v.id DESC
	`), petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]visits.Visit, 0)
	for rows.Next() {
		var (
			v                    visits.Visit
			createdAt, updatedAt string
		)
		if err := rows.Scan(
			&v.ID, &v.PetID,
			&v.VisitDate, &v.VisitTime,
			&v.Complaint, &v.Diagnosis,
			&v.Procedures, &v.Recommendations,
			&createdAt, &updatedAt,
		); err != nil {
			return nil, err
		}
		v.CreatedAt = parseTime(createdAt)
		v.UpdatedAt = parseTime(updatedAt)
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VisitsRepo) Delete(ctx context.Context, petID, visitID int64) error {
	res, err := r.s.db.ExecContext(ctx, r.s.rebind(`DELETE FROM visits WHERE id = ? AND pet_id = ?`), visitID, petID)
	if err != nil {
		return err
	}
	return rowsAffected(res, visits.ErrNotFound)
}
