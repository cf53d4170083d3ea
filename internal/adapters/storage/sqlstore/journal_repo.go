package sqlstore

import (
	"context"

	"vet-clinic/internal/domain/journal"
)

type JournalRepo struct {
	s *Store
}

func NewJournalRepo(s *Store) *JournalRepo {
	return &JournalRepo{s: s}
}

// isoDateExpr normaliza visit_date a YYYY-MM-DD: filas nuevas ya lo están,
// las viejas guardan DD-MM-YYYY, a veces con espacios alrededor. Cualquier otra cosa pasa tal cual y queda
// fuera del rango.
const isoDateExpr = `
	CASE
		WHEN length(trim(v.visit_date)) = 10 AND substr(trim(v.visit_date), 5, 1) = '-'
			THEN trim(v.visit_date)
		WHEN length(trim(v.visit_date)) = 10 AND substr(trim(v.visit_date), 3, 1) = '-'
			THEN substr(trim(v.visit_date), 7, 4) || '-' || substr(trim(v.visit_date), 4, 2) || '-' || substr(trim(v.visit_date), 1, 2)
		ELSE trim(v.visit_date)
	END
`

func (r *JournalRepo) VisitsBetween(ctx context.Context, from, to string) ([]journal.Row, error) {
	rows, err := r.s.db.QueryContext(ctx, r.s.rebind(`
		SELECT * FROM (
			SELECT
				v.id AS visit_id,
				COALESCE(v.visit_date, '') AS visit_date,
				COALESCE(`+isoDateExpr+`, '') AS visit_date_iso,
				COALESCE(v.visit_time, '') AS visit_time,
				COALESCE(v.complaint, '') AS complaint,
				COALESCE(v.diagnosis, '') AS diagnosis,
				COALESCE(v.procedures, '') AS procedures,
				COALESCE(v.recommendations, '') AS recommendations,
				p.id AS pet_id,
				p.name AS pet_name,
				COALESCE(p.species, '') AS pet_species,
				COALESCE(p.breed, '') AS pet_breed,
				c.id AS client_id,
				c.full_name AS client_full_name,
				COALESCE(c.phone, '') AS client_phone
			FROM visits v
			JOIN pets p ON p.id = v.pet_id
			JOIN clients c ON c.id = p.client_id
		) j
		WHERE j.visit_date_iso >= ? AND j.visit_date_iso <= ?
		ORDER BY j.visit_date_iso ASC, j.visit_time ASC, j.visit_id ASC
	`), from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]journal.Row, 0)
	for rows.Next() {
		var row journal.Row
		if err := rows.Scan(
			&row.VisitID,
			&row.VisitDate,
			&row.DateISO,
			&row.VisitTime,
			&row.Complaint,
			&row.Diagnosis,
			&row.Procedures,
			&row.Recommendations,
			&row.PetID,
			&row.PetName,
			&row.PetSpecies,
			&row.PetBreed,
			&row.ClientID,
			&row.ClientFullName,
			&row.ClientPhone,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
