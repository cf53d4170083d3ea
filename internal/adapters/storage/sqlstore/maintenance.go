package sqlstore

import "context"

// NormalizeLegacyVisitDates reescribe las fechas DD-MM-YYYY de visits a
// YYYY-MM-DD y devuelve cuántas filas cambió. Es idempotente.
func (s *Store) NormalizeLegacyVisitDates(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE visits
		SET visit_date = substr(trim(visit_date), 7, 4) || '-' || substr(trim(visit_date), 4, 2) || '-' || substr(trim(visit_date), 1, 2)
		WHERE length(trim(visit_date)) = 10
			AND substr(trim(visit_date), 3, 1) = '-'
			AND substr(trim(visit_date), 6, 1) = '-'
	`)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	s.log.Info("legacy visit dates normalized", map[string]any{"rows": n})
	return n, nil
}
