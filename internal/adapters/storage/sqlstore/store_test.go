package sqlstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic/internal/domain/clients"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/visits"
	"vet-clinic/internal/platform/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data", "test.sqlite")
	s, err := Open(context.Background(), string(SQLite), path, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Migrate(context.Background()))
	return s
}

var testNow = time.Date(2024, 1, 10, 8, 30, 0, 0, time.UTC)

func seedClient(t *testing.T, s *Store, name string) int64 {
	t.Helper()
	id, err := NewClientsRepo(s).Create(context.Background(), clients.Client{
		FullName:  name,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	})
	require.NoError(t, err)
	return id
}

func seedPet(t *testing.T, s *Store, clientID int64, name string) int64 {
	t.Helper()
	id, err := NewPetsRepo(s).Create(context.Background(), pets.Pet{
		ClientID:  clientID,
		Name:      name,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	})
	require.NoError(t, err)
	return id
}

func seedVisit(t *testing.T, s *Store, petID int64, date, tm string) int64 {
	t.Helper()
	id, err := NewVisitsRepo(s).Create(context.Background(), visits.Visit{
		PetID:     petID,
		VisitDate: date,
		VisitTime: tm,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	})
	require.NoError(t, err)
	return id
}

func count(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "x", nil)
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	dir := t.TempDir()

	dsn, memory, err := sqliteDSN(filepath.Join(dir, "a", "b.sqlite"))
	require.NoError(t, err)
	assert.False(t, memory)
	assert.Contains(t, dsn, "_pragma=foreign_keys(1)")
	assert.Contains(t, dsn, "_pragma=busy_timeout(5000)")
	assert.Contains(t, dsn, "_txlock=immediate")
	assert.DirExists(t, filepath.Join(dir, "a"))

	dsn, memory, err = sqliteDSN(":memory:")
	require.NoError(t, err)
	assert.True(t, memory)
	assert.Equal(t, "file::memory:?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate", dsn)

	dsn, _, err = sqliteDSN("file:" + filepath.Join(dir, "c.sqlite") + "?_pragma=foreign_keys(0)")
	require.NoError(t, err)
	assert.NotContains(t, dsn, "foreign_keys(1)")

	_, _, err = sqliteDSN("  ")
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	q := `SELECT 1 FROM visits WHERE id = ? AND pet_id = ?`

	assert.Equal(t, q, New(nil, SQLite, nil).rebind(q))
	assert.Equal(t,
		`SELECT 1 FROM visits WHERE id = $1 AND pet_id = $2`,
		New(nil, Postgres, nil).rebind(q),
	)
}

func TestMigrate_Idempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Migrate(context.Background()))
	assert.Equal(t, 0, count(t, s, "clients"))
}

func TestTimestamps_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	id := seedClient(t, s, "A")

	c, err := NewClientsRepo(s).GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, testNow.Equal(c.CreatedAt), "got %v", c.CreatedAt)
	assert.True(t, testNow.Equal(c.UpdatedAt))
}

func TestNormalizeLegacyVisitDates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	petID := seedPet(t, s, seedClient(t, s, "A"), "Rex")
	legacy := seedVisit(t, s, petID, "05-01-2024", "")
	current := seedVisit(t, s, petID, "2024-01-06", "")

	n, err := s.NormalizeLegacyVisitDates(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	repo := NewVisitsRepo(s)
	v, err := repo.GetByID(ctx, legacy)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", v.VisitDate)

	v, err = repo.GetByID(ctx, current)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-06", v.VisitDate)

	n, err = s.NormalizeLegacyVisitDates(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
