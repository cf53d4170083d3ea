package pets

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"vet-clinic/internal/domain/validation"
	"vet-clinic/internal/domain/visits"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	nextID int64
	byID   map[int64]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) (int64, error) {
	r.nextID++
	p.ID = r.nextID
	r.byID[p.ID] = p
	return p.ID, nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id int64) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) List(ctx context.Context) ([]Pet, error) {
	out := make([]Pet, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *testRepo) ListByClient(ctx context.Context, clientID int64) ([]Pet, error) {
	all, _ := r.List(ctx)
	out := make([]Pet, 0)
	for _, p := range all {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id int64) (int64, error) {
	p, ok := r.byID[id]
	if !ok {
		return 0, ErrNotFound
	}
	delete(r.byID, id)
	return p.ClientID, nil
}

type testClients map[int64]string

func (c testClients) ClientName(ctx context.Context, id int64) (string, error) {
	name, ok := c[id]
	if !ok {
		return "", ErrClientNotFound
	}
	return name, nil
}

func newTestService(repo *testRepo) *Service {
	svc := NewService(repo, testClients{1: "Иванова Мария", 2: "John Smith"})
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return svc
}

// -------------------------
// Tests
// -------------------------

func TestService_Create(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	p, err := svc.Create(context.Background(), 1, Input{
		Name:      " Пушок ",
		Species:   "кот",
		BirthDate: "29-02-2020",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == 0 || p.Name != "Пушок" || p.ClientFullName != "Иванова Мария" {
		t.Fatalf("unexpected pet: %+v", p)
	}
	if repo.byID[p.ID].BirthDate != "2020-02-29" {
		t.Fatalf("birth date must be stored sortable, got %q", repo.byID[p.ID].BirthDate)
	}
	if p.BirthDateView() != "29-02-2020" {
		t.Fatalf("unexpected view date %q", p.BirthDateView())
	}
}

func TestService_Create_UnknownClient(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), 99, Input{Name: "Rex"})
	if !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("no pet must be stored")
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := newTestService(newTestRepo())

	_, err := svc.Create(context.Background(), 1, Input{Name: "  ", BirthDate: "31-02-2024"})
	ve, ok := validation.As(err)
	if !ok {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if ve.For("name") == "" || ve.For("birth_date") == "" {
		t.Fatalf("expected name and birth_date errors, got %v", ve)
	}
}

func TestService_Update_ClearsBirthDate(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	p, err := svc.Create(ctx, 1, Input{Name: "Rex", BirthDate: "01-01-2020"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	up, err := svc.Update(ctx, p.ID, Input{Name: "Rex II"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if up.BirthDate != "" || up.Name != "Rex II" {
		t.Fatalf("unexpected pet after update: %+v", up)
	}

	if _, err := svc.Update(ctx, 404, Input{Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_List_FilterAndPaginate(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	for i := 1; i <= 45; i++ {
		species := "собака"
		if i%3 == 0 {
			species = "Кошка"
		}
		if _, err := svc.Create(ctx, 1, Input{Name: fmt.Sprintf("pet-%02d", i), Species: species}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := svc.Create(ctx, 2, Input{Name: "Buddy"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Sin filtro: 46 mascotas, 3 páginas; la 3 tiene 6.
	res, err := svc.List(ctx, ListQuery{Page: 3})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Meta.TotalPages != 3 || len(res.Items) != 6 || res.Meta.First != 41 || res.Meta.Last != 46 {
		t.Fatalf("unexpected page: pages=%d items=%d meta=%+v", res.Meta.TotalPages, len(res.Items), res.Meta)
	}

	// Filtro sin distinguir mayúsculas: 15 gatos.
	res, err = svc.List(ctx, ListQuery{Text: "кошка", Page: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Meta.Total != 15 || len(res.Items) != 15 {
		t.Fatalf("expected 15 cats, got total=%d items=%d", res.Meta.Total, len(res.Items))
	}
	if res.Meta.CurrentURL != "/pets?page=1&q=%D0%BA%D0%BE%D1%88%D0%BA%D0%B0" {
		t.Fatalf("unexpected current url %q", res.Meta.CurrentURL)
	}

	// Busca también por dueño.
	res, err = svc.List(ctx, ListQuery{Text: "smith", Page: 7})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Meta.Page != 1 || len(res.Items) != 1 || res.Items[0].Name != "Buddy" {
		t.Fatalf("expected Buddy by owner name, got %+v", res.Items)
	}
}

func TestService_PetRef(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	p, _ := svc.Create(ctx, 2, Input{Name: "Buddy"})
	repo.byID[p.ID] = p

	ref, err := svc.PetRef(ctx, p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ClientID != 2 || ref.Name != "Buddy" {
		t.Fatalf("unexpected ref %+v", ref)
	}

	if _, err := svc.PetRef(ctx, 999); !errors.Is(err, visits.ErrPetNotFound) {
		t.Fatalf("expected visits.ErrPetNotFound, got %v", err)
	}
}

func TestDescribe(t *testing.T) {
	cases := map[[2]string]string{
		{"кот", "британский"}: "кот, британский",
		{"кот", ""}:           "кот",
		{"", "мейн-кун"}:      "мейн-кун",
		{" ", " "}:            "",
	}
	for in, want := range cases {
		if got := Describe(in[0], in[1]); got != want {
			t.Fatalf("Describe(%q, %q) = %q, want %q", in[0], in[1], got, want)
		}
	}
}
