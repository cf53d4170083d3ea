package journal

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	rows     []Row
	err      error
	from, to string
}

func (f *fakeRepo) VisitsBetween(ctx context.Context, from, to string) ([]Row, error) {
	f.from, f.to = from, to
	if f.err != nil {
		return nil, f.err
	}
	out := make([]Row, 0, len(f.rows))
	for _, r := range f.rows {
		if r.DateISO >= from && r.DateISO <= to {
			out = append(out, r)
		}
	}
	return out, nil
}

// daysOfRows genera n días consecutivos desde 2024-01-01 con una visita cada uno.
func daysOfRows(n int) []Row {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]Row, 0, n)
	for i := 0; i < n; i++ {
		d := start.AddDate(0, 0, i).Format("2006-01-02")
		rows = append(rows, Row{VisitID: int64(i + 1), DateISO: d, VisitDate: d, PetName: "pet"})
	}
	return rows
}

func dayKeys(days []Day) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.DateISO)
	}
	return out
}

func TestBuild_PaginatesByDay(t *testing.T) {
	svc := NewService(&fakeRepo{rows: daysOfRows(20)})
	ctx := context.Background()
	q := Query{From: "2024-01-01", To: "2024-01-31"}

	q.Page = 1
	p, err := svc.Build(ctx, q)
	require.NoError(t, err)
	require.Len(t, p.Days, 7)
	assert.Equal(t, "2024-01-01", p.Days[0].DateISO)
	assert.Equal(t, "2024-01-07", p.Days[6].DateISO)
	assert.Equal(t, 3, p.Meta.TotalPages)
	assert.Equal(t, 20, p.Meta.Total)
	assert.Equal(t, 1, p.Meta.First)
	assert.Equal(t, 7, p.Meta.Last)
	assert.Empty(t, p.Meta.PrevURL)
	assert.NotEmpty(t, p.Meta.NextURL)

	q.Page = 3
	p, err = svc.Build(ctx, q)
	require.NoError(t, err)
	require.Len(t, p.Days, 6)
	assert.Equal(t, "2024-01-15", p.Days[0].DateISO)
	assert.Equal(t, "2024-01-20", p.Days[5].DateISO)
	assert.Equal(t, 15, p.Meta.First)
	assert.Equal(t, 20, p.Meta.Last)

	q.Page = 10
	p, err = svc.Build(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Meta.Page)
	assert.Equal(t, 3, p.Query.Page)
	require.Len(t, p.Days, 6)
	assert.Empty(t, p.Meta.NextURL)
	assert.Equal(t, "/visits/journal?from=2024-01-01&page=2&to=2024-01-31", p.Meta.PrevURL)
	assert.Equal(t, "/visits/journal?from=2024-01-01&page=3&to=2024-01-31", p.Meta.CurrentURL)
}

func TestBuild_Empty(t *testing.T) {
	svc := NewService(&fakeRepo{})
	p, err := svc.Build(context.Background(), Query{From: "2024-01-01", To: "2024-01-07", Page: 4})
	require.NoError(t, err)
	assert.Empty(t, p.Days)
	assert.Equal(t, 1, p.Meta.Page)
	assert.Equal(t, 1, p.Meta.TotalPages)
	assert.Equal(t, 0, p.Meta.First)
	assert.Equal(t, 0, p.Meta.Last)
}

func TestBuild_GroupsAndKeepsOrder(t *testing.T) {
	rows := []Row{
		{VisitID: 3, DateISO: "2024-01-02", VisitDate: "02-01-2024", VisitTime: "", PetName: "A", PetSpecies: "кот"},
		{VisitID: 1, DateISO: "2024-01-02", VisitDate: "2024-01-02", VisitTime: "09:00", PetName: "B", PetBreed: "мопс"},
		{VisitID: 2, DateISO: "2024-01-05", VisitDate: "05-01-2024", VisitTime: "10:00", PetName: "C", PetSpecies: "собака", PetBreed: "мопс"},
	}
	svc := NewService(&fakeRepo{rows: rows})

	p, err := svc.Build(context.Background(), Query{From: "2024-01-01", To: "2024-01-07", Page: 1})
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"2024-01-02", "2024-01-05"}, dayKeys(p.Days)); diff != "" {
		t.Fatalf("days mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "02-01-2024", p.Days[0].DateView)
	require.Len(t, p.Days[0].Items, 2)
	assert.Equal(t, int64(3), p.Days[0].Items[0].VisitID)
	assert.Equal(t, int64(1), p.Days[0].Items[1].VisitID)

	assert.Equal(t, "кот", p.Days[0].Items[0].PetExtra())
	assert.Equal(t, "мопс", p.Days[0].Items[1].PetExtra())
	assert.Equal(t, "собака, мопс", p.Days[1].Items[0].PetExtra())
	assert.Equal(t, "05-01-2024", p.Days[1].Items[0].DateView())
}

func TestBuild_TextFilter(t *testing.T) {
	rows := []Row{
		{VisitID: 1, DateISO: "2024-01-01", ClientFullName: "Иванов", PetName: "Пушок"},
		{VisitID: 2, DateISO: "2024-01-02", ClientPhone: "+7 911", PetName: "Rex"},
		{VisitID: 3, DateISO: "2024-01-03", Complaint: "Не ест", PetName: "Tom"},
		{VisitID: 4, DateISO: "2024-01-04", Diagnosis: "пуш", PetName: "Zed"},
	}
	svc := NewService(&fakeRepo{rows: rows})
	ctx := context.Background()

	tests := []struct {
		text string
		want []string
	}{
		{"ПУШ", []string{"2024-01-01"}},
		{"911", []string{"2024-01-02"}},
		{"не ЕСТ", []string{"2024-01-03"}},
		{"", []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"}},
		{"nobody", []string{}},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("q=%q", tc.text), func(t *testing.T) {
			p, err := svc.Build(ctx, Query{From: "2024-01-01", To: "2024-01-31", Text: tc.text, Page: 1})
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, dayKeys(p.Days)); diff != "" {
				t.Fatalf("days mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuild_LinksKeepFilters(t *testing.T) {
	svc := NewService(&fakeRepo{rows: daysOfRows(10)})
	p, err := svc.Build(context.Background(), Query{From: "2024-01-01", To: "2024-01-31", Text: "pet", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, "/visits/journal?from=2024-01-01&page=2&q=pet&to=2024-01-31", p.Meta.NextURL)
}

func TestBuild_RepoError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewService(&fakeRepo{err: boom})
	_, err := svc.Build(context.Background(), Query{From: "2024-01-01", To: "2024-01-07"})
	assert.ErrorIs(t, err, boom)
}

func TestParseQuery(t *testing.T) {
	today := time.Date(2024, 12, 25, 15, 4, 0, 0, time.Local)

	q := ParseQuery(url.Values{}, today)
	assert.Equal(t, Query{From: "2024-12-25", To: "2025-01-08", Page: 1}, q)

	q = ParseQuery(url.Values{
		"from": {"2024-02-30"},
		"to":   {"01-03-2024"},
		"q":    {"  кот "},
		"page": {"-3"},
	}, today)
	assert.Equal(t, Query{From: "2024-12-25", To: "2025-01-08", Text: "кот", Page: 1}, q)

	q = ParseQuery(url.Values{"from": {"2024-01-01"}, "to": {"2024-01-07"}, "page": {"2"}}, today)
	assert.Equal(t, Query{From: "2024-01-01", To: "2024-01-07", Page: 2}, q)
}

func TestService_ParseQuery_UsesClock(t *testing.T) {
	svc := NewService(&fakeRepo{})
	svc.now = func() time.Time { return time.Date(2024, 2, 20, 23, 0, 0, 0, time.UTC) }

	q := svc.ParseQuery(url.Values{})
	assert.Equal(t, "2024-02-20", q.From)
	assert.Equal(t, "2024-03-05", q.To)
}
